package sink

import (
	"log"
	"unicode/utf8"
)

// logTx records a bounded preview of every outgoing message. The preview
// limit is independent of the response size limit: a connection may allow
// large responses while keeping log lines short.
func logTx(msg string, maxLen int) {
	log.Printf("sink: tx: %s", Preview(msg, maxLen))
}

// Preview truncates s to at most n bytes, backing up so the cut never splits
// a multi-byte rune. The result is a prefix of s and stays valid UTF-8 when
// s is.
func Preview(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
