package jsonrpc

import (
	"bytes"
	"errors"
	"testing"
)

func TestBoundedWriterRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cap  int
		data string
	}{
		{"under capacity", 10, "hello"},
		{"exact capacity", 5, "hello"},
		{"empty write", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewBoundedWriter(tt.cap)
			n, err := w.Write([]byte(tt.data))
			if err != nil {
				t.Fatalf("Write: %v", err)
			}
			if n != len(tt.data) {
				t.Errorf("got n=%d, want %d", n, len(tt.data))
			}
			if got := string(w.Bytes()); got != tt.data {
				t.Errorf("got %q, want %q", got, tt.data)
			}
		})
	}
}

func TestBoundedWriterRejectsOverflow(t *testing.T) {
	w := NewBoundedWriter(4)
	if _, err := w.Write([]byte("hello")); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("got %v, want ErrCapacityExceeded", err)
	}
	if w.Len() != 0 {
		t.Errorf("buffer changed by rejected write: %q", w.Bytes())
	}
}

func TestBoundedWriterNoPartialAppend(t *testing.T) {
	w := NewBoundedWriter(8)
	if _, err := w.Write([]byte("abcde")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	// Second write would fit partially; it must not be applied at all.
	if _, err := w.Write([]byte("fghij")); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("got %v, want ErrCapacityExceeded", err)
	}
	if got := string(w.Bytes()); got != "abcde" {
		t.Errorf("got %q, want %q", got, "abcde")
	}
	// The writer remains usable for writes that fit.
	if _, err := w.Write([]byte("fgh")); err != nil {
		t.Fatalf("third write: %v", err)
	}
	if got := string(w.Bytes()); got != "abcdefgh" {
		t.Errorf("got %q, want %q", got, "abcdefgh")
	}
}

func TestBoundedWriterMultipleWrites(t *testing.T) {
	w := NewBoundedWriter(64)
	var want bytes.Buffer
	for _, chunk := range []string{`{"jsonrpc":"2.0",`, `"result":"ok",`, `"id":1}`} {
		if _, err := w.Write([]byte(chunk)); err != nil {
			t.Fatalf("Write(%q): %v", chunk, err)
		}
		want.WriteString(chunk)
	}
	if got := string(w.Bytes()); got != want.String() {
		t.Errorf("got %q, want %q", got, want.String())
	}
}
