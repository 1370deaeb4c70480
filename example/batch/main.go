// Command batch demonstrates assembling a batch response under one
// aggregate size limit, including the early-abort path.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/mnehpets/onewire/jsonrpc"
)

func main() {
	_ = godotenv.Load()

	limit := jsonrpc.NoLimit
	if v := os.Getenv("ONEWIRE_MAX_RESPONSE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("ONEWIRE_MAX_RESPONSE_SIZE: %v", err)
		}
		limit = n
	}

	results := []any{"a", 42, map[string]bool{"ok": true}}

	b := jsonrpc.NewBatchResponseBuilder(limit)
	for i, result := range results {
		id := json.RawMessage(strconv.Itoa(i + 1))
		if !b.Append(jsonrpc.NewResponse(id, result, limit)) {
			// Past the limit: skip the remaining calls, their responses
			// would be thrown away anyway.
			fmt.Println(jsonrpc.InvalidBatchResponse().Body)
			return
		}
	}
	fmt.Println(b.Finish().Body)
}
