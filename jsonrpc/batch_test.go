package jsonrpc

import (
	"encoding/json"
	"strings"
	"testing"
)

const invalidBatchBody = `{"jsonrpc":"2.0","error":{"code":-32600,"message":"Invalid request"},"id":null}`

func TestBatchWithSingleEntry(t *testing.T) {
	resp := NewResponse(json.RawMessage("1"), "a", NoLimit)
	if len(resp.Body) != 37 {
		t.Fatalf("got %d bytes, want 37", len(resp.Body))
	}

	// The batch needs two bytes for the brackets: 37 + 2.
	b := NewBatchResponseBuilder(39)
	if !b.Append(resp) {
		t.Fatal("Append failed at exactly the limit")
	}
	batch := b.Finish()

	if !batch.Success {
		t.Fatal("got Success=false, want true")
	}
	want := `[{"jsonrpc":"2.0","result":"a","id":1}]`
	if batch.Body != want {
		t.Errorf("got %q, want %q", batch.Body, want)
	}
}

func TestBatchWithSingleEntryBelowLimit(t *testing.T) {
	resp := NewResponse(json.RawMessage("1"), "a", NoLimit)

	b := NewBatchResponseBuilder(38)
	if b.Append(resp) {
		t.Error("Append succeeded one byte past the limit")
	}
}

func TestBatchWithMultipleEntries(t *testing.T) {
	resp := NewResponse(json.RawMessage("1"), "a", NoLimit)

	// Two bytes for the brackets, one separator between the two entries:
	// 2 + 37*2 + 1.
	b := NewBatchResponseBuilder(77)
	if !b.Append(resp) {
		t.Fatal("first Append failed")
	}
	if !b.Append(resp) {
		t.Fatal("second Append failed")
	}
	batch := b.Finish()

	if !batch.Success {
		t.Fatal("got Success=false, want true")
	}
	want := `[{"jsonrpc":"2.0","result":"a","id":1},{"jsonrpc":"2.0","result":"a","id":1}]`
	if batch.Body != want {
		t.Errorf("got %q, want %q", batch.Body, want)
	}
}

func TestBatchPreservesAppendOrder(t *testing.T) {
	b := NewBatchResponseBuilder(NoLimit)
	for _, id := range []string{"1", "2", "3"} {
		if !b.Append(NewResponse(json.RawMessage(id), id, NoLimit)) {
			t.Fatalf("Append id=%s failed", id)
		}
	}
	batch := b.Finish()

	var entries []struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal([]byte(batch.Body), &entries); err != nil {
		t.Fatalf("batch is not a valid JSON array: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, want := range []string{"1", "2", "3"} {
		if string(entries[i].ID) != want {
			t.Errorf("entry %d: got id %s, want %s", i, entries[i].ID, want)
		}
	}
}

func TestBatchEmpty(t *testing.T) {
	b := NewBatchResponseBuilder(1024)
	if !b.Empty() {
		t.Error("got Empty=false, want true")
	}
	batch := b.Finish()

	if batch.Success {
		t.Fatal("got Success=true, want false")
	}
	if batch.Body != invalidBatchBody {
		t.Errorf("got %q, want %q", batch.Body, invalidBatchBody)
	}
}

func TestBatchTooBig(t *testing.T) {
	resp := NewResponse(json.RawMessage("1"), strings.Repeat("a", 28), 128)
	if len(resp.Body) != 64 {
		t.Fatalf("got %d bytes, want 64", len(resp.Body))
	}

	b := NewBatchResponseBuilder(63)
	if b.Append(resp) {
		t.Fatal("Append succeeded past the limit")
	}

	batch := InvalidBatchResponse()
	if batch.Success {
		t.Fatal("got Success=true, want false")
	}
	if batch.Body != invalidBatchBody {
		t.Errorf("got %q, want %q", batch.Body, invalidBatchBody)
	}
}
