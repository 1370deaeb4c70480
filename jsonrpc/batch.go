package jsonrpc

// BatchResponse is the final envelope for a batch request: either a JSON
// array of member envelopes, or a single top-level error envelope (empty or
// oversized batch).
type BatchResponse struct {
	Body    string
	Success bool
}

// InvalidBatchResponse is the canonical envelope for a batch that cannot be
// answered as an array: empty batches and batches whose responses exceed the
// aggregate size limit.
func InvalidBatchResponse() BatchResponse {
	resp := Error(nil, ErrorFromCode(CodeInvalidRequest))
	return BatchResponse{Body: resp.Body, Success: false}
}

// BatchResponseBuilder incrementally assembles a JSON array of response
// envelopes under one aggregate byte limit.
//
// A JSON array cannot be validly truncated, so breaching the limit abandons
// the whole batch: Append reports failure and the caller should stop
// serializing the remaining calls and send InvalidBatchResponse instead.
type BatchResponseBuilder struct {
	// buf holds the array under construction. Each appended entry is
	// followed by a separator; Finish turns the last separator into the
	// closing bracket.
	buf   []byte
	limit int
}

// NewBatchResponseBuilder creates a builder whose finished body, delimiters
// included, will not exceed limit bytes.
func NewBatchResponseBuilder(limit int) *BatchResponseBuilder {
	buf := make([]byte, 0, min(limit, 2048))
	buf = append(buf, '[')
	return &BatchResponseBuilder{buf: buf, limit: limit}
}

// Append adds one response envelope to the batch. It reports false when the
// entry would push the batch past its limit; the batch is then spent and the
// caller should abandon the remaining calls.
//
// Each entry is budgeted one extra byte for the separator that either
// becomes a comma or is replaced by the closing bracket.
func (b *BatchResponseBuilder) Append(resp MethodResponse) bool {
	if len(b.buf)+len(resp.Body)+1 > b.limit {
		return false
	}
	b.buf = append(b.buf, resp.Body...)
	b.buf = append(b.buf, ',')
	return true
}

// Empty reports whether nothing has been appended.
func (b *BatchResponseBuilder) Empty() bool {
	return len(b.buf) <= 1
}

// Finish consumes the builder and returns the batch envelope. An empty batch
// is itself an invalid request: a batch must contain at least one call.
func (b *BatchResponseBuilder) Finish() BatchResponse {
	if b.Empty() {
		return InvalidBatchResponse()
	}
	b.buf[len(b.buf)-1] = ']'
	return BatchResponse{Body: string(b.buf), Success: true}
}
