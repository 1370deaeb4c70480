// Package jsonrpc builds size-bounded JSON-RPC 2.0 response envelopes.
//
// This package is the construction half of onewire: it turns a method
// result (or error) into a complete, independently parseable response
// envelope without ever exceeding a configured byte limit. Delivery of the
// finished envelopes is handled by the sink package.
//
// # Responses
//
// NewResponse serializes a result envelope through a BoundedWriter. When the
// serialized form would exceed the limit, the caller gets a small,
// deterministic "response too big" error envelope instead of a truncated or
// missing reply:
//
//	resp := jsonrpc.NewResponse(id, result, maxSize)
//	sink.Send(ctx, resp.Body)
//
// Truncating JSON text cannot yield valid JSON, so the limit is enforced
// while building the envelope and the oversized payload is discarded whole.
//
// # Batches
//
// BatchResponseBuilder assembles a JSON array of response envelopes under a
// single aggregate limit. Exceeding the limit abandons the batch early so
// that remaining calls in an oversized batch are not serialized for nothing:
//
//	b := jsonrpc.NewBatchResponseBuilder(limit)
//	for _, r := range responses {
//		if !b.Append(r) {
//			return jsonrpc.InvalidBatchResponse()
//		}
//	}
//	return b.Finish()
//
// # Error codes
//
// Standard JSON-RPC 2.0 codes are defined as constants, together with the
// server-assigned codes used by this module (oversized response,
// subscription close).
package jsonrpc
