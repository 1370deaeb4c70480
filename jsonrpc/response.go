package jsonrpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// internalErrorBody is the last-resort envelope used when even an error
// envelope fails to serialize. It is valid JSON by inspection.
const internalErrorBody = `{"jsonrpc":"2.0","error":{"code":-32603,"message":"Internal error"},"id":null}`

// MethodResponse is one fully-formed, serialized JSON-RPC response envelope.
//
// Success distinguishes "the call produced a result" from envelopes built by
// a fallback path (error result, oversized response, internal failure). On
// the wire both are ordinary envelopes.
type MethodResponse struct {
	// Body is the serialized envelope, ready for the transport.
	Body string
	// Success reports whether the call succeeded and its result was emitted
	// as requested.
	Success bool
}

// responseEnvelope is the wire shape of a single response. Field order here
// is field order on the wire. ID has no omitempty: a response always echoes
// its id, serializing nil as null.
type responseEnvelope struct {
	Version string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ErrorObject    `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

// NewResponse serializes {"jsonrpc":"2.0","result":R,"id":I} under a size
// limit of maxSize bytes (use NoLimit for none).
//
// If the serialization would exceed maxSize, the oversized payload is
// discarded and a small oversized-response error envelope is returned in its
// place, with Success=false. The substitute fits by construction since it
// excludes the payload. Any other serialization failure yields an
// internal-error envelope, also with Success=false.
func NewResponse(id json.RawMessage, result any, maxSize int) MethodResponse {
	raw, err := json.Marshal(result)
	if err != nil {
		log.Printf("jsonrpc: serializing response: %v", err)
		return Error(id, ErrorFromCode(CodeInternalError))
	}

	w := NewBoundedWriter(maxSize)
	err = writeEnvelope(w, responseEnvelope{Version: "2.0", Result: raw, ID: id})
	switch {
	case err == nil:
		return MethodResponse{Body: string(w.Bytes()), Success: true}
	case errors.Is(err, ErrCapacityExceeded):
		data := fmt.Sprintf("Exceeded max limit of %d", maxSize)
		return Error(id, &ErrorObject{Code: CodeOversizedResponse, Message: MsgOversizedResponse, Data: data})
	default:
		log.Printf("jsonrpc: serializing response: %v", err)
		return Error(id, ErrorFromCode(CodeInternalError))
	}
}

// Error builds {"jsonrpc":"2.0","error":E,"id":I} unconditionally.
// It is used for failures that never attempted a result and is not size
// limited; error envelopes are small by construction.
func Error(id json.RawMessage, errObj *ErrorObject) MethodResponse {
	b, err := json.Marshal(responseEnvelope{Version: "2.0", Error: errObj, ID: id})
	if err != nil {
		// Data carried a value encoding/json cannot represent.
		log.Printf("jsonrpc: serializing error envelope: %v", err)
		return MethodResponse{Body: internalErrorBody, Success: false}
	}
	return MethodResponse{Body: string(b), Success: false}
}

func writeEnvelope(w *BoundedWriter, env responseEnvelope) error {
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// PrepareError classifies a request body that could not be processed.
//
// A body that still parses far enough to carry an id yields an
// invalid-request error echoing that id, so the client can correlate the
// failure. Plain garbage yields a parse error with a null id.
func PrepareError(data []byte) (json.RawMessage, *ErrorObject) {
	var probe struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, ErrorFromCode(CodeParseError)
	}
	return probe.ID, ErrorFromCode(CodeInvalidRequest)
}
