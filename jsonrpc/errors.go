package jsonrpc

// JSON-RPC 2.0 error codes, plus the server-assigned codes used by this
// module. Codes in [-32099, -32000] are reserved for implementation-defined
// server errors.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	// CodeCallFailed is the generic code for a method call that returned a
	// plain Go error rather than an *ErrorObject.
	CodeCallFailed = -32000

	// CodeSubscriptionClosed and CodeSubscriptionClosedWithError mark the
	// terminal frame of a subscription stream.
	CodeSubscriptionClosed          = -32003
	CodeSubscriptionClosedWithError = -32004

	// CodeOversizedResponse is substituted when a response's serialization
	// would exceed the configured size limit.
	CodeOversizedResponse = -32008
)

// MsgOversizedResponse is the fixed message of the oversized-response
// envelope. Its data field states the numeric limit.
const MsgOversizedResponse = "The response was too big"

// ErrorObject is the error member of a JSON-RPC error envelope.
//
// It implements error so that method handlers can return one directly and
// have the code preserved on the wire.
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *ErrorObject) Error() string {
	return e.Message
}

// NewError creates an ErrorObject with the given code and message.
func NewError(code int, message string) *ErrorObject {
	return &ErrorObject{Code: code, Message: message}
}

// ErrorFromCode creates an ErrorObject carrying the standard message for a
// known code. Unknown codes get a generic message.
func ErrorFromCode(code int) *ErrorObject {
	return &ErrorObject{Code: code, Message: messageForCode(code)}
}

// ErrorFromErr converts any error to an ErrorObject.
// ErrorObject values preserve their code; other errors become CodeCallFailed.
func ErrorFromErr(err error) *ErrorObject {
	if rpcErr, ok := err.(*ErrorObject); ok {
		return rpcErr
	}
	return &ErrorObject{Code: CodeCallFailed, Message: err.Error()}
}

func messageForCode(code int) string {
	switch code {
	case CodeParseError:
		return "Parse error"
	case CodeInvalidRequest:
		return "Invalid request"
	case CodeMethodNotFound:
		return "Method not found"
	case CodeInvalidParams:
		return "Invalid params"
	case CodeInternalError:
		return "Internal error"
	case CodeCallFailed:
		return "RPC call failed"
	case CodeSubscriptionClosed:
		return "Subscription closed"
	case CodeSubscriptionClosedWithError:
		return "Subscription closed with error"
	case CodeOversizedResponse:
		return MsgOversizedResponse
	default:
		return "Unknown error"
	}
}
