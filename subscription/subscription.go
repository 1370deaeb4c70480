package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"

	"github.com/mnehpets/onewire/jsonrpc"
	"github.com/mnehpets/onewire/sink"
)

// ErrRejected reports that a subscription could not be established: the
// client disconnected during the handshake, or the subscribe response could
// not be emitted within the connection's size limit.
var ErrRejected = errors.New("subscription: rejected")

// Pending is a subscribe call that has not been answered yet. The handler
// must resolve it exactly once, with Accept or Reject.
type Pending struct {
	sink   *sink.MethodSink
	reqID  json.RawMessage
	subID  string
	method string
}

// NewPending ties an unanswered subscribe call (reqID) to its assigned
// subscription id and the method name its notification frames will carry.
func NewPending(s *sink.MethodSink, reqID json.RawMessage, subID, method string) *Pending {
	return &Pending{sink: s, reqID: reqID, subID: subID, method: method}
}

// Accept answers the subscribe call with the subscription id and upgrades to
// an active Sink. Queue capacity is reserved before the response is built.
//
// Accept fails when the client is already gone, or with ErrRejected when the
// response could not be emitted as requested; in both cases the subscription
// must not be used.
func (p *Pending) Accept(ctx context.Context) (*Sink, error) {
	permit, err := p.sink.Reserve(ctx)
	if err != nil {
		return nil, err
	}
	resp := jsonrpc.NewResponse(p.reqID, p.subID, p.sink.MaxResponseSize())
	permit.SendRaw(resp.Body)
	if !resp.Success {
		return nil, ErrRejected
	}
	return &Sink{sink: p.sink, subID: p.subID, method: p.method}, nil
}

// Reject answers the subscribe call with an error envelope. Used when the
// handler refuses the subscription, e.g. for invalid params.
func (p *Pending) Reject(ctx context.Context, errObj *jsonrpc.ErrorObject) error {
	permit, err := p.sink.Reserve(ctx)
	if err != nil {
		return err
	}
	permit.SendError(p.reqID, errObj)
	return nil
}

// Sink sends the notification frames of one accepted subscription.
//
// Frames have the shape
// {"jsonrpc":"2.0","method":M,"params":{"subscription":S,"result":V}}.
// The terminal frame produced by Close uses the same shape with the close
// reason as the payload.
type Sink struct {
	sink   *sink.MethodSink
	subID  string
	method string
	closed atomic.Bool
}

type notificationParams struct {
	Subscription string          `json:"subscription"`
	Result       json.RawMessage `json:"result"`
}

type notification struct {
	Version string             `json:"jsonrpc"`
	Method  string             `json:"method"`
	Params  notificationParams `json:"params"`
}

// Send delivers one item as a notification frame, waiting for queue
// capacity. It fails once the client disconnects or the stream was closed.
func (s *Sink) Send(ctx context.Context, item any) error {
	if s.closed.Load() {
		return sink.ErrClosed
	}
	msg, err := s.buildNotification(item)
	if err != nil {
		return err
	}
	return s.sink.Send(ctx, msg)
}

// Done mirrors the underlying connection: the returned channel is closed
// once the client is permanently gone.
func (s *Sink) Done() <-chan struct{} {
	return s.sink.Done()
}

// Close ends the stream with a single terminal frame. Only the first call
// sends a frame; afterwards Send fails, so no item frame can follow the
// terminal one. Close reports a send failure (client already gone), in which
// case no terminal frame was delivered and none will be.
func (s *Sink) Close(ctx context.Context, reason CloseReason) error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	msg, err := s.buildNotification(reason)
	if err != nil {
		return err
	}
	return s.sink.Send(ctx, msg)
}

func (s *Sink) buildNotification(item any) (string, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(notification{
		Version: "2.0",
		Method:  s.method,
		Params:  notificationParams{Subscription: s.subID, Result: raw},
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CloseReason is the payload of a subscription's terminal frame.
type CloseReason struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Exhausted is the success close: the upstream source ended normally.
var Exhausted = CloseReason{
	Code:    jsonrpc.CodeSubscriptionClosed,
	Message: "Subscription closed",
}

// Failure builds the error close for a handler-detected unrecoverable
// condition.
func Failure(message string, data any) CloseReason {
	return CloseReason{
		Code:    jsonrpc.CodeSubscriptionClosedWithError,
		Message: message,
		Data:    data,
	}
}
