// Package subscription streams JSON-RPC notifications for one subscription
// over a connection's delivery sink.
//
// A subscribe call starts life as a Pending: the handler either Rejects it
// (answering the call with an error envelope) or Accepts it, which answers
// with the subscription id and upgrades to a Sink for notification frames.
// The Accept path reserves queue capacity before building the response, so a
// subscribe call on a congested connection never wastes serialization work.
//
// Pipe is the standard pump: it forwards items from an iterator into the
// Sink until the client disconnects or the iterator ends, and closes the
// stream with exactly one terminal frame. Handlers with custom lifecycles
// can drive a Sink directly and call Close themselves.
//
// Disconnection has priority: when the client is gone and an item is ready
// at the same time, the pump terminates rather than buffer output nobody
// will read.
package subscription
