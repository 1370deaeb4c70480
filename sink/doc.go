// Package sink delivers finished JSON-RPC messages to a client connection
// through a bounded queue.
//
// A connection owns exactly one queue: many concurrent producers (method
// calls, subscription pumps) share a MethodSink, and the transport writer
// drains the single Receiver. The queue is bounded, so a slow client
// backpressures producers instead of growing memory without limit.
//
// Producers choose how to meet that backpressure:
//
//   - TrySend never blocks; a full or closed queue fails immediately and the
//     caller decides whether to drop or retry.
//   - Send waits for capacity and fails only when the client is gone.
//   - Reserve claims one slot up front and returns a Permit. The Permit is
//     guaranteed to enqueue without blocking, which lets a caller confirm
//     delivery is possible before spending work on serialization.
//
// A Permit must be consumed by exactly one send, or released. It is not safe
// for concurrent use and consuming it twice is a programmer error.
//
// Every outbound message, whichever path enqueued it, is logged as a
// length-bounded preview so observability is uniform across paths.
package sink
