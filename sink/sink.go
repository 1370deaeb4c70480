package sink

import (
	"context"
	"errors"
	"sync"

	"github.com/mnehpets/onewire/jsonrpc"
)

var (
	// ErrClosed reports that the consumer side of the connection is
	// permanently gone.
	ErrClosed = errors.New("sink: closed")
	// ErrFull reports that the queue had no free slot for a non-blocking
	// send.
	ErrFull = errors.New("sink: full")
)

// core is the shared state behind every clone of a connection's sink.
//
// slots is a token semaphore in front of queue: a producer first takes a
// token, then enqueues. Tokens are returned when the receiver drains a
// message (or a reservation is released), so a held token guarantees the
// queue send cannot block. This is what makes two-phase Reserve/Permit work.
type core struct {
	slots chan struct{}
	queue chan string
	done  chan struct{}
	once  sync.Once
}

func newCore(capacity int) *core {
	if capacity < 1 {
		panic("sink: capacity must be at least 1")
	}
	c := &core{
		slots: make(chan struct{}, capacity),
		queue: make(chan string, capacity),
		done:  make(chan struct{}),
	}
	for range capacity {
		c.slots <- struct{}{}
	}
	return c
}

func (c *core) close() {
	c.once.Do(func() { close(c.done) })
}

// MethodSink is the producer handle for one connection's outgoing messages.
//
// It is safe for concurrent use and is shared by every call and subscription
// task writing to the connection. The size and log-length limits are
// captured at construction and immutable afterwards.
type MethodSink struct {
	c               *core
	maxResponseSize int
	maxLogLength    int
}

// Receiver is the consumer side, owned by the transport writer. Closing it
// permanently disconnects every producer.
type Receiver struct {
	c *core
}

// New creates a sink/receiver pair with unlimited response size and log
// length. capacity is the queue depth and must be at least 1.
func New(capacity int) (*MethodSink, *Receiver) {
	return NewWithLimit(capacity, jsonrpc.NoLimit, jsonrpc.NoLimit)
}

// NewWithLimit creates a sink/receiver pair with a response size limit and a
// log preview limit, both in bytes.
func NewWithLimit(capacity, maxResponseSize, maxLogLength int) (*MethodSink, *Receiver) {
	c := newCore(capacity)
	s := &MethodSink{c: c, maxResponseSize: maxResponseSize, maxLogLength: maxLogLength}
	return s, &Receiver{c: c}
}

// MaxResponseSize returns the per-call response size limit this connection
// was configured with.
func (s *MethodSink) MaxResponseSize() int {
	return s.maxResponseSize
}

// IsClosed reports whether the consumer side is permanently gone.
func (s *MethodSink) IsClosed() bool {
	select {
	case <-s.c.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed when the connection closes. Once
// closed it stays closed; the channel can be read any number of times.
func (s *MethodSink) Done() <-chan struct{} {
	return s.c.done
}

// TrySend enqueues msg without blocking. It fails with ErrFull when the
// queue has no free slot and ErrClosed when the connection is gone; the
// caller keeps msg and decides whether to drop, log, or retry it.
func (s *MethodSink) TrySend(msg string) error {
	if s.IsClosed() {
		return ErrClosed
	}
	select {
	case <-s.c.slots:
	default:
		return ErrFull
	}
	if s.IsClosed() {
		s.c.slots <- struct{}{}
		return ErrClosed
	}
	logTx(msg, s.maxLogLength)
	s.c.queue <- msg
	return nil
}

// Send enqueues msg, waiting for queue capacity if necessary. It fails only
// when the connection closes or ctx is cancelled.
func (s *MethodSink) Send(ctx context.Context, msg string) error {
	select {
	case <-s.c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	case <-s.c.slots:
	}
	if s.IsClosed() {
		s.c.slots <- struct{}{}
		return ErrClosed
	}
	logTx(msg, s.maxLogLength)
	s.c.queue <- msg
	return nil
}

// Reserve waits until one slot of queue capacity is available and claims it.
//
// The returned Permit enqueues without blocking and without failing for
// capacity, so a caller can reserve first and only then commit to expensive
// serialization work.
func (s *MethodSink) Reserve(ctx context.Context) (*Permit, error) {
	select {
	case <-s.c.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.c.slots:
	}
	if s.IsClosed() {
		s.c.slots <- struct{}{}
		return nil, ErrClosed
	}
	return &Permit{c: s.c, maxLogLength: s.maxLogLength}, nil
}

// Recv returns the next outgoing message. Messages already accepted into the
// queue are drained before closure is reported, so nothing enqueued is lost.
// After the queue is empty and the receiver is closed, Recv fails with
// ErrClosed.
func (r *Receiver) Recv(ctx context.Context) (string, error) {
	// Drain before observing closure.
	select {
	case msg := <-r.c.queue:
		r.c.slots <- struct{}{}
		return msg, nil
	default:
	}
	select {
	case msg := <-r.c.queue:
		r.c.slots <- struct{}{}
		return msg, nil
	case <-r.c.done:
		return "", ErrClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close permanently disconnects the sink. Producers blocked in Send or
// Reserve fail with ErrClosed; later sends fail immediately. Close is
// idempotent.
func (r *Receiver) Close() {
	r.c.close()
}
