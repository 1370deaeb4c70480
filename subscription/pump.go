package subscription

import (
	"context"
	"iter"

	"golang.org/x/time/rate"
)

// Option configures Pipe.
type Option func(*options)

type options struct {
	limiter *rate.Limiter
}

// WithLimiter paces notification forwarding: the pump waits for the limiter
// before each item frame. Terminal frames are not paced. Disconnection still
// wins while waiting.
func WithLimiter(l *rate.Limiter) Option {
	return func(o *options) { o.limiter = l }
}

// Pipe accepts pending and forwards every item of seq as a notification
// frame until the client disconnects or seq ends.
//
// Lifecycle:
//   - handshake failure (client unsubscribed or response rejected):
//     terminate silently, no frames;
//   - client disconnect, checked with priority over a ready item:
//     terminate immediately, nothing left to tell the client;
//   - seq exhausted: exactly one success terminal frame, then terminate;
//   - any send failure: terminate with no further frames.
//
// Handlers that need an error close instead of the success close should
// drive a Sink directly and call Close with a Failure reason.
func Pipe[T any](ctx context.Context, pending *Pending, seq iter.Seq[T], opts ...Option) {
	var cfg options
	for _, o := range opts {
		o(&cfg)
	}

	sub, err := pending.Accept(ctx)
	if err != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Stop upstream work as soon as the client is gone.
	go func() {
		select {
		case <-sub.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	// Buffered channel (size 1) lets the iterator stay one item ahead
	// without unbounded buffering. The goroutine checks cancellation before
	// each yield so an abandoned iterator terminates.
	items := make(chan T, 1)
	go func() {
		defer close(items)
		for item := range seq {
			select {
			case <-ctx.Done():
				return
			case items <- item:
			}
		}
	}()

	for {
		// Disconnection wins over a ready item: select alone picks randomly
		// among ready cases, so check the closed state first.
		select {
		case <-sub.Done():
			return
		default:
		}

		select {
		case <-sub.Done():
			return
		case <-ctx.Done():
			return
		case item, ok := <-items:
			if !ok {
				_ = sub.Close(ctx, Exhausted)
				return
			}
			if cfg.limiter != nil {
				if err := cfg.limiter.Wait(ctx); err != nil {
					return
				}
			}
			if err := sub.Send(ctx, item); err != nil {
				return
			}
		}
	}
}
