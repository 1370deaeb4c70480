// Command stream demonstrates one connection end to end: a subscription
// pump producing notification frames through a bounded sink, and a consumer
// loop standing in for the transport writer.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/mnehpets/onewire/jsonrpc"
	"github.com/mnehpets/onewire/sink"
	"github.com/mnehpets/onewire/subscription"
)

func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s: %v", name, err)
	}
	return n
}

func main() {
	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	capacity := envInt("ONEWIRE_CHANNEL_CAPACITY", 16)
	maxResponseSize := envInt("ONEWIRE_MAX_RESPONSE_SIZE", jsonrpc.NoLimit)
	maxLogLength := envInt("ONEWIRE_MAX_LOG_LENGTH", 256)

	s, r := sink.NewWithLimit(capacity, maxResponseSize, maxLogLength)

	ticks := func(yield func(string) bool) {
		for i := 1; i <= 5; i++ {
			time.Sleep(100 * time.Millisecond)
			if !yield(fmt.Sprintf("tick %d", i)) {
				return
			}
		}
	}

	g, ctx := errgroup.WithContext(context.Background())

	// Transport writer: drain the connection queue until it closes.
	g.Go(func() error {
		for {
			msg, err := r.Recv(ctx)
			if errors.Is(err, sink.ErrClosed) {
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Println(msg)
		}
	})

	// Subscription task: answer the subscribe call, stream ticks at a
	// bounded pace, close the stream, then drop the connection.
	g.Go(func() error {
		pending := subscription.NewPending(s, json.RawMessage("1"), "sub-ticks", "time_tick")
		subscription.Pipe(ctx, pending, ticks,
			subscription.WithLimiter(rate.NewLimiter(rate.Every(50*time.Millisecond), 1)))
		r.Close()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
