package sink

import (
	"encoding/json"

	"github.com/mnehpets/onewire/jsonrpc"
)

// Permit is one reserved slot of queue capacity.
//
// A Permit must be consumed by exactly one of the Send methods, or given
// back with Release. It is not safe for concurrent use: the task that
// reserved it owns it. Consuming a Permit twice panics.
type Permit struct {
	c            *core
	maxLogLength int
	used         bool
}

// SendRaw enqueues a pre-serialized message. The sink does not verify the
// JSON; the caller is trusted to enqueue complete envelopes only.
func (p *Permit) SendRaw(body string) {
	p.consume()
	logTx(body, p.maxLogLength)
	// Cannot block: the reservation holds a queue slot.
	p.c.queue <- body
}

// SendError builds a JSON-RPC error envelope for id and enqueues it.
func (p *Permit) SendError(id json.RawMessage, errObj *jsonrpc.ErrorObject) {
	p.SendRaw(jsonrpc.Error(id, errObj).Body)
}

// SendCallError enqueues an error envelope for a failed method call,
// preserving the code of *jsonrpc.ErrorObject values.
func (p *Permit) SendCallError(id json.RawMessage, err error) {
	p.SendError(id, jsonrpc.ErrorFromErr(err))
}

// Release returns the reserved slot unused. Releasing after a send, or a
// second time, is a no-op.
func (p *Permit) Release() {
	if p.used {
		return
	}
	p.used = true
	p.c.slots <- struct{}{}
}

func (p *Permit) consume() {
	if p.used {
		panic("sink: permit consumed twice")
	}
	p.used = true
}
