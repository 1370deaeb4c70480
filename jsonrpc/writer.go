package jsonrpc

import (
	"errors"
	"math"
)

// NoLimit disables size limiting when passed as a capacity.
const NoLimit = math.MaxInt

// ErrCapacityExceeded is returned by BoundedWriter.Write when a write would
// push the buffer past its capacity.
var ErrCapacityExceeded = errors.New("jsonrpc: memory capacity exceeded")

// BoundedWriter is an in-memory byte sink that accepts at most max bytes.
//
// A write that would exceed the capacity fails atomically: the buffer is
// left unchanged, never partially appended. That matters because a caller
// may write an envelope in several pieces, and a partial append would leave
// corrupt JSON text behind.
type BoundedWriter struct {
	max int
	buf []byte
}

// NewBoundedWriter creates a writer that accepts at most max bytes.
func NewBoundedWriter(max int) *BoundedWriter {
	return &BoundedWriter{max: max, buf: make([]byte, 0, min(max, 128))}
}

// Write implements io.Writer.
func (w *BoundedWriter) Write(p []byte) (int, error) {
	if len(w.buf)+len(p) > w.max {
		return 0, ErrCapacityExceeded
	}
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// Len reports the number of bytes accumulated so far.
func (w *BoundedWriter) Len() int {
	return len(w.buf)
}

// Bytes returns the accumulated bytes. The writer must not be written to
// afterwards.
func (w *BoundedWriter) Bytes() []byte {
	return w.buf
}
