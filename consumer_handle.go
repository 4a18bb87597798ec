package ringbuffer

import (
	"sync"
	"sync/atomic"
)

// Consumer is the consumer-shaped capability supplied by the caller: a
// readable sequence (the highest sequence this consumer has finished
// processing) and an opaque lifecycle hook.
type Consumer interface {
	Sequence() int64
	Halt()
}

// SimpleConsumer is a ready-made Consumer for callers who only need to
// track their own progress and don't require a custom Halt.
type SimpleConsumer struct {
	sequence atomic.Int64
	haltOnce sync.Once
	haltC    chan struct{}
}

// NewSimpleConsumer returns a consumer whose sequence starts at -1 (has
// not processed anything yet).
func NewSimpleConsumer() *SimpleConsumer {
	c := &SimpleConsumer{haltC: make(chan struct{})}
	c.sequence.Store(-1)
	return c
}

// Sequence returns the highest sequence this consumer has finished
// processing, with acquire semantics.
func (c *SimpleConsumer) Sequence() int64 {
	return c.sequence.Load()
}

// SetSequence records that this consumer has finished processing up to
// and including seq, with release semantics.
func (c *SimpleConsumer) SetSequence(seq int64) {
	c.sequence.Store(seq)
}

// Halt requests this consumer's event loop to stop; idempotent.
func (c *SimpleConsumer) Halt() {
	c.haltOnce.Do(func() { close(c.haltC) })
}

// Halted returns a channel closed once Halt has been called.
func (c *SimpleConsumer) Halted() <-chan struct{} {
	return c.haltC
}

type sequencerAdapter struct{ c Consumer }

func (a sequencerAdapter) Load() int64 { return a.c.Sequence() }

func toSequencers(consumers []Consumer) []Sequencer {
	out := make([]Sequencer, len(consumers))
	for i, c := range consumers {
		out[i] = sequencerAdapter{c}
	}
	return out
}
