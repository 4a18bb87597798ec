package ringbuffer

import "runtime"

// ForceFillProducerBarrier is an administrative/diagnostic publication
// path: the caller chooses the sequence explicitly instead of consulting
// the claim strategy, and may publish out of order or recover a sequence
// from an external record. It intentionally skips the monotonic-cursor
// check the normal producer barrier guards with WaitForCursor; force-fill
// and the normal producer barrier are mutually exclusive by convention,
// not concurrent producers racing the same ring.
type ForceFillProducerBarrier[T any] struct {
	ring      *RingBuffer[T]
	consumers []Sequencer
}

func newForceFillProducerBarrier[T any](ring *RingBuffer[T], tracked []Consumer) (*ForceFillProducerBarrier[T], error) {
	if len(tracked) == 0 {
		return nil, ErrNoConsumers
	}
	return &ForceFillProducerBarrier[T]{
		ring:      ring,
		consumers: toSequencers(tracked),
	}, nil
}

// ClaimEntry gates on the same downstream-capacity invariant as the
// normal producer barrier, for the caller-chosen seq, then stamps and
// returns the slot.
func (p *ForceFillProducerBarrier[T]) ClaimEntry(seq int64) *Entry[T] {
	for seq-MinSequence(p.consumers, seq) >= p.ring.capacity {
		runtime.Gosched()
	}
	entry := p.ring.Entry(seq)
	entry.setSequence(seq)
	return entry
}

// Commit resynchronizes the claim strategy so subsequent normal claims
// pick up after seq, then publishes with a release store and signals the
// wait strategy.
func (p *ForceFillProducerBarrier[T]) Commit(entry *Entry[T]) {
	seq := entry.Sequence()
	p.ring.claim.SetSequence(seq + 1)
	p.ring.cursor.Store(seq)
	p.ring.wait.SignalAll()
}
