package ringbuffer

import "runtime"

// ProducerBarrier is the normal publication protocol: producers claim a
// sequence from the claim strategy, gate on downstream consumers not
// falling more than capacity behind, and publish with a single release
// store to the cursor.
type ProducerBarrier[T any] struct {
	ring      *RingBuffer[T]
	consumers []Sequencer
}

func newProducerBarrier[T any](ring *RingBuffer[T], tracked []Consumer) (*ProducerBarrier[T], error) {
	if len(tracked) == 0 {
		return nil, ErrNoConsumers
	}
	return &ProducerBarrier[T]{
		ring:      ring,
		consumers: toSequencers(tracked),
	}, nil
}

// NextEntry claims the next sequence, busy-waits (yielding) until
// publishing it would not overwrite a slot some tracked consumer has not
// yet processed, stamps the entry's sequence, and returns it for the
// caller to populate.
func (p *ProducerBarrier[T]) NextEntry() *Entry[T] {
	seq := p.ring.claim.GetAndIncrement()

	var spins uint32
	for seq-MinSequence(p.consumers, seq) >= p.ring.capacity {
		spins++
		if spins%goschedEvery == 0 {
			runtime.Gosched()
		}
	}

	entry := p.ring.Entry(seq)
	entry.setSequence(seq)
	return entry
}

// Commit publishes entry: it waits for the claim strategy's cursor-
// ordering hook (a no-op under the default single-threaded claim
// strategy), then releases the new cursor value and signals the wait
// strategy so any parked consumer wakes.
func (p *ProducerBarrier[T]) Commit(entry *Entry[T]) {
	seq := entry.Sequence()
	p.ring.claim.WaitForCursor(seq-1, p.ring)
	p.ring.cursor.Store(seq)
	p.ring.wait.SignalAll()
}

// GetCursor returns the ring's current cursor.
func (p *ProducerBarrier[T]) GetCursor() int64 {
	return p.ring.Cursor()
}
