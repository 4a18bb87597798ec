package ringbuffer

import "sync/atomic"

// cursorSource is the narrow capability a claim or wait strategy needs
// from the ring: read-only access to the published cursor. Strategies
// never see the entry array or the other barriers.
type cursorSource interface {
	Cursor() int64
}

// RingBuffer holds the entry array, mask, cursor, claim strategy, wait
// strategy, and entry factory wiring described in the design. Entries are
// created once at construction and indexed by seq&mask thereafter.
type RingBuffer[T any] struct {
	entries  []*Entry[T]
	mask     int64
	capacity int64

	_      cacheLinePad
	cursor atomic.Int64
	_      cacheLinePad

	claim ClaimStrategy
	wait  WaitStrategy
}

// New creates a ring buffer of the requested size (rounded up to the next
// power of two), defaulting to a single-threaded claim strategy and a
// yielding wait strategy.
func New[T any](factory EntryFactory[T], size int64) *RingBuffer[T] {
	return NewWithStrategies(factory, size, NewSingleThreadedClaimStrategy(), NewYieldingWaitStrategy())
}

// NewWithStrategies creates a ring buffer with explicit claim and wait
// strategies.
func NewWithStrategies[T any](factory EntryFactory[T], size int64, claim ClaimStrategy, wait WaitStrategy) *RingBuffer[T] {
	capacity := CeilPow2(size)

	entries := make([]*Entry[T], capacity)
	for i := range entries {
		entries[i] = factory()
	}

	rb := &RingBuffer[T]{
		entries:  entries,
		mask:     capacity - 1,
		capacity: capacity,
		claim:    claim,
		wait:     wait,
	}
	rb.cursor.Store(-1)
	return rb
}

// Capacity returns cap = ceil_pow2(requested_size); always a power of two.
func (r *RingBuffer[T]) Capacity() int64 {
	return r.capacity
}

// Cursor returns the highest published sequence, with acquire semantics.
func (r *RingBuffer[T]) Cursor() int64 {
	return r.cursor.Load()
}

// Entry returns the slot for seq, computed as seq&mask. The two's
// complement truncation is intentional and also works for the -1 cursor
// sentinel.
func (r *RingBuffer[T]) Entry(seq int64) *Entry[T] {
	return r.entries[seq&r.mask]
}

// CreateConsumerBarrier builds a barrier that waits on the given upstream
// consumers (or the ring cursor if none are given).
func (r *RingBuffer[T]) CreateConsumerBarrier(tracked ...Consumer) *ConsumerBarrier[T] {
	return newConsumerBarrier(r, tracked)
}

// CreateProducerBarrier builds the normal publication barrier. At least
// one tracked consumer is required so the capacity gate has something to
// measure against.
func (r *RingBuffer[T]) CreateProducerBarrier(tracked ...Consumer) (*ProducerBarrier[T], error) {
	return newProducerBarrier(r, tracked)
}

// CreateForceFillProducerBarrier builds the administrative, explicit-
// sequence publication barrier. At least one tracked consumer is
// required, same as the normal producer barrier.
func (r *RingBuffer[T]) CreateForceFillProducerBarrier(tracked ...Consumer) (*ForceFillProducerBarrier[T], error) {
	return newForceFillProducerBarrier(r, tracked)
}
