package ringbuffer

import (
	"sync/atomic"
	"time"
)

// ConsumerBarrier is a view onto the ring plus the set of upstream
// handles that together define when a waiter may proceed. Alert is the
// only supported cancellation mechanism; timeouts return normally.
type ConsumerBarrier[T any] struct {
	ring      *RingBuffer[T]
	consumers []Sequencer

	_       cacheLinePad
	alerted atomic.Bool
	_       cacheLinePad
}

func newConsumerBarrier[T any](ring *RingBuffer[T], tracked []Consumer) *ConsumerBarrier[T] {
	return &ConsumerBarrier[T]{
		ring:      ring,
		consumers: toSequencers(tracked),
	}
}

// WaitFor blocks until seq is available (via the ring's wait strategy)
// and returns the available sequence, which may exceed seq. Returns
// ErrAlerted if Alert is observed during the wait.
func (b *ConsumerBarrier[T]) WaitFor(seq int64) (int64, error) {
	return b.ring.wait.WaitFor(b.consumers, b.ring, b, seq)
}

// WaitForTimeout behaves like WaitFor but returns the current cursor
// (which may be -1) instead of blocking past timeout.
func (b *ConsumerBarrier[T]) WaitForTimeout(seq int64, timeout time.Duration) int64 {
	return b.ring.wait.WaitForTimeout(b.consumers, b.ring, b, seq, timeout)
}

// GetCursor returns the ring's current cursor.
func (b *ConsumerBarrier[T]) GetCursor() int64 {
	return b.ring.Cursor()
}

// GetEntry returns direct slot access, identical to ring.Entry(seq).
func (b *ConsumerBarrier[T]) GetEntry(seq int64) *Entry[T] {
	return b.ring.Entry(seq)
}

// IsAlerted reports the last Alert/ClearAlert call, with acquire
// semantics.
func (b *ConsumerBarrier[T]) IsAlerted() bool {
	return b.alerted.Load()
}

// Alert sets the sticky cancellation flag and wakes any parked waiter so
// it observes the alert promptly instead of on its next natural poll.
func (b *ConsumerBarrier[T]) Alert() {
	b.alerted.Store(true)
	b.ring.wait.SignalAll()
}

// ClearAlert clears the sticky flag; the consumer must call this before
// it may resume normal waiting.
func (b *ConsumerBarrier[T]) ClearAlert() {
	b.alerted.Store(false)
}
