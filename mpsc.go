package ringbuffer

import (
	"runtime"
	"sync/atomic"
)

// ClaimStrategy governs how a producer obtains the next write sequence.
type ClaimStrategy interface {
	// GetAndIncrement returns the next sequence to publish and advances
	// the internal counter.
	GetAndIncrement() int64
	// SetSequence forces the counter so the next claim returns s. Used
	// only by the force-fill path, to resynchronize after an explicit
	// out-of-band publication.
	SetSequence(s int64)
	// WaitForCursor blocks until the ring's cursor reaches target. A hook
	// for multi-producer strategies where the last claimer must serialize
	// cursor publication so the cursor advances in sequence order.
	WaitForCursor(target int64, ring cursorSource)
}

// SingleThreadedClaimStrategy is a plain, non-atomic counter. Correct
// only under the precondition that at most one producer goroutine ever
// calls GetAndIncrement; callers needing more than one concurrent
// producer must use AtomicClaimStrategy instead.
type SingleThreadedClaimStrategy struct {
	sequence int64
}

// NewSingleThreadedClaimStrategy returns a claim strategy whose first
// GetAndIncrement call returns 0.
func NewSingleThreadedClaimStrategy() *SingleThreadedClaimStrategy {
	return &SingleThreadedClaimStrategy{}
}

func (s *SingleThreadedClaimStrategy) GetAndIncrement() int64 {
	seq := s.sequence
	s.sequence++
	return seq
}

func (s *SingleThreadedClaimStrategy) SetSequence(seq int64) {
	s.sequence = seq
}

// WaitForCursor is a no-op here: under a single producer goroutine, the
// cursor is always caught up to target by the time this is called, since
// the same goroutine is the one about to publish it. Retained as an
// extension point for a future multi-producer strategy.
func (s *SingleThreadedClaimStrategy) WaitForCursor(target int64, ring cursorSource) {
}

// AtomicClaimStrategy is the multi-producer extension point named by the
// design: a fetch-and-add counter plus cooperative cursor ordering so the
// last claimer to arrive serializes its cursor publication after any
// sequence numbers claimed before it.
type AtomicClaimStrategy struct {
	sequence atomic.Int64
}

// NewAtomicClaimStrategy returns a claim strategy whose first
// GetAndIncrement call returns 0.
func NewAtomicClaimStrategy() *AtomicClaimStrategy {
	s := &AtomicClaimStrategy{}
	s.sequence.Store(-1)
	return s
}

func (s *AtomicClaimStrategy) GetAndIncrement() int64 {
	return s.sequence.Add(1)
}

func (s *AtomicClaimStrategy) SetSequence(seq int64) {
	s.sequence.Store(seq - 1)
}

// WaitForCursor spins until the ring's cursor reaches target, ensuring
// commits become visible in claim order even though claims themselves
// may be granted out of order across producer goroutines.
func (s *AtomicClaimStrategy) WaitForCursor(target int64, ring cursorSource) {
	for ring.Cursor() != target {
		runtime.Gosched()
	}
}
