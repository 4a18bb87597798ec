package ringbuffer

import (
	"runtime"
	"time"
)

// Alerter exposes the sticky alert flag a wait strategy must poll.
type Alerter interface {
	IsAlerted() bool
}

// WaitStrategy is the pluggable policy for how a waiter consumes CPU
// while a sequence is not yet available.
type WaitStrategy interface {
	// WaitFor blocks until the available sequence has reached seq and
	// returns it, which may exceed seq. The available sequence is the
	// ring's cursor, or, if consumers is non-empty, the minimum consumer
	// sequence capped at the cursor. At every polling step it checks
	// barrier.IsAlerted and returns ErrAlerted if set.
	WaitFor(consumers []Sequencer, ring cursorSource, barrier Alerter, seq int64) (int64, error)
	// WaitForTimeout behaves like WaitFor but returns the current ring
	// cursor (which may be -1) on timeout instead of blocking forever; it
	// never returns an error, on timeout or on alert. It also returns
	// early, with the current cursor, if barrier.IsAlerted() is observed
	// before the deadline elapses, so a caller relying on Alert() to
	// cancel a long-timeout wait is not stuck spinning to the deadline.
	WaitForTimeout(consumers []Sequencer, ring cursorSource, barrier Alerter, seq int64, timeout time.Duration) int64
	// SignalAll wakes any parked waiter. Busy-spin and yielding
	// strategies may treat this as a no-op.
	SignalAll()
}

// availableSequence computes the sequence a waiter may safely observe:
// the ring cursor, further bounded by the slowest tracked consumer when
// there is at least one, so a downstream barrier never outruns upstream
// progress even once the producer has published further ahead.
func availableSequence(consumers []Sequencer, ring cursorSource) int64 {
	available := ring.Cursor()
	if len(consumers) > 0 {
		if slowest := MinSequence(consumers, available); slowest < available {
			available = slowest
		}
	}
	return available
}

// BusySpinWaitStrategy spins tightly with no yielding: lowest latency,
// highest CPU usage. signal_all is a no-op since there is no parking to
// wake.
type BusySpinWaitStrategy struct{}

// NewBusySpinWaitStrategy returns a ready-to-use busy-spin strategy.
func NewBusySpinWaitStrategy() *BusySpinWaitStrategy {
	return &BusySpinWaitStrategy{}
}

func (BusySpinWaitStrategy) WaitFor(consumers []Sequencer, ring cursorSource, barrier Alerter, seq int64) (int64, error) {
	for {
		if barrier.IsAlerted() {
			return -1, ErrAlerted
		}
		if available := availableSequence(consumers, ring); available >= seq {
			return available, nil
		}
	}
}

func (BusySpinWaitStrategy) WaitForTimeout(consumers []Sequencer, ring cursorSource, barrier Alerter, seq int64, timeout time.Duration) int64 {
	deadline := time.Now().Add(timeout)
	for {
		if barrier.IsAlerted() {
			return ring.Cursor()
		}
		if available := availableSequence(consumers, ring); available >= seq {
			return available
		}
		if !time.Now().Before(deadline) {
			return ring.Cursor()
		}
	}
}

func (BusySpinWaitStrategy) SignalAll() {}

// goschedEvery throttles how often the yielding strategy calls
// runtime.Gosched relative to its polling, keeping the hot path from
// paying a scheduler call on every single iteration.
const goschedEvery = 64

// YieldingWaitStrategy loops with a voluntary yield to the scheduler
// every goschedEvery polls, trading a little latency for much lower CPU usage than
// busy-spin under contention.
type YieldingWaitStrategy struct{}

// NewYieldingWaitStrategy returns a ready-to-use yielding strategy. This
// is the default wait strategy for New.
func NewYieldingWaitStrategy() *YieldingWaitStrategy {
	return &YieldingWaitStrategy{}
}

func (YieldingWaitStrategy) WaitFor(consumers []Sequencer, ring cursorSource, barrier Alerter, seq int64) (int64, error) {
	var spins uint32
	for {
		if barrier.IsAlerted() {
			return -1, ErrAlerted
		}
		if available := availableSequence(consumers, ring); available >= seq {
			return available, nil
		}
		spins++
		if spins%goschedEvery == 0 {
			runtime.Gosched()
		}
	}
}

func (YieldingWaitStrategy) WaitForTimeout(consumers []Sequencer, ring cursorSource, barrier Alerter, seq int64, timeout time.Duration) int64 {
	deadline := time.Now().Add(timeout)
	var spins uint32
	for {
		if barrier.IsAlerted() {
			return ring.Cursor()
		}
		if available := availableSequence(consumers, ring); available >= seq {
			return available
		}
		if !time.Now().Before(deadline) {
			return ring.Cursor()
		}
		spins++
		if spins%goschedEvery == 0 {
			runtime.Gosched()
		}
	}
}

func (YieldingWaitStrategy) SignalAll() {}
