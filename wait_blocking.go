package ringbuffer

import (
	"sync"
	"time"
)

// BlockingWaitStrategy parks on a condition variable until signalled,
// tolerating spurious wakeups. signal_all wakes every parked waiter; it
// is invoked by the producer barriers after every cursor advance and by
// Alert so a parked consumer observes the alert promptly.
type BlockingWaitStrategy struct {
	mu   sync.Mutex
	cond *sync.Cond
}

// NewBlockingWaitStrategy returns a ready-to-use blocking strategy.
func NewBlockingWaitStrategy() *BlockingWaitStrategy {
	w := &BlockingWaitStrategy{}
	w.cond = sync.NewCond(&w.mu)
	return w
}

func (w *BlockingWaitStrategy) WaitFor(consumers []Sequencer, ring cursorSource, barrier Alerter, seq int64) (int64, error) {
	if available := availableSequence(consumers, ring); available >= seq {
		return available, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for {
		if barrier.IsAlerted() {
			return -1, ErrAlerted
		}
		if available := availableSequence(consumers, ring); available >= seq {
			return available, nil
		}
		w.cond.Wait()
	}
}

// WaitForTimeout parks the same way as WaitFor, but also arms a one-shot
// timer that broadcasts once timeout has elapsed, so a waiter with no
// other wakeup pending still returns instead of blocking forever.
func (w *BlockingWaitStrategy) WaitForTimeout(consumers []Sequencer, ring cursorSource, barrier Alerter, seq int64, timeout time.Duration) int64 {
	if available := availableSequence(consumers, ring); available >= seq {
		return available
	}

	deadline := time.Now().Add(timeout)
	timer := time.AfterFunc(timeout, w.SignalAll)
	defer timer.Stop()

	w.mu.Lock()
	defer w.mu.Unlock()
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
		w.cond.Wait()
	}
}

// SignalAll wakes every goroutine parked in WaitFor/WaitForTimeout. It
// acquires the same mutex those waiters release inside cond.Wait, so a
// signal can never land in the gap between a waiter's last check and its
// park and be lost.
func (w *BlockingWaitStrategy) SignalAll() {
	w.mu.Lock()
	w.cond.Broadcast()
	w.mu.Unlock()
}
