package ringbuffer

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/valyala/fastrand"
)

// TestRingBufferSoak hammers a small ring with one producer and several
// consumers under randomized scheduling jitter, checking that
// every published value is observed by every consumer exactly once and in
// publication order. Small ring size (relative to message count) forces
// the wrap-around and gating paths to run repeatedly under contention.
func TestRingBufferSoak(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping soak test in short mode")
	}

	const (
		ringSize     = 64
		messageCount = 20000
		consumerN    = 4
	)

	ring := New(messageFactory, ringSize)

	trackedConsumers := make([]*SimpleConsumer, consumerN)
	consumerArg := make([]Consumer, consumerN)
	for i := range trackedConsumers {
		trackedConsumers[i] = NewSimpleConsumer()
		consumerArg[i] = trackedConsumers[i]
	}

	producer, err := ring.CreateProducerBarrier(consumerArg...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	var mismatches atomic.Int64

	for i := 0; i < consumerN; i++ {
		i := i
		barrier := ring.CreateConsumerBarrier()
		wg.Add(1)
		go func() {
			defer wg.Done()
			var next int64
			for next < messageCount {
				available, err := barrier.WaitFor(next)
				if err != nil {
					t.Errorf("consumer %d: unexpected error: %v", i, err)
					return
				}
				for ; next <= available && next < messageCount; next++ {
					entry := barrier.GetEntry(next)
					if entry.Value.Value != next {
						mismatches.Add(1)
					}
					// Jittered processing delay, bounded so the soak test
					// still completes quickly.
					if fastrand.Uint32n(256) == 0 {
						time.Sleep(time.Duration(fastrand.Uint32n(50)) * time.Microsecond)
					}
				}
				trackedConsumers[i].SetSequence(next - 1)
			}
		}()
	}

	for i := int64(0); i < messageCount; i++ {
		entry := producer.NextEntry()
		entry.Value.Value = i
		producer.Commit(entry)
		if fastrand.Uint32n(512) == 0 {
			time.Sleep(time.Duration(fastrand.Uint32n(20)) * time.Microsecond)
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatalf("soak test did not complete in time")
	}

	if mismatches.Load() != 0 {
		t.Fatalf("%d value mismatches observed", mismatches.Load())
	}
}

// TestRingBufferSoakRandomSizes exercises construction and a short publish
// run across several randomized power-of-two-rounded capacities, confirming
// Capacity() stays a power of two and wrap-around addressing stays correct
// for each.
func TestRingBufferSoakRandomSizes(t *testing.T) {
	for trial := 0; trial < 20; trial++ {
		size := int64(fastrand.Uint32n(500)) + 1
		ring := New(messageFactory, size)
		capacity := ring.Capacity()

		if capacity&(capacity-1) != 0 {
			t.Fatalf("trial %d: capacity %d is not a power of two", trial, capacity)
		}
		if capacity < size {
			t.Fatalf("trial %d: capacity %d smaller than requested size %d", trial, capacity, size)
		}

		tracked := NewSimpleConsumer()
		producer, err := ring.CreateProducerBarrier(tracked)
		if err != nil {
			t.Fatalf("trial %d: unexpected error: %v", trial, err)
		}
		consumer := ring.CreateConsumerBarrier()

		runLength := capacity * 3
		for i := int64(0); i < runLength; i++ {
			entry := producer.NextEntry()
			entry.Value.Value = i
			producer.Commit(entry)
			tracked.SetSequence(i)
		}

		got, err := consumer.WaitFor(runLength - 1)
		if err != nil {
			t.Fatalf("trial %d: unexpected error: %v", trial, err)
		}
		if got != runLength-1 {
			t.Fatalf("trial %d: expected %d, got %d", trial, runLength-1, got)
		}
		if ring.Entry(runLength-1).Value.Value != runLength-1 {
			t.Fatalf("trial %d: wrap-around value mismatch", trial)
		}
	}
}
