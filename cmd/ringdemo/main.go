// Command ringdemo wires a ring buffer, one producer goroutine, and N
// consumer goroutines together, prints throughput, and stops cleanly on
// SIGINT by alerting every consumer barrier.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/aradilov/ringdisruptor"
	"github.com/valyala/fastrand"
)

// Message is the demo payload. The library itself stays generic over the
// entry factory; this is just one concrete instantiation.
type Message struct {
	Value    int64
	Sequence int64
}

var payloadPool = sync.Pool{
	New: func() any { return make([]byte, 64) },
}

func main() {
	size := flag.Int64("size", 1024, "ring buffer capacity (rounded up to a power of two)")
	consumers := flag.Int("consumers", 4, "number of consumer goroutines")
	duration := flag.Duration("duration", 3*time.Second, "how long to run before stopping")
	blocking := flag.Bool("blocking", false, "use the blocking wait strategy instead of yielding")
	flag.Parse()

	factory := func() *ringbuffer.Entry[Message] { return &ringbuffer.Entry[Message]{} }

	var ring *ringbuffer.RingBuffer[Message]
	if *blocking {
		ring = ringbuffer.NewWithStrategies(factory, *size,
			ringbuffer.NewSingleThreadedClaimStrategy(), ringbuffer.NewBlockingWaitStrategy())
	} else {
		ring = ringbuffer.New(factory, *size)
	}

	tracked := make([]*ringbuffer.SimpleConsumer, *consumers)
	trackedArg := make([]ringbuffer.Consumer, *consumers)
	barriers := make([]*ringbuffer.ConsumerBarrier[Message], *consumers)
	for i := range tracked {
		tracked[i] = ringbuffer.NewSimpleConsumer()
		trackedArg[i] = tracked[i]
		barriers[i] = ring.CreateConsumerBarrier()
	}

	producer, err := ring.CreateProducerBarrier(trackedArg...)
	if err != nil {
		log.Fatalf("ringdemo: %v", err)
	}

	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, os.Interrupt, syscall.SIGTERM)

	var consumed atomic.Int64
	var wg sync.WaitGroup
	for i := range barriers {
		i := i
		wg.Add(1)
		go runConsumer(&wg, barriers[i], tracked[i], &consumed)
	}

	published := runProducer(producer, *duration, sigC)

	for _, b := range barriers {
		b.Alert()
	}
	wg.Wait()

	fmt.Printf("published=%d consumed=%d capacity=%d\n", published, consumed.Load(), ring.Capacity())
}

func runProducer(producer *ringbuffer.ProducerBarrier[Message], duration time.Duration, sigC <-chan os.Signal) int64 {
	deadline := time.Now().Add(duration)
	buf := payloadPool.Get().([]byte)
	defer payloadPool.Put(buf)

	var published int64
	for time.Now().Before(deadline) {
		select {
		case <-sigC:
			return published
		default:
		}

		entry := producer.NextEntry()
		entry.Value.Value = int64(fastrand.Uint32())
		entry.Value.Sequence = entry.Sequence()
		producer.Commit(entry)
		published++
	}
	return published
}

func runConsumer(wg *sync.WaitGroup, barrier *ringbuffer.ConsumerBarrier[Message], tracked *ringbuffer.SimpleConsumer, consumed *atomic.Int64) {
	defer wg.Done()

	var next int64
	for {
		available, err := barrier.WaitFor(next)
		if err != nil {
			return
		}
		for ; next <= available; next++ {
			_ = barrier.GetEntry(next).Value
			consumed.Add(1)
		}
		tracked.SetSequence(next - 1)
	}
}
