package ringbuffer

import "testing"

// message is the shared payload type used across this package's tests
// (cmd/ringdemo declares its own Message); the library itself is generic
// over the entry payload.
type message struct {
	Value int64
}

func messageFactory() *Entry[message] {
	return &Entry[message]{}
}

func TestCeilPow2(t *testing.T) {
	cases := []struct {
		in, want int64
	}{
		{0, 1},
		{-5, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{20, 32},
		{1024, 1024},
		{1025, 2048},
	}

	for _, c := range cases {
		if got := CeilPow2(c.in); got != c.want {
			t.Fatalf("CeilPow2(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestRingBufferCapacityRoundsUp(t *testing.T) {
	rb := New(messageFactory, 20)
	if rb.Capacity() != 32 {
		t.Fatalf("expected capacity 32, got %d", rb.Capacity())
	}
}

func TestRingBufferInitialCursor(t *testing.T) {
	rb := New(messageFactory, 8)
	if cursor := rb.Cursor(); cursor != -1 {
		t.Fatalf("expected initial cursor -1, got %d", cursor)
	}
}

// Wrap-around: entry at sequence capacity+k is the same physical slot as
// the one at sequence k.
func TestRingBufferEntryWrap(t *testing.T) {
	rb := New(messageFactory, 16)
	capacity := rb.Capacity()

	for k := int64(0); k < capacity; k++ {
		if rb.Entry(k) != rb.Entry(k+capacity) {
			t.Fatalf("expected entry(%d) and entry(%d) to be the same slot", k, k+capacity)
		}
	}
}

func TestMinSequence(t *testing.T) {
	c1 := NewSimpleConsumer()
	c2 := NewSimpleConsumer()
	c3 := NewSimpleConsumer()

	c1.SetSequence(10)
	c2.SetSequence(3)
	c3.SetSequence(7)

	consumers := toSequencers([]Consumer{c1, c2, c3})
	if got := MinSequence(consumers, 999); got != 3 {
		t.Fatalf("expected min 3, got %d", got)
	}
}

func TestMinSequenceEmptyReturnsSentinel(t *testing.T) {
	if got := MinSequence(nil, 42); got != 42 {
		t.Fatalf("expected sentinel 42, got %d", got)
	}
}
