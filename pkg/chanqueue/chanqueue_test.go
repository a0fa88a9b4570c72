package chanqueue

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/i5heu/GoEventQueue/internal/queue"
)

var _ queue.Core[int] = (*ChanQueue[int])(nil)

func TestNewRejectsInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		if _, err := New[int](capacity); !errors.Is(err, ErrInvalidCapacity) {
			t.Fatalf("Expected ErrInvalidCapacity for capacity %d, got %v", capacity, err)
		}
	}
	if _, err := New[int](1); err != nil {
		t.Fatalf("Expected capacity 1 to be accepted, got %v", err)
	}
}

func TestSequentialFIFO(t *testing.T) {
	q := MustNew[int](8)
	for i := 0; i < 8; i++ {
		if q.Write(i) {
			t.Fatalf("Unexpected eviction on write %d under capacity", i)
		}
	}
	for i := 0; i < 8; i++ {
		v, ok := q.Read()
		if !ok {
			t.Fatalf("Expected a value at index %d", i)
		}
		if v != i {
			t.Fatalf("Expected %d, got %d at index %d", i, v, i)
		}
	}
	if _, ok := q.Read(); ok {
		t.Fatal("Expected empty signal after full drain")
	}
}

func TestSequentialEviction(t *testing.T) {
	const capacity = 3
	q := MustNew[int](capacity)

	for i := 1; i <= 5; i++ {
		evicted := q.Write(i)
		if want := i > capacity; evicted != want {
			t.Fatalf("Write %d: expected evicted=%v, got %v", i, want, evicted)
		}
		if q.Len() > capacity {
			t.Fatalf("Len %d exceeds capacity %d", q.Len(), capacity)
		}
	}

	for _, want := range []int{3, 4, 5} {
		v, ok := q.Read()
		if !ok || v != want {
			t.Fatalf("Expected %d, got %d (ok=%v)", want, v, ok)
		}
	}
}

func TestEmptyReadAndClear(t *testing.T) {
	q := MustNew[string](4)

	if v, ok := q.Read(); ok {
		t.Fatalf("Expected empty signal, got %q", v)
	}
	if !q.IsEmpty() {
		t.Fatal("Expected new queue to be empty")
	}

	q.Write("a")
	q.Write("b")
	q.Clear()

	if q.Len() != 0 {
		t.Fatalf("Expected Len 0 after Clear, got %d", q.Len())
	}
	if _, ok := q.Read(); ok {
		t.Fatal("Expected empty signal after Clear")
	}
	if q.Cap() != 4 {
		t.Fatalf("Expected capacity unchanged, got %d", q.Cap())
	}
}

// TestConcurrentWritesNeverBlock floods a small queue from many goroutines.
// Unlike a plain buffered channel send, Write must always complete; the
// queue absorbs the overflow by discarding old elements.
func TestConcurrentWritesNeverBlock(t *testing.T) {
	const (
		capacity     = 16
		numProducers = 32
		perProducer  = 1000
	)
	q := MustNew[int](capacity)

	var produced, evictions atomic.Int64
	var wg sync.WaitGroup
	wg.Add(numProducers)
	for p := 0; p < numProducers; p++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				if q.Write(id*perProducer + i) {
					evictions.Add(1)
				}
				produced.Add(1)
			}
		}(p)
	}
	wg.Wait()

	if got := produced.Load(); got != numProducers*perProducer {
		t.Fatalf("Expected %d writes to complete, got %d", numProducers*perProducer, got)
	}
	if evictions.Load() == 0 {
		t.Fatal("Expected evictions when flooding a small queue")
	}
	if q.Len() > capacity {
		t.Fatalf("Len %d exceeds capacity %d", q.Len(), capacity)
	}

	// Drain: everything left must be one of the written values.
	seen := 0
	for {
		v, ok := q.Read()
		if !ok {
			break
		}
		if v < 0 || v >= numProducers*perProducer {
			t.Fatalf("Drained unexpected value %d", v)
		}
		seen++
	}
	if seen > capacity {
		t.Fatalf("Drained %d elements from a capacity-%d queue", seen, capacity)
	}
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	const capacity = 64
	q := MustNew[*int](capacity)

	var stop atomic.Bool
	var consumed atomic.Int64

	var readers sync.WaitGroup
	readers.Add(4)
	for r := 0; r < 4; r++ {
		go func() {
			defer readers.Done()
			for !stop.Load() || q.Len() > 0 {
				if ptr, ok := q.Read(); ok {
					_ = *ptr // must always be a valid pointer, never junk
					consumed.Add(1)
				}
			}
		}()
	}

	var writers sync.WaitGroup
	writers.Add(4)
	for w := 0; w < 4; w++ {
		go func(id int) {
			defer writers.Done()
			for i := 0; i < 5000; i++ {
				v := id*5000 + i
				q.Write(&v)
			}
		}(w)
	}

	writers.Wait()
	stop.Store(true)
	readers.Wait()

	if consumed.Load() == 0 {
		t.Fatal("Expected consumers to observe values")
	}
}
