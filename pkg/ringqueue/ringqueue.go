// Package ringqueue is the ring-array implementation of the bounded event
// queue contract: same semantics as eventqueue, O(1) Write and Read.
package ringqueue

import (
	"errors"
	"fmt"
)

// ErrInvalidCapacity is returned by New for capacities below 1.
var ErrInvalidCapacity = errors.New("ringqueue: capacity must be at least 1")

// RingQueue stores elements in a fixed array; logical index i lives at
// buf[(head+i) % capacity]. No locking; see syncqueue for shared use.
type RingQueue[T any] struct {
	buf   []T
	head  int
	count int
}

// New returns an empty queue that holds at most capacity elements.
func New[T any](capacity int) (*RingQueue[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidCapacity, capacity)
	}
	return &RingQueue[T]{
		buf: make([]T, capacity),
	}, nil
}

// MustNew is New that panics on an invalid capacity.
func MustNew[T any](capacity int) *RingQueue[T] {
	q, err := New[T](capacity)
	if err != nil {
		panic(err)
	}
	return q
}

// Write appends item, overwriting the oldest element when full. It returns
// true exactly when an element was evicted.
func (q *RingQueue[T]) Write(item T) bool {
	if q.count < len(q.buf) {
		q.buf[(q.head+q.count)%len(q.buf)] = item
		q.count++
		return false
	}
	// Full: the slot past the newest element is the oldest one.
	q.buf[q.head] = item
	q.head = (q.head + 1) % len(q.buf)
	return true
}

// Read removes and returns the oldest element, or a zero T and false when
// empty.
func (q *RingQueue[T]) Read() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	item := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return item, true
}

// Peek returns the oldest element without removing it.
func (q *RingQueue[T]) Peek() (T, bool) {
	if q.count == 0 {
		var zero T
		return zero, false
	}
	return q.buf[q.head], true
}

// Len returns the number of queued elements.
func (q *RingQueue[T]) Len() int { return q.count }

// Cap returns the fixed capacity.
func (q *RingQueue[T]) Cap() int { return len(q.buf) }

// IsEmpty reports whether the queue holds no elements.
func (q *RingQueue[T]) IsEmpty() bool { return q.count == 0 }

// Clear discards all queued elements and zeroes their slots.
func (q *RingQueue[T]) Clear() {
	var zero T
	for i := 0; i < q.count; i++ {
		q.buf[(q.head+i)%len(q.buf)] = zero
	}
	q.head = 0
	q.count = 0
}

// Items returns a copy of the queued elements, oldest first.
func (q *RingQueue[T]) Items() []T {
	out := make([]T, q.count)
	for i := 0; i < q.count; i++ {
		out[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	return out
}

// Has reports whether any queued element matches, oldest to newest.
func (q *RingQueue[T]) Has(match func(T) bool) bool {
	for i := 0; i < q.count; i++ {
		if match(q.buf[(q.head+i)%len(q.buf)]) {
			return true
		}
	}
	return false
}

// Take removes every matching element and returns them in arrival order.
// Survivors are compacted toward the head while scanning; the write index
// trails the read index, so a survivor never lands on an unvisited slot.
func (q *RingQueue[T]) Take(match func(T) bool) []T {
	var popped []T
	kept := 0
	for i := 0; i < q.count; i++ {
		item := q.buf[(q.head+i)%len(q.buf)]
		if match(item) {
			popped = append(popped, item)
			continue
		}
		q.buf[(q.head+kept)%len(q.buf)] = item
		kept++
	}
	var zero T
	for i := kept; i < q.count; i++ {
		q.buf[(q.head+i)%len(q.buf)] = zero
	}
	q.count = kept
	return popped
}
