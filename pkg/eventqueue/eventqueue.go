// Package eventqueue provides the canonical bounded event queue: a
// fixed-capacity FIFO that evicts its oldest element when a write arrives
// while full. It is a plain sequential data structure with no internal
// locking; wrap it in syncqueue (or confine it to one goroutine) to share
// it.
package eventqueue

import (
	"errors"
	"fmt"
)

// ErrInvalidCapacity is returned by New for capacities below 1. A queue
// that can hold nothing would evict every write immediately, so it is
// rejected instead of constructed.
var ErrInvalidCapacity = errors.New("eventqueue: capacity must be at least 1")

// EventQueue is a slice-backed bounded FIFO. The backing array is allocated
// once at capacity and never grows; eviction and reads shift the live
// elements down with copy, and vacated slots are zeroed so dropped values
// do not stay reachable.
type EventQueue[T any] struct {
	items []T
}

// New returns an empty queue that holds at most capacity elements.
func New[T any](capacity int) (*EventQueue[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidCapacity, capacity)
	}
	return &EventQueue[T]{
		items: make([]T, 0, capacity),
	}, nil
}

// MustNew is New that panics on an invalid capacity, for registries and
// fixed-capacity call sites.
func MustNew[T any](capacity int) *EventQueue[T] {
	q, err := New[T](capacity)
	if err != nil {
		panic(err)
	}
	return q
}

// Write appends item. If the queue is already full the oldest element is
// discarded first and Write returns true; otherwise it returns false. The
// discarded element is not recoverable through any operation.
func (q *EventQueue[T]) Write(item T) bool {
	if len(q.items) < cap(q.items) {
		q.items = append(q.items, item)
		return false
	}
	copy(q.items, q.items[1:])
	q.items[len(q.items)-1] = item
	return true
}

// Read removes and returns the oldest element. It returns a zero T and
// false when the queue is empty.
func (q *EventQueue[T]) Read() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	copy(q.items, q.items[1:])
	q.items[len(q.items)-1] = zero
	q.items = q.items[:len(q.items)-1]
	return item, true
}

// Peek returns the oldest element without removing it.
func (q *EventQueue[T]) Peek() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

// Len returns the number of queued elements.
func (q *EventQueue[T]) Len() int {
	return len(q.items)
}

// Cap returns the fixed capacity.
func (q *EventQueue[T]) Cap() int {
	return cap(q.items)
}

// IsEmpty reports whether the queue holds no elements.
func (q *EventQueue[T]) IsEmpty() bool {
	return len(q.items) == 0
}

// Clear discards all queued elements. The backing array is zeroed so the
// cleared values can be collected.
func (q *EventQueue[T]) Clear() {
	var zero T
	for i := range q.items {
		q.items[i] = zero
	}
	q.items = q.items[:0]
}

// Items returns a copy of the queued elements, oldest first.
func (q *EventQueue[T]) Items() []T {
	out := make([]T, len(q.items))
	copy(out, q.items)
	return out
}

// Has reports whether any queued element matches, scanning oldest to
// newest. The queue is not mutated.
func (q *EventQueue[T]) Has(match func(T) bool) bool {
	for _, item := range q.items {
		if match(item) {
			return true
		}
	}
	return false
}

// Take removes every element that matches and returns them in arrival
// order. The remaining elements keep their relative order. Each element is
// visited exactly once; the kept elements are compacted in place, so
// removal can never skip over the element that slides into a vacated slot.
func (q *EventQueue[T]) Take(match func(T) bool) []T {
	var popped []T
	kept := q.items[:0]
	for _, item := range q.items {
		if match(item) {
			popped = append(popped, item)
		} else {
			kept = append(kept, item)
		}
	}
	var zero T
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = zero
	}
	q.items = kept
	return popped
}
