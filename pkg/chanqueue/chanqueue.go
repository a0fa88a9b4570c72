// Package chanqueue implements the minimal evicting-queue surface on a
// buffered channel. It is safe for concurrent use without a mutex, but it
// stops at the Core contract: a channel cannot be scanned in place, so
// Peek, Items, Has and Take are not available here.
package chanqueue

import (
	"errors"
	"fmt"
)

// ErrInvalidCapacity is returned by New for capacities below 1.
var ErrInvalidCapacity = errors.New("chanqueue: capacity must be at least 1")

type ChanQueue[T any] struct {
	ch chan T
}

// New returns an empty queue that holds at most capacity elements.
// A zero-capacity Go channel is an unbuffered synchronization primitive,
// not a zero-capacity buffer, so capacities below 1 are rejected here like
// in the other implementations.
func New[T any](capacity int) (*ChanQueue[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidCapacity, capacity)
	}
	return &ChanQueue[T]{
		ch: make(chan T, capacity),
	}, nil
}

// MustNew is New that panics on an invalid capacity.
func MustNew[T any](capacity int) *ChanQueue[T] {
	q, err := New[T](capacity)
	if err != nil {
		panic(err)
	}
	return q
}

// Write appends item, discarding the oldest buffered element when the
// channel is full. It returns true when this call discarded anything.
// Write never blocks for long: it alternates between trying to send and
// trying to evict until the send lands.
func (q *ChanQueue[T]) Write(item T) bool {
	evicted := false
	for {
		select {
		case q.ch <- item:
			return evicted
		default:
		}
		select {
		case <-q.ch:
			evicted = true
		default:
		}
	}
}

// Read removes and returns the oldest element, or a zero T and false when
// empty.
func (q *ChanQueue[T]) Read() (val T, ok bool) {
	select {
	case val = <-q.ch:
		return val, true
	default:
		return val, false
	}
}

// Len returns the number of buffered elements.
func (q *ChanQueue[T]) Len() int {
	return len(q.ch)
}

// Cap returns the fixed capacity.
func (q *ChanQueue[T]) Cap() int {
	return cap(q.ch)
}

// IsEmpty reports whether the queue holds no elements.
func (q *ChanQueue[T]) IsEmpty() bool {
	return len(q.ch) == 0
}

// Clear drains the channel until it is empty.
func (q *ChanQueue[T]) Clear() {
	for {
		select {
		case <-q.ch:
		default:
			return
		}
	}
}
