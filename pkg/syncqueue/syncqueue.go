// Package syncqueue turns an unsynchronized bounded event queue into one
// that can be shared between goroutines. Every operation holds a mutex
// around the wrapped queue and feeds the always-on statistics; Prometheus
// metrics are attached with WithMetrics. This is the external
// mutual-exclusion layer the core queues document as the caller's job.
package syncqueue

import "sync"

// Queue is the unsynchronized surface SyncQueue guards. Both eventqueue
// and ringqueue satisfy it.
type Queue[T any] interface {
	Write(item T) bool
	Read() (T, bool)
	Peek() (T, bool)
	Len() int
	Cap() int
	IsEmpty() bool
	Clear()
	Items() []T
	Has(match func(T) bool) bool
	Take(match func(T) bool) []T
}

// SyncQueue wraps a Queue with a mutex, statistics, and optional metrics.
type SyncQueue[T any] struct {
	mu       sync.Mutex
	inner    Queue[T]
	capacity int
	stats    *stats
	metrics  *queueMetrics
}

// New wraps inner. The wrapped queue must not be used directly afterwards;
// all access has to go through the returned SyncQueue.
func New[T any](inner Queue[T], opts ...Option[T]) *SyncQueue[T] {
	o := applyOptions(opts)
	q := &SyncQueue[T]{
		inner:    inner,
		capacity: inner.Cap(),
		stats:    newStats(),
	}
	if o.registerer != nil {
		q.metrics = newQueueMetrics(o.registerer, o.component)
	}
	return q
}

// Write appends item, evicting the oldest element when full. Returns true
// exactly when an eviction occurred.
func (q *SyncQueue[T]) Write(item T) bool {
	q.mu.Lock()
	evicted := q.inner.Write(item)
	length := q.inner.Len()
	q.mu.Unlock()

	q.stats.recordWrite(evicted, length)
	if q.metrics != nil {
		q.metrics.recordWrite(evicted)
		q.metrics.updateSize(length, q.capacity)
	}
	return evicted
}

// Read removes and returns the oldest element, or a zero T and false when
// empty.
func (q *SyncQueue[T]) Read() (T, bool) {
	q.mu.Lock()
	item, ok := q.inner.Read()
	length := q.inner.Len()
	q.mu.Unlock()

	if ok {
		q.stats.recordRead()
		if q.metrics != nil {
			q.metrics.recordRead()
			q.metrics.updateSize(length, q.capacity)
		}
	}
	return item, ok
}

// Peek returns the oldest element without removing it.
func (q *SyncQueue[T]) Peek() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inner.Peek()
}

// Len returns the number of queued elements.
func (q *SyncQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inner.Len()
}

// Cap returns the fixed capacity of the wrapped queue.
func (q *SyncQueue[T]) Cap() int {
	return q.capacity
}

// IsEmpty reports whether the queue holds no elements.
func (q *SyncQueue[T]) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inner.IsEmpty()
}

// Clear discards all queued elements.
func (q *SyncQueue[T]) Clear() {
	q.mu.Lock()
	q.inner.Clear()
	q.mu.Unlock()

	if q.metrics != nil {
		q.metrics.updateSize(0, q.capacity)
	}
}

// Items returns a copy of the queued elements, oldest first.
func (q *SyncQueue[T]) Items() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inner.Items()
}

// Has reports whether any queued element matches, oldest to newest. The
// match function runs with the queue lock held and must not call back into
// the queue.
func (q *SyncQueue[T]) Has(match func(T) bool) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inner.Has(match)
}

// Take removes every matching element and returns them in arrival order.
// The match function runs with the queue lock held and must not call back
// into the queue.
func (q *SyncQueue[T]) Take(match func(T) bool) []T {
	q.mu.Lock()
	popped := q.inner.Take(match)
	length := q.inner.Len()
	q.mu.Unlock()

	q.stats.recordTaken(len(popped))
	if q.metrics != nil {
		q.metrics.recordTaken(len(popped))
		q.metrics.updateSize(length, q.capacity)
	}
	return popped
}

// Stats returns a snapshot of the queue's operation counters.
func (q *SyncQueue[T]) Stats() StatsSummary {
	q.mu.Lock()
	length := q.inner.Len()
	q.mu.Unlock()
	return q.stats.summary(length, q.capacity)
}

// ResetStats zeroes all counters and restarts the uptime clock.
func (q *SyncQueue[T]) ResetStats() {
	q.stats.reset()
}
