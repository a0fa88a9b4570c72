package queue

// Core is a *type constraint* that ensures any type Q has the minimal
// evicting-queue surface. We never store Q in a runtime interface—
// we only use Core at compile time to ensure matching signatures.
type Core[T any] interface {
	// Write appends an element. If the queue is full it first discards the
	// oldest element and returns true; otherwise it returns false.
	// Write never blocks.
	Write(item T) bool

	// Read removes and returns the oldest element.
	// If the queue is empty it returns a zero T and false, otherwise true.
	Read() (T, bool)

	// Len returns how many elements are currently queued.
	Len() int

	// Cap returns the fixed capacity chosen at construction.
	Cap() int

	// IsEmpty reports whether Len() == 0.
	IsEmpty() bool

	// Clear discards all queued elements. Capacity is unchanged.
	Clear()
}

// Interface extends Core with the inspection and extraction surface that
// order-preserving implementations provide. Channel-backed queues stop at
// Core because a channel cannot be scanned in place without reordering it.
type Interface[T any] interface {
	Core[T]

	// Peek returns the oldest element without removing it.
	Peek() (T, bool)

	// Items returns a copy of the queued elements, oldest first.
	Items() []T

	// Has reports whether any queued element matches, scanning oldest to
	// newest. It never mutates the queue.
	Has(match func(T) bool) bool

	// Take removes every matching element and returns them in arrival
	// order. Non-matching elements keep their relative order.
	Take(match func(T) bool) []T
}
