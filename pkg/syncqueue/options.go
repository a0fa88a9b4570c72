package syncqueue

import "github.com/prometheus/client_golang/prometheus"

// Option configures a SyncQueue at construction time.
type Option[T any] func(*options[T])

type options[T any] struct {
	registerer prometheus.Registerer
	component  string
}

// WithMetrics registers Prometheus collectors for the queue on reg,
// labelled component. Each component name must be registered at most once
// per registerer; a second registration panics, as MustRegister does.
func WithMetrics[T any](reg prometheus.Registerer, component string) Option[T] {
	return func(o *options[T]) {
		o.registerer = reg
		o.component = component
	}
}

func applyOptions[T any](opts []Option[T]) *options[T] {
	o := &options[T]{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
