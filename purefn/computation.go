package purefn

import "context"

// Computation produces the value for a key.
// A MemoCache owns its Computation and calls it at most once per key.
type Computation[K comparable, V any] interface {
	Compute(ctx context.Context, key K) (V, error)
}

// ComputeFunc adapts an ordinary function to a Computation.
type ComputeFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

func (f ComputeFunc[K, V]) Compute(ctx context.Context, key K) (V, error) {
	return f(ctx, key)
}
