package purefn

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// MemoCache memoizes a Computation by key.
//
// The computation runs at most once per key while the key stays memoized:
// concurrent callers missing the same key wait for the first one, callers for
// other keys proceed independently. A failed computation memoizes nothing.
//
// Keys must have reflexive equality. A float NaN, or an interface key holding
// a value that cannot be compared, never matches itself and is not supported.
type MemoCache[K comparable, V any] struct {
	computation Computation[K, V]
	shards      []*shard[K, V]
	opts        Options[K, V]
	stats       counters
}

// New returns an empty MemoCache around computation.
func New[K comparable, V any](computation Computation[K, V], opts Options[K, V]) *MemoCache[K, V] {
	if computation == nil {
		panic("purefn: nil computation")
	}
	opts = opts.normalize()

	shards := make([]*shard[K, V], opts.Shards)
	for i := range shards {
		shards[i] = newShard[K, V](shardCapacity(opts.Capacity, opts.Shards, i))
	}

	opts.Logger.Debug("memo cache created",
		zap.Int("capacity", opts.Capacity),
		zap.Int("shards", opts.Shards),
		zap.Bool("store", opts.Store != nil),
	)

	return &MemoCache[K, V]{
		computation: computation,
		shards:      shards,
		opts:        opts,
	}
}

// NewFunc is New for a plain function.
func NewFunc[K comparable, V any](fn func(context.Context, K) (V, error), opts Options[K, V]) *MemoCache[K, V] {
	if fn == nil {
		panic("purefn: nil computation")
	}
	return New[K, V](ComputeFunc[K, V](fn), opts)
}

// GetOrCompute returns the memoized value for key, producing it on a miss.
//
// Errors returned by the computation are passed through unchanged and leave
// the key unset. If ctx ends while waiting for another caller's computation,
// ctx.Err() is returned and that computation carries on.
// If the computation panics, the panic is re-raised in the computing caller
// as a *PanicError, which is also what waiting callers receive.
func (c *MemoCache[K, V]) GetOrCompute(ctx context.Context, key K) (V, error) {
	s := c.shardFor(key)
	e, state := s.acquire(key)
	switch state {
	case hit:
		c.hit()
		return e.value, nil
	case pending:
		return c.wait(ctx, e)
	default:
		c.stats.misses.Add(1)
		c.opts.Metrics.Miss()
		return c.produce(ctx, s, e)
	}
}

// Invalidate removes the memoized value for key and reports whether there
// was one. The next GetOrCompute for key computes again. A computation in
// flight for key still answers its callers but is not memoized.
func (c *MemoCache[K, V]) Invalidate(key K) bool {
	removed, err := c.InvalidateContext(context.Background(), key)
	if err != nil {
		c.opts.Logger.Warn("memo invalidation incomplete",
			zap.String("key", c.opts.Partition(key)),
			zap.Error(err),
		)
	}
	return removed
}

// InvalidateContext is Invalidate that also reports store tier failures.
// The in-memory entry is removed even when the store fails.
func (c *MemoCache[K, V]) InvalidateContext(ctx context.Context, key K) (bool, error) {
	var storeErr error
	if c.opts.Store != nil {
		if err := c.opts.Store.Delete(ctx, key); err != nil {
			storeErr = fmt.Errorf("%w: delete: %w", ErrStore, err)
		}
	}

	removed := c.shardFor(key).remove(key)
	if removed {
		c.stats.invalidations.Add(1)
		c.opts.Metrics.Invalidated()
		c.opts.Logger.Debug("memo entry invalidated", zap.String("key", c.opts.Partition(key)))
	}
	return removed, storeErr
}

// Contains reports whether key has a memoized value. It does not count as a
// use for the eviction order.
func (c *MemoCache[K, V]) Contains(key K) bool {
	return c.shardFor(key).contains(key)
}

// Len returns the number of memoized values.
func (c *MemoCache[K, V]) Len() int {
	n := 0
	for _, s := range c.shards {
		n += s.len()
	}
	return n
}

// Stats returns a snapshot of the cache counters.
func (c *MemoCache[K, V]) Stats() Stats {
	st := c.stats.snapshot()
	st.Len = c.Len()
	return st
}

func (c *MemoCache[K, V]) shardFor(key K) *shard[K, V] {
	if len(c.shards) == 1 {
		return c.shards[0]
	}
	h := xxhash.Sum64String(c.opts.Partition(key))
	return c.shards[h%uint64(len(c.shards))]
}

func (c *MemoCache[K, V]) hit() {
	c.stats.hits.Add(1)
	c.opts.Metrics.Hit()
}

func (c *MemoCache[K, V]) wait(ctx context.Context, e *entry[K, V]) (V, error) {
	select {
	case <-e.done:
		if e.err != nil {
			var zero V
			return zero, e.err
		}
		c.hit()
		return e.value, nil
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// produce settles the pending entry e, which the caller published.
func (c *MemoCache[K, V]) produce(ctx context.Context, s *shard[K, V], e *entry[K, V]) (V, error) {
	value, panicked, err := c.load(ctx, e.key)
	if err != nil {
		s.fail(e, err)
		if panicked {
			panic(err)
		}
		var zero V
		return zero, err
	}

	stored, evicted := s.complete(e, value)
	if stored {
		c.opts.Metrics.Stored()
	} else {
		c.forget(ctx, e.key)
	}
	c.evict(evicted)
	return value, nil
}

// forget removes from the store tier a value whose entry was invalidated
// while it was being produced, since the write-through may have landed after
// the invalidation's delete.
func (c *MemoCache[K, V]) forget(ctx context.Context, key K) {
	if c.opts.Store == nil {
		return
	}
	if err := c.opts.Store.Delete(context.WithoutCancel(ctx), key); err != nil {
		c.opts.Logger.Warn("memo invalidation incomplete",
			zap.String("key", c.opts.Partition(key)),
			zap.Error(err),
		)
	}
}

// load produces the value for key from the store tier or the computation.
// Panics are recovered into a *PanicError so the pending entry always settles.
func (c *MemoCache[K, V]) load(ctx context.Context, key K) (value V, panicked bool, err error) {
	var (
		computing bool
		start     time.Time
	)
	defer func() {
		if r := recover(); r != nil {
			pe := newPanicError(r)
			c.stats.failures.Add(1)
			if computing {
				c.opts.Metrics.Computed(time.Since(start), pe)
			}
			var zero V
			value, panicked, err = zero, true, pe
		}
	}()

	if c.opts.Store != nil {
		v, ok, err := c.opts.Store.Load(ctx, key)
		if err != nil {
			return value, false, fmt.Errorf("%w: load: %w", ErrStore, err)
		}
		if ok {
			return v, false, nil
		}
	}

	c.stats.computations.Add(1)
	computing, start = true, time.Now()
	value, err = c.computation.Compute(ctx, key)
	computing = false
	c.opts.Metrics.Computed(time.Since(start), err)
	if err != nil {
		c.stats.failures.Add(1)
		return value, false, err
	}

	if c.opts.Store != nil {
		if err := c.opts.Store.Store(ctx, key, value); err != nil {
			c.opts.Logger.Warn("memo store write failed",
				zap.String("key", c.opts.Partition(key)),
				zap.Error(err),
			)
		}
	}
	return value, false, nil
}

func (c *MemoCache[K, V]) evict(evicted []*entry[K, V]) {
	for _, e := range evicted {
		c.stats.evictions.Add(1)
		c.opts.Metrics.Evicted()
		c.opts.Logger.Debug("memo entry evicted", zap.String("key", c.opts.Partition(e.key)))
		if c.opts.OnEvict != nil {
			c.opts.OnEvict(e.key, e.value)
		}
	}
}
