package store

import (
	"context"
	"fmt"

	ristretto "github.com/dgraph-io/ristretto/v2"
	"github.com/on-the-ground/memo_ive_go/purefn"
)

type key interface {
	ristretto.Key
	comparable
}

var _ purefn.Store[string, any] = (*Ristretto[string, any])(nil)

// Ristretto stores memoized values in a ristretto cache holding up to
// maxItems values.
type Ristretto[K key, V any] struct {
	cache *ristretto.Cache[K, V]
}

func NewRistretto[K key, V any](maxItems int64) (*Ristretto[K, V], error) {
	if maxItems <= 0 {
		return nil, fmt.Errorf("ristretto store: maxItems must be positive, got %d", maxItems)
	}
	cache, err := ristretto.NewCache(&ristretto.Config[K, V]{
		NumCounters:        maxItems * 10, // keys to track frequency of
		MaxCost:            maxItems,      // every value costs 1
		BufferItems:        64,            // keys per Get buffer
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("ristretto store: %w", err)
	}
	return &Ristretto[K, V]{cache: cache}, nil
}

func (r *Ristretto[K, V]) Load(ctx context.Context, key K) (value V, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return value, false, err
	}
	value, ok = r.cache.Get(key)
	return value, ok, nil
}

// Store sets value and waits until it is visible to Load. A value rejected by
// the admission policy is not an error.
func (r *Ristretto[K, V]) Store(ctx context.Context, key K, value V) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.cache.Set(key, value, 1)
	r.cache.Wait()
	return nil
}

func (r *Ristretto[K, V]) Delete(ctx context.Context, key K) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.cache.Del(key)
	return nil
}

func (r *Ristretto[K, V]) Close() {
	r.cache.Close()
}
