package purefn

import (
	"github.com/on-the-ground/memo_ive_go/shared/helper"
	"go.uber.org/zap"
)

// DefaultShards is the number of shards used when Options.Shards is not set.
const DefaultShards = 16

// Options configures a MemoCache. The zero value is an unbounded cache with
// DefaultShards shards, no store tier, no metrics and a no-op logger.
type Options[K comparable, V any] struct {
	// Capacity bounds the number of memoized entries. When inserting would
	// exceed it, the least recently used entry of the shard is evicted.
	// Zero means unbounded.
	Capacity int

	// Shards splits the key space. Keys in different shards never contend.
	// With a Capacity, the capacity is divided between the shards and recency
	// is tracked per shard; use a single shard for exact LRU order.
	Shards int

	// Logger receives debug logs about evictions and invalidations.
	Logger *zap.Logger

	// Metrics receives hit, miss and computation signals.
	Metrics Metrics

	// Store is an optional second tier consulted before computing and
	// written through after a successful computation.
	Store Store[K, V]

	// OnEvict is called for every entry removed by the capacity policy.
	// It runs on the caller's goroutine after the shard lock is released.
	OnEvict func(key K, value V)

	// Partition renders a key for shard selection. Equal keys must render
	// equally. Defaults to helper.PartitionKey.
	Partition func(key K) string
}

func (o Options[K, V]) normalize() Options[K, V] {
	if o.Capacity < 0 {
		panic("purefn: capacity must not be negative")
	}
	if o.Shards <= 0 {
		o.Shards = DefaultShards
	}
	if o.Capacity > 0 && o.Shards > o.Capacity {
		o.Shards = o.Capacity
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Metrics == nil {
		o.Metrics = NoopMetrics{}
	}
	if o.Partition == nil {
		o.Partition = func(key K) string {
			return helper.PartitionKey(key)
		}
	}
	return o
}

// shardCapacity spreads capacity over n shards so the sum equals capacity.
func shardCapacity(capacity, n, i int) int {
	if capacity == 0 {
		return 0
	}
	c := capacity / n
	if i < capacity%n {
		c++
	}
	return c
}
