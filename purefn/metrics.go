package purefn

import (
	"sync/atomic"
	"time"
)

// Metrics receives signals from a MemoCache. Implementations must be safe for
// concurrent use and should not block.
type Metrics interface {
	Hit()
	Miss()
	Computed(elapsed time.Duration, err error)
	Stored()
	Evicted()
	Invalidated()
}

// NoopMetrics discards every signal.
type NoopMetrics struct{}

func (NoopMetrics) Hit()                          {}
func (NoopMetrics) Miss()                         {}
func (NoopMetrics) Computed(time.Duration, error) {}
func (NoopMetrics) Stored()                       {}
func (NoopMetrics) Evicted()                      {}
func (NoopMetrics) Invalidated()                  {}

// Stats is a snapshot of the counters of a MemoCache.
type Stats struct {
	// Hits counts lookups answered without computing, including callers that
	// waited for another caller's computation.
	Hits uint64

	// Misses counts lookups that had to produce the value.
	Misses uint64

	// Computations counts calls made to the Computation.
	Computations uint64

	// Failures counts computations that returned an error or panicked.
	Failures uint64

	Evictions     uint64
	Invalidations uint64

	// Len is the number of memoized entries when the snapshot was taken.
	Len int
}

type counters struct {
	hits          atomic.Uint64
	misses        atomic.Uint64
	computations  atomic.Uint64
	failures      atomic.Uint64
	evictions     atomic.Uint64
	invalidations atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Computations:  c.computations.Load(),
		Failures:      c.failures.Load(),
		Evictions:     c.evictions.Load(),
		Invalidations: c.invalidations.Load(),
	}
}
