package memo

import (
	"github.com/on-the-ground/memo_ive_go/effects"
	"github.com/on-the-ground/memo_ive_go/shared/helper"
)

// Payload is a sealed interface for memo operations.
// Only Load, Invalidate and Source implement it.
type Payload interface {
	PartitionKey() string
	payload()
}

var (
	_ Payload = Load[int]{}
	_ Payload = Invalidate[int]{}
	_ Payload = Source{}
)

// Load asks for the memoized value of Key, computing it on a miss.
type Load[K comparable] struct {
	Key K
}

func (p Load[K]) PartitionKey() string { return helper.PartitionKey(p.Key) }
func (p Load[K]) payload()             {}

// Invalidate drops the memoized value of Key.
type Invalidate[K comparable] struct {
	Key K
}

func (p Invalidate[K]) PartitionKey() string { return helper.PartitionKey(p.Key) }
func (p Invalidate[K]) payload()             {}

// Source asks for the channel of handled events.
type Source struct{}

func (Source) PartitionKey() string { return "" }
func (Source) payload()             {}

// TimeBoundedEvent records a handled Load or Invalidate, the span it took
// and its outcome.
type TimeBoundedEvent struct {
	Payload
	effects.TimeSpan

	// Removed reports, for an Invalidate, whether a memoized value was dropped.
	Removed bool
	Err     error
}

func (e TimeBoundedEvent) Span() effects.TimeSpan { return e.TimeSpan }

var _ effects.TimeBounded = TimeBoundedEvent{}
