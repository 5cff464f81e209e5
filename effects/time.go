package effects

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

type TimeSpan = timespan.TimeSpan

// NewTimeSpan returns the span between from and to.
func NewTimeSpan(from, to time.Time) TimeSpan {
	return timespan.BetweenTimes(from, to)
}

// Since returns the span from start until now.
func Since(start time.Time) TimeSpan {
	return timespan.BetweenTimes(start, time.Now())
}

const epsilon = time.Millisecond

// Now returns a span of two epsilons around the current instant.
func Now() TimeSpan {
	now := time.Now()
	return timespan.BetweenTimes(now.Add(-epsilon), now.Add(epsilon))
}

type TimeBounded interface {
	Span() TimeSpan
}
