package purefn

import (
	"container/list"
	"fmt"
	"runtime/debug"
)

// entry is the lazy cell for one key. It is published pending, with done open,
// by the caller that missed. done is closed exactly once, under the shard
// lock, after value or err is set; neither changes afterwards.
type entry[K comparable, V any] struct {
	key   K
	done  chan struct{}
	value V
	err   error

	// elem is the entry's position in the shard's recency list.
	// Only set for completed entries that are still in the table.
	elem *list.Element
}

func newEntry[K comparable, V any](key K) *entry[K, V] {
	return &entry[K, V]{key: key, done: make(chan struct{})}
}

func (e *entry[K, V]) ready() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

// PanicError is returned to callers that were waiting on a computation which
// panicked. The computing caller itself re-panics with it.
type PanicError struct {
	Value any
	Stack []byte
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("computation panicked: %v\n\n%s", p.Value, p.Stack)
}

func (p *PanicError) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}
