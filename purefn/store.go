package purefn

import (
	"context"
	"errors"
)

// ErrStore wraps failures of the second tier Store.
var ErrStore = errors.New("memo store failure")

// Store is a second tier behind the in-memory table, such as a shared or
// larger cache. A Store may drop entries at any time.
type Store[K comparable, V any] interface {
	Load(ctx context.Context, key K) (value V, ok bool, err error)
	Store(ctx context.Context, key K, value V) error
	Delete(ctx context.Context, key K) error
}
