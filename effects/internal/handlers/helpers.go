package handlers

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/cespare/xxhash/v2"
	effectmodel "github.com/on-the-ground/memo_ive_go/effects/internal/model"
)

func indexByHash(key string, numChs int) int {
	switch numChs {
	case 0:
		panic("number of channels cannot be 0")
	case 1:
		return 0
	default:
		return int(xxhash.Sum64String(key) % uint64(numChs))
	}
}

func partitionKeyOf(payload any) string {
	if p, ok := payload.(effectmodel.Partitionable); ok {
		return p.PartitionKey()
	}
	return ""
}

// safeHandle runs handleFn, turning a panic into an error wrapping
// ErrHandlerPanicked so one bad payload cannot stop a worker.
func safeHandle[P, R any](
	ctx context.Context,
	handleFn func(context.Context, P) (R, error),
	payload P,
) (res R, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero R
			res = zero
			err = fmt.Errorf("%w: %v\n%s", effectmodel.ErrHandlerPanicked, r, debug.Stack())
		}
	}()
	return handleFn(ctx, payload)
}
