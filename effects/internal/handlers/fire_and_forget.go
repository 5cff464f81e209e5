package handlers

import (
	"context"

	effectmodel "github.com/on-the-ground/memo_ive_go/effects/internal/model"
	"go.uber.org/zap"
)

// FireAndForgetHandler handles effects without answering them. Effects still
// queued when the handler closes are flushed before the teardown runs.
type FireAndForgetHandler[P any] struct {
	*effectScope[P]
}

func NewFireAndForgetHandler[P any](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	handleFn func(context.Context, P),
	teardown func(),
) FireAndForgetHandler[P] {
	flushCtx := context.WithoutCancel(ctx)
	handle := func(ctx context.Context, payload P) {
		_, err := safeHandle(ctx, func(ctx context.Context, payload P) (struct{}, error) {
			handleFn(ctx, payload)
			return struct{}{}, nil
		}, payload)
		if err != nil {
			zap.L().Warn("fire-and-forget effect failed", zap.Error(err))
		}
	}
	dispatcher := NewWorkerDispatcher(
		ctx,
		config,
		func(payload P) string { return partitionKeyOf(payload) },
		handle,
		func(payload P) { handle(flushCtx, payload) },
	)
	return FireAndForgetHandler[P]{effectScope: newEffectScope(dispatcher, teardown)}
}

// FireAndForgetEffect queues payload. It only fails when ctx ends first or
// the handler is closed.
func (ffh FireAndForgetHandler[P]) FireAndForgetEffect(ctx context.Context, payload P) error {
	return ffh.dispatcher.Dispatch(ctx, payload)
}
