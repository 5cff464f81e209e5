package effects

import (
	"context"

	"github.com/on-the-ground/memo_ive_go/effects/internal/handlers"
	"github.com/on-the-ground/memo_ive_go/effects/internal/helper"
	effectmodel "github.com/on-the-ground/memo_ive_go/effects/internal/model"
	sharedHelper "github.com/on-the-ground/memo_ive_go/shared/helper"
	"go.uber.org/zap"
)

// ResumableResult is the outcome of a resumable effect.
type ResumableResult[R any] = handlers.ResumableResult[R]

var (
	ErrNoEffectHandler = effectmodel.ErrNoEffectHandler
	ErrHandlerClosed   = effectmodel.ErrHandlerClosed
	ErrHandlerPanicked = effectmodel.ErrHandlerPanicked
)

// WithResumableEffectHandler registers a resumable effect handler for a given effect enum.
//
// Payloads are dispatched to config.NumWorkers workers by PartitionKey(), so effects
// sharing a key are handled in order by the same goroutine.
//
// Usage:
//
//	ctx, end := WithResumableEffectHandler(ctx, config, MyEffectEnum, handleFn)
//	defer end()
func WithResumableEffectHandler[P effectmodel.Partitionable, R any](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	enum effectmodel.EffectEnum,
	handleFn func(context.Context, P) (R, error),
	teardown ...func(),
) (context.Context, func() context.Context) {
	handler := handlers.NewResumableHandler(ctx, config, handleFn, normalizeTeardown(teardown))
	ctxWith := context.WithValue(ctx, enum, handler)
	zap.L().Debug("created resumable effect handler",
		zap.String("effectId", handler.EffectId),
		zap.String("enum", string(enum)),
	)

	return ctxWith, func() context.Context {
		handler.Close()
		return ctx
	}
}

// PerformResumableEffect sends a payload to the resumable effect handler registered
// for enum. The returned channel receives exactly one result.
//
// It fails with ErrNoEffectHandler if ctx carries no handler for enum, and with
// ErrUnexpectedType if the handler was registered for other payload or result types.
func PerformResumableEffect[P effectmodel.Partitionable, R any](
	ctx context.Context,
	enum effectmodel.EffectEnum,
	payload P,
) (<-chan ResumableResult[R], error) {
	handler, err := sharedHelper.GetTypedValueOf[handlers.ResumableHandler[P, R]](
		func() (any, error) {
			return helper.GetHandler(ctx, enum)
		},
	)
	if err != nil {
		return nil, err
	}
	return handler.PerformEffect(ctx, payload), nil
}

// WithFireAndForgetEffectHandler registers a fire-and-forget effect handler for a given effect enum.
//
// Suitable for one-shot effects like logging or telemetry. Effects still queued
// when the handler ends are flushed before the teardown runs.
func WithFireAndForgetEffectHandler[P effectmodel.Partitionable](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	enum effectmodel.EffectEnum,
	handleFn func(context.Context, P),
	teardown ...func(),
) (context.Context, func() context.Context) {
	handler := handlers.NewFireAndForgetHandler(ctx, config, handleFn, normalizeTeardown(teardown))
	ctxWith := context.WithValue(ctx, enum, handler)
	zap.L().Debug("created fire/forget effect handler",
		zap.String("effectId", handler.EffectId),
		zap.String("enum", string(enum)),
	)

	return ctxWith, func() context.Context {
		handler.Close()
		return ctx
	}
}

// FireAndForgetEffect hands payload to the fire-and-forget handler registered for enum.
func FireAndForgetEffect[P effectmodel.Partitionable](
	ctx context.Context,
	enum effectmodel.EffectEnum,
	payload P,
) error {
	handler, err := sharedHelper.GetTypedValueOf[handlers.FireAndForgetHandler[P]](
		func() (any, error) {
			return helper.GetHandler(ctx, enum)
		},
	)
	if err != nil {
		return err
	}
	return handler.FireAndForgetEffect(ctx, payload)
}

// normalizeTeardown flattens optional teardown functions into a single callable.
//
// Accepts either 0 or 1 teardown functions. Panics if more than one is passed.
func normalizeTeardown(teardown []func()) func() {
	switch len(teardown) {
	case 1:
		return teardown[0]
	case 0:
		return func() {}
	default:
		panic("normalizeTeardown: only one or zero teardown functions allowed")
	}
}
