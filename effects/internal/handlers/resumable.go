package handlers

import (
	"context"

	effectmodel "github.com/on-the-ground/memo_ive_go/effects/internal/model"
)

// ResumableResult is the outcome of a handled resumable effect.
type ResumableResult[T any] struct {
	Value T
	Err   error
}

func ResumableResultFrom[R any](res R, err error) ResumableResult[R] {
	return ResumableResult[R]{Value: res, Err: err}
}

type resumableEffectMessage[P any, R any] struct {
	payload  P
	resumeCh chan ResumableResult[R]
}

// ResumableHandler answers every performed effect with exactly one result.
type ResumableHandler[P any, R any] struct {
	*effectScope[resumableEffectMessage[P, R]]
}

func NewResumableHandler[P any, R any](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	handleFn func(context.Context, P) (R, error),
	teardown func(),
) ResumableHandler[P, R] {
	dispatcher := NewWorkerDispatcher(
		ctx,
		config,
		func(msg resumableEffectMessage[P, R]) string {
			return partitionKeyOf(msg.payload)
		},
		func(ctx context.Context, msg resumableEffectMessage[P, R]) {
			msg.resumeCh <- ResumableResultFrom(safeHandle(ctx, handleFn, msg.payload))
			close(msg.resumeCh)
		},
		func(msg resumableEffectMessage[P, R]) {
			var zero R
			msg.resumeCh <- ResumableResultFrom(zero, effectmodel.ErrHandlerClosed)
			close(msg.resumeCh)
		},
	)
	return ResumableHandler[P, R]{effectScope: newEffectScope(dispatcher, teardown)}
}

// PerformEffect queues payload and returns the channel its result will be
// sent on. The channel always receives one result and is then closed.
func (rh ResumableHandler[P, R]) PerformEffect(ctx context.Context, payload P) <-chan ResumableResult[R] {
	// buffered so the worker never waits for the performer
	resumeCh := make(chan ResumableResult[R], 1)
	msg := resumableEffectMessage[P, R]{
		payload:  payload,
		resumeCh: resumeCh,
	}
	if err := rh.dispatcher.Dispatch(ctx, msg); err != nil {
		var zero R
		resumeCh <- ResumableResultFrom(zero, err)
		close(resumeCh)
	}
	return resumeCh
}
