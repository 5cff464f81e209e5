package handlers

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// effectScope ties a dispatcher to the teardown of the handler owning it.
// Close is idempotent and safe for concurrent use.
type effectScope[T any] struct {
	EffectId   string
	dispatcher *WorkerDispatcher[T]
	closeOnce  sync.Once
	teardown   func()
}

func newEffectScope[T any](dispatcher *WorkerDispatcher[T], teardown func()) *effectScope[T] {
	return &effectScope[T]{
		EffectId:   uuid.New().String(),
		dispatcher: dispatcher,
		teardown:   teardown,
	}
}

// Close stops the dispatcher, settles queued effects, then runs the teardown.
func (es *effectScope[T]) Close() {
	es.closeOnce.Do(func() {
		es.dispatcher.Stop()
		es.teardown()
		zap.L().Debug("effect scope closed", zap.String("effectId", es.EffectId))
	})
}
