package effectmodel

import "errors"

type EffectEnum string

const (
	EffectLog  EffectEnum = "memo_ive_go_effect_enum_log"
	EffectMemo EffectEnum = "memo_ive_go_effect_enum_memo"
)

var (
	// ErrNoEffectHandler is returned when the context carries no handler for an effect.
	ErrNoEffectHandler = errors.New("no effect handler registered for this effect")

	// ErrHandlerClosed is returned for effects performed on, or still queued in,
	// a handler that has been closed.
	ErrHandlerClosed = errors.New("effect handler closed")

	// ErrHandlerPanicked wraps a panic raised while handling an effect.
	ErrHandlerPanicked = errors.New("effect handler panicked")
)

type EffectScopeConfig struct {
	BufferSize int // default: 1
	NumWorkers int // default: 1
}

func NewEffectScopeConfig(bufferSize int, numWorkers int) EffectScopeConfig {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return EffectScopeConfig{
		BufferSize: bufferSize,
		NumWorkers: numWorkers,
	}
}

// Partitionable payloads with equal partition keys are handled by the same
// worker, in the order they were performed.
type Partitionable interface {
	PartitionKey() string
}
