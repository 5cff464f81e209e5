package memo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/on-the-ground/memo_ive_go/effects"
	effectmodel "github.com/on-the-ground/memo_ive_go/effects/internal/model"
	"github.com/on-the-ground/memo_ive_go/effects/log"
	"github.com/on-the-ground/memo_ive_go/purefn"
	"github.com/on-the-ground/memo_ive_go/shared/helper"
)

// ErrUnsupportedPayload is returned when a payload does not match the key
// type of the handler in scope.
var ErrUnsupportedPayload = errors.New("unsupported memo payload")

// WithEffectHandler registers a resumable, partitionable effect handler serving
// lookups and invalidations on cache.
//
// Payloads are routed by key over numWorkers workers, so operations on one key
// are handled in the order they were performed. A Load only starts its lookup
// on the worker; the lookup itself runs on its own goroutine, so a slow
// computation holds up no other key. Concurrent Loads of one key still share
// a single computation.
//
// Every handled Load and Invalidate is published on the Source channel, holding
// up to 2*numWorkers events; events are dropped while it is full.
// The end function closes the handler, waits for the lookups in flight, then
// closes the Source channel and returns the parent context. Lookups in flight
// see their context cancelled.
func WithEffectHandler[K comparable, V any](
	ctx context.Context,
	bufferSize, numWorkers int,
	cache *purefn.MemoCache[K, V],
) (context.Context, func() context.Context) {
	config := effectmodel.NewEffectScopeConfig(bufferSize, numWorkers)
	h := &memoHandler[K, V]{
		cache: cache,
		sink:  make(chan TimeBoundedEvent, 2*config.NumWorkers),
	}
	return effects.WithResumableEffectHandler(
		ctx,
		config,
		effectmodel.EffectMemo,
		h.handle,
		h.closeSink,
	)
}

// Effect returns the memoized value of key from the memo handler in ctx.
func Effect[K comparable, V any](ctx context.Context, key K) (V, error) {
	var zero V
	resultCh, err := helper.GetTypedValueOf[<-chan loaded[V]](func() (any, error) {
		return effect(ctx, Load[K]{Key: key})
	})
	if err != nil {
		return zero, err
	}
	select {
	case res := <-resultCh:
		return res.value, res.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// EffectInvalidate drops the memoized value of key and reports whether there was one.
func EffectInvalidate[K comparable](ctx context.Context, key K) (bool, error) {
	return helper.GetTypedValueOf[bool](func() (any, error) {
		return effect(ctx, Invalidate[K]{Key: key})
	})
}

// EffectSource returns the channel of events handled by the memo handler in ctx.
// It is closed when the handler ends.
func EffectSource(ctx context.Context) (<-chan TimeBoundedEvent, error) {
	return helper.GetTypedValueOf[<-chan TimeBoundedEvent](func() (any, error) {
		return effect(ctx, Source{})
	})
}

func effect(ctx context.Context, payload Payload) (any, error) {
	resultCh, err := effects.PerformResumableEffect[Payload, any](ctx, effectmodel.EffectMemo, payload)
	if err != nil {
		return nil, err
	}
	select {
	case res, ok := <-resultCh:
		if !ok {
			return nil, effects.ErrHandlerClosed
		}
		return res.Value, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// loaded is the outcome of a lookup started by a Load.
type loaded[V any] struct {
	value V
	err   error
}

type memoHandler[K comparable, V any] struct {
	cache   *purefn.MemoCache[K, V]
	lookups sync.WaitGroup

	mu     sync.RWMutex
	sink   chan TimeBoundedEvent
	closed bool
}

// handle routes the given payload to the matching cache operation.
func (h *memoHandler[K, V]) handle(ctx context.Context, payload Payload) (any, error) {
	start := time.Now()
	switch p := payload.(type) {
	case Load[K]:
		resultCh := make(chan loaded[V], 1)
		h.lookups.Add(1)
		go h.lookup(ctx, p, start, resultCh)
		return (<-chan loaded[V])(resultCh), nil

	case Invalidate[K]:
		removed, err := h.cache.InvalidateContext(ctx, p.Key)
		if err != nil {
			log.Effect(ctx, log.LogWarn, "memo invalidation incomplete", map[string]any{
				"key": p.PartitionKey(),
				"err": err,
			})
		}
		h.publish(TimeBoundedEvent{Payload: p, TimeSpan: effects.Since(start), Removed: removed, Err: err})
		return removed, err

	case Source:
		return (<-chan TimeBoundedEvent)(h.sink), nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedPayload, payload)
	}
}

// lookup answers a Load on resultCh. A panic of the computation is reported
// as the *purefn.PanicError its waiters receive; any other panic as an error
// wrapping ErrHandlerPanicked.
func (h *memoHandler[K, V]) lookup(ctx context.Context, p Load[K], start time.Time, resultCh chan<- loaded[V]) {
	defer h.lookups.Done()

	var res loaded[V]
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if pe, ok := r.(*purefn.PanicError); ok {
				res = loaded[V]{err: pe}
				return
			}
			res = loaded[V]{err: fmt.Errorf("%w: %v", effects.ErrHandlerPanicked, r)}
		}()
		res.value, res.err = h.cache.GetOrCompute(ctx, p.Key)
	}()

	h.publish(TimeBoundedEvent{Payload: p, TimeSpan: effects.Since(start), Err: res.err})
	resultCh <- res
}

func (h *memoHandler[K, V]) publish(ev TimeBoundedEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}
	select {
	case h.sink <- ev:
	default:
	}
}

func (h *memoHandler[K, V]) closeSink() {
	h.lookups.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	close(h.sink)
}
