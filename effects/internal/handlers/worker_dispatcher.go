package handlers

import (
	"context"
	"sync"

	effectmodel "github.com/on-the-ground/memo_ive_go/effects/internal/model"
)

// WorkerDispatcher fans messages out to a fixed set of workers. Messages with
// the same partition key go to the same worker and keep their order.
//
// When ctx ends or Stop is called, the workers exit and every message still
// queued is passed to drop instead, so each accepted message is settled
// exactly once. drop may run on several goroutines.
type WorkerDispatcher[T any] struct {
	ctx       context.Context
	cancel    context.CancelFunc
	chs       []chan T
	partition func(T) string

	mu      sync.RWMutex
	closed  bool
	workers sync.WaitGroup
	stopped chan struct{}
}

func NewWorkerDispatcher[T any](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	partition func(T) string,
	handleFn func(context.Context, T),
	drop func(T),
) *WorkerDispatcher[T] {
	config = effectmodel.NewEffectScopeConfig(config.BufferSize, config.NumWorkers)
	ctx, cancel := context.WithCancel(ctx)
	d := &WorkerDispatcher[T]{
		ctx:       ctx,
		cancel:    cancel,
		chs:       make([]chan T, config.NumWorkers),
		partition: partition,
		stopped:   make(chan struct{}),
	}

	for i := range d.chs {
		ch := make(chan T, config.BufferSize)
		d.chs[i] = ch
		d.workers.Add(1)
		go func() {
			defer d.workers.Done()
			for {
				select {
				case msg := <-ch:
					if ctx.Err() != nil {
						drop(msg)
						continue
					}
					handleFn(ctx, msg)
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		<-ctx.Done()
		d.mu.Lock()
		d.closed = true
		d.mu.Unlock()

		d.workers.Wait()
		for _, ch := range d.chs {
		drain:
			for {
				select {
				case msg := <-ch:
					drop(msg)
				default:
					break drain
				}
			}
		}
		close(d.stopped)
	}()

	return d
}

// Dispatch queues msg for its worker. It blocks while the worker's buffer is
// full, and fails with ErrHandlerClosed once the dispatcher is stopping.
func (d *WorkerDispatcher[T]) Dispatch(ctx context.Context, msg T) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return effectmodel.ErrHandlerClosed
	}
	ch := d.chs[indexByHash(d.partition(msg), len(d.chs))]
	select {
	case ch <- msg:
		return nil
	case <-d.ctx.Done():
		return effectmodel.ErrHandlerClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop ends the workers and waits until every queued message was dropped.
func (d *WorkerDispatcher[T]) Stop() {
	d.cancel()
	<-d.stopped
}

// Done is closed once the dispatcher is fully stopped.
func (d *WorkerDispatcher[T]) Done() <-chan struct{} {
	return d.stopped
}
