package handlers_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/on-the-ground/memo_ive_go/effects/internal/handlers"
	effectmodel "github.com/on-the-ground/memo_ive_go/effects/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dummyMessage implements Partitionable for testing partitioned dispatching.
type dummyMessage struct {
	id    int
	group string
}

func (d dummyMessage) PartitionKey() string {
	return d.group
}

func byGroup(msg dummyMessage) string { return msg.group }

func TestWorkerDispatcher_DispatchesToHandler(t *testing.T) {
	var (
		mu     sync.Mutex
		called = make(map[string][]int)
		wg     sync.WaitGroup
	)
	wg.Add(4)

	d := handlers.NewWorkerDispatcher(
		context.Background(),
		effectmodel.NewEffectScopeConfig(10, 4),
		byGroup,
		func(_ context.Context, msg dummyMessage) {
			defer wg.Done()
			mu.Lock()
			called[msg.group] = append(called[msg.group], msg.id)
			mu.Unlock()
		},
		func(dummyMessage) {},
	)
	defer d.Stop()

	for _, msg := range []dummyMessage{{1, "groupA"}, {2, "groupA"}, {3, "groupB"}, {4, "groupB"}} {
		require.NoError(t, d.Dispatch(context.Background(), msg))
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2}, called["groupA"])
	assert.Equal(t, []int{3, 4}, called["groupB"])
}

func TestWorkerDispatcher_OrderIsPreservedForSamePartitionKey(t *testing.T) {
	var (
		mu        sync.Mutex
		processed []int
		wg        sync.WaitGroup
	)
	wg.Add(20)

	d := handlers.NewWorkerDispatcher(
		context.Background(),
		effectmodel.NewEffectScopeConfig(4, 3),
		byGroup,
		func(_ context.Context, msg dummyMessage) {
			defer wg.Done()
			mu.Lock()
			processed = append(processed, msg.id)
			mu.Unlock()
		},
		func(dummyMessage) {},
	)
	defer d.Stop()

	want := make([]int, 20)
	for i := range want {
		want[i] = i
		require.NoError(t, d.Dispatch(context.Background(), dummyMessage{id: i, group: "sameKey"}))
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, want, processed)
}

func TestWorkerDispatcher_BlocksWhenBufferIsFull(t *testing.T) {
	entered := make(chan struct{}, 1)
	release := make(chan struct{})

	d := handlers.NewWorkerDispatcher(
		context.Background(),
		effectmodel.NewEffectScopeConfig(1, 1),
		byGroup,
		func(context.Context, dummyMessage) {
			entered <- struct{}{}
			<-release
		},
		func(dummyMessage) {},
	)
	defer d.Stop()

	require.NoError(t, d.Dispatch(context.Background(), dummyMessage{id: 1}))
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("handler did not start")
	}
	require.NoError(t, d.Dispatch(context.Background(), dummyMessage{id: 2})) // fills the buffer

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Dispatch(ctx, dummyMessage{id: 3}), context.DeadlineExceeded)

	close(release)
}

func TestWorkerDispatcher_StopDropsQueuedMessages(t *testing.T) {
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	var dropped []int

	d := handlers.NewWorkerDispatcher(
		context.Background(),
		effectmodel.NewEffectScopeConfig(8, 1),
		byGroup,
		func(context.Context, dummyMessage) {
			entered <- struct{}{}
			<-release
		},
		func(msg dummyMessage) { dropped = append(dropped, msg.id) },
	)

	require.NoError(t, d.Dispatch(context.Background(), dummyMessage{id: 1}))
	<-entered
	for i := 2; i <= 4; i++ {
		require.NoError(t, d.Dispatch(context.Background(), dummyMessage{id: i}))
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()
	d.Stop()

	assert.Equal(t, []int{2, 3, 4}, dropped)
	assert.ErrorIs(t, d.Dispatch(context.Background(), dummyMessage{id: 5}), effectmodel.ErrHandlerClosed)
	select {
	case <-d.Done():
	default:
		t.Fatal("dispatcher should be done after Stop")
	}
}

func TestWorkerDispatcher_StopsWithParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := handlers.NewWorkerDispatcher(
		ctx,
		effectmodel.NewEffectScopeConfig(1, 2),
		byGroup,
		func(context.Context, dummyMessage) {},
		func(dummyMessage) {},
	)

	cancel()
	select {
	case <-d.Done():
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop with its parent context")
	}
	assert.ErrorIs(t, d.Dispatch(context.Background(), dummyMessage{}), effectmodel.ErrHandlerClosed)
}
