package state

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

func TestValue_WatchReplaysCurrentAndConflates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := NewValue("idle")
	v.Set("loading")

	updates := v.Watch(ctx)
	assert.Equal(t, "loading", receive(t, updates))

	v.Set("a")
	v.Set("b")
	v.Set("success")
	assert.Equal(t, "success", receive(t, updates))

	select {
	case extra := <-updates:
		t.Fatalf("unexpected stale value %q", extra)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestValue_Update(t *testing.T) {
	v := NewValue(1)
	got := v.Update(func(n int) int { return n + 2 })
	assert.Equal(t, 3, got)
	assert.Equal(t, 3, v.Get())
}

func TestEvents_NoReplay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := NewEvents[string]()
	require.NoError(t, events.Emit(ctx, "dropped"))

	sub := events.Subscribe(ctx, 4)
	require.NoError(t, events.Emit(ctx, "home"))

	assert.Equal(t, "home", receive(t, sub))
	select {
	case ev := <-sub:
		t.Fatalf("unexpected event %q", ev)
	default:
	}
}

func TestEvents_EmitBlocksUntilTaken(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := NewEvents[int]()
	sub := events.Subscribe(ctx, 0)

	delivered := make(chan error, 1)
	go func() { delivered <- events.Emit(ctx, 7) }()

	assert.Equal(t, 7, receive(t, sub))
	require.NoError(t, receive(t, delivered))
}

func TestEvents_EmitAbortsOnCancel(t *testing.T) {
	subCtx, subCancel := context.WithCancel(context.Background())
	defer subCancel()

	events := NewEvents[int]()
	_ = events.Subscribe(subCtx, 0)

	emitCtx, emitCancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer emitCancel()
	assert.ErrorIs(t, events.Emit(emitCtx, 1), context.DeadlineExceeded)
}

func TestEvents_UnsubscribeClosesChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	events := NewEvents[int]()
	sub := events.Subscribe(ctx, 1)
	cancel()

	select {
	case _, ok := <-sub:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed")
	}
	assert.Eventually(t, func() bool { return events.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
}

func TestScope_RunsTasksInOrder(t *testing.T) {
	scope := NewScope(context.Background())
	defer scope.Close()

	var order []int
	for i := 1; i <= 3; i++ {
		n := i
		scope.Launch(func(ctx context.Context) {
			order = append(order, n)
			if n == 1 {
				scope.Launch(func(ctx context.Context) { order = append(order, 4) })
			}
		})
	}
	scope.Sync()

	assert.Equal(t, []int{1, 2, 3, 4}, order)
}

func TestScope_CloseCancelsRunningTask(t *testing.T) {
	scope := NewScope(context.Background())

	started := make(chan struct{})
	var cancelled atomic.Bool
	scope.Launch(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
	})
	var ranAfterClose atomic.Bool
	scope.Launch(func(ctx context.Context) { ranAfterClose.Store(true) })

	<-started
	scope.Close()

	assert.True(t, cancelled.Load())
	assert.False(t, ranAfterClose.Load())
	assert.False(t, scope.Launch(func(ctx context.Context) {}))
	assert.True(t, scope.Closed())
	scope.Sync()
}

func TestScope_RecoversPanics(t *testing.T) {
	scope := NewScope(context.Background())
	defer scope.Close()

	var ran atomic.Bool
	scope.Launch(func(ctx context.Context) { panic("boom") })
	scope.Launch(func(ctx context.Context) { ran.Store(true) })
	scope.Sync()

	assert.True(t, ran.Load())
}

func TestHolder_ClosedScreenStopsPublishing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	holder := NewHolder[string, string]("idle")
	events := holder.Subscribe(ctx, 4)

	holder.Launch(func(ctx context.Context) {
		holder.Set("done")
		holder.Emit("navigate")
	})
	holder.Sync()
	assert.Equal(t, "done", holder.Current())
	assert.Equal(t, "navigate", receive(t, events))

	holder.Close()
	holder.Emit("late")
	select {
	case ev := <-events:
		t.Fatalf("closed holder emitted %q", ev)
	case <-time.After(20 * time.Millisecond):
	}
}
