// Package state holds the per-screen building blocks: an observable
// last-write-wins value, a non-replaying event stream and the task scope
// that serialises a screen's work.
package state

import (
	"context"
	"sync"
)

// Value is a replayable single slot. Watchers always see the newest value.
type Value[S any] struct {
	mu      sync.Mutex
	current S
	changed chan struct{}
}

func NewValue[S any](initial S) *Value[S] {
	return &Value[S]{current: initial, changed: make(chan struct{})}
}

func (v *Value[S]) Get() S {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

func (v *Value[S]) Set(s S) {
	v.mu.Lock()
	v.current = s
	close(v.changed)
	v.changed = make(chan struct{})
	v.mu.Unlock()
}

// Update applies fn to the current value atomically and returns the result.
func (v *Value[S]) Update(fn func(S) S) S {
	v.mu.Lock()
	v.current = fn(v.current)
	next := v.current
	close(v.changed)
	v.changed = make(chan struct{})
	v.mu.Unlock()
	return next
}

// Watch delivers the current value at once and then the latest value after
// every change. Intermediate values are conflated. The channel closes when
// ctx is done.
func (v *Value[S]) Watch(ctx context.Context) <-chan S {
	out := make(chan S)
	go func() {
		defer close(out)
		for {
			v.mu.Lock()
			current, changed := v.current, v.changed
			v.mu.Unlock()

			select {
			case out <- current:
			case <-ctx.Done():
				return
			}
			select {
			case <-changed:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
