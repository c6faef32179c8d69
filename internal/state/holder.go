package state

import "context"

// Holder bundles what every screen owns: its state, its one-shot events and
// the scope its work runs in.
type Holder[S, E any] struct {
	value  *Value[S]
	events *Events[E]
	scope  *Scope
}

func NewHolder[S, E any](initial S) *Holder[S, E] {
	return &Holder[S, E]{
		value:  NewValue(initial),
		events: NewEvents[E](),
		scope:  NewScope(context.Background()),
	}
}

func (h *Holder[S, E]) Current() S { return h.value.Get() }

func (h *Holder[S, E]) Set(s S) { h.value.Set(s) }

func (h *Holder[S, E]) Update(fn func(S) S) S { return h.value.Update(fn) }

func (h *Holder[S, E]) Watch(ctx context.Context) <-chan S { return h.value.Watch(ctx) }

func (h *Holder[S, E]) Subscribe(ctx context.Context, buffer int) <-chan E {
	return h.events.Subscribe(ctx, buffer)
}

// Emit publishes ev within the screen's scope. Once the screen is closed
// pending emissions are abandoned.
func (h *Holder[S, E]) Emit(ev E) {
	_ = h.events.Emit(h.scope.Context(), ev)
}

func (h *Holder[S, E]) Launch(fn func(ctx context.Context)) bool { return h.scope.Launch(fn) }

func (h *Holder[S, E]) Sync() { h.scope.Sync() }

func (h *Holder[S, E]) Close() { h.scope.Close() }
