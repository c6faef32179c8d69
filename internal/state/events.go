package state

import (
	"context"
	"sync"
)

type subscriber[E any] struct {
	mu     sync.Mutex
	ch     chan E
	done   <-chan struct{}
	closed bool
}

// Events is a non-replaying broadcast: a subscriber only receives events
// emitted after it subscribed.
type Events[E any] struct {
	mu   sync.Mutex
	subs map[*subscriber[E]]struct{}
}

func NewEvents[E any]() *Events[E] {
	return &Events[E]{subs: make(map[*subscriber[E]]struct{})}
}

// Subscribe registers a listener until ctx is done, then closes the channel.
func (e *Events[E]) Subscribe(ctx context.Context, buffer int) <-chan E {
	if buffer < 0 {
		buffer = 0
	}
	sub := &subscriber[E]{ch: make(chan E, buffer), done: ctx.Done()}

	e.mu.Lock()
	e.subs[sub] = struct{}{}
	e.mu.Unlock()

	go func() {
		<-ctx.Done()
		e.mu.Lock()
		delete(e.subs, sub)
		e.mu.Unlock()

		sub.mu.Lock()
		sub.closed = true
		close(sub.ch)
		sub.mu.Unlock()
	}()
	return sub.ch
}

// Emit delivers ev to every current subscriber. It blocks on a full
// subscriber buffer until the event is taken, the subscriber leaves, or ctx
// is done. With no subscribers the event is dropped.
func (e *Events[E]) Emit(ctx context.Context, ev E) error {
	e.mu.Lock()
	subs := make([]*subscriber[E], 0, len(e.subs))
	for sub := range e.subs {
		subs = append(subs, sub)
	}
	e.mu.Unlock()

	for _, sub := range subs {
		if err := sub.deliver(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func (s *subscriber[E]) deliver(ctx context.Context, ev E) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case s.ch <- ev:
		return nil
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribers reports how many listeners are attached.
func (e *Events[E]) Subscribers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}
