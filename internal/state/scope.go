package state

import (
	"context"
	"sync"

	"foodhub/internal/logging"
)

// Scope runs a screen's tasks one after another on a single worker
// goroutine. Closing it cancels the context handed to every task.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	idle    *sync.Cond
	queue   []func(context.Context)
	pending int
	closed  bool

	wake chan struct{}
	done chan struct{}
	once sync.Once
}

func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	s := &Scope{
		ctx:    ctx,
		cancel: cancel,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	s.idle = sync.NewCond(&s.mu)
	go s.run()
	return s
}

func (s *Scope) Context() context.Context {
	return s.ctx
}

// Launch queues fn. It reports false once the scope is closed.
func (s *Scope) Launch(fn func(ctx context.Context)) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.queue = append(s.queue, fn)
	s.pending++
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return true
}

// Sync blocks until every queued task has finished, including tasks queued
// by those tasks.
func (s *Scope) Sync() {
	s.mu.Lock()
	for s.pending > 0 {
		s.idle.Wait()
	}
	s.mu.Unlock()
}

// Close cancels the context, drops queued tasks and waits for the running
// one to return. It must not be called from inside a task.
func (s *Scope) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.finish(len(s.queue))
		s.queue = nil
		s.mu.Unlock()

		s.cancel()
		select {
		case s.wake <- struct{}{}:
		default:
		}
	})
	<-s.done
}

func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// finish must be called with mu held.
func (s *Scope) finish(n int) {
	s.pending -= n
	if s.pending <= 0 {
		s.pending = 0
		s.idle.Broadcast()
	}
}

func (s *Scope) run() {
	defer close(s.done)
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return
			}
			<-s.wake
			continue
		}
		task := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.execute(task)
	}
}

func (s *Scope) execute(task func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			logging.New("state").WithField("panic", r).Error("screen task panicked")
		}
		s.mu.Lock()
		s.finish(1)
		s.mu.Unlock()
	}()
	task(s.ctx)
}
