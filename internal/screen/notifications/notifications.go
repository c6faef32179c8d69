// Package notifications lists in-app notifications and tracks the unread badge.
package notifications

import (
	"context"

	"foodhub/internal/api"
	"foodhub/internal/domain"
	"foodhub/internal/state"
)

type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

type State struct {
	Status        Status
	Notifications []domain.Notification
	ErrorMessage  string
}

type EventKind int

const (
	NavigateToOrderDetails EventKind = iota + 1
)

type Event struct {
	Kind    EventKind
	OrderID string
}

type API interface {
	Notifications(ctx context.Context) api.Result[domain.NotificationListResponse]
	ReadNotification(ctx context.Context, notificationID string) api.Result[domain.GenericMsgResponse]
}

type Screen struct {
	*state.Holder[State, Event]
	api    API
	unread *state.Value[int]
}

func New(client API) *Screen {
	s := &Screen{
		Holder: state.NewHolder[State, Event](State{Status: StatusLoading}),
		api:    client,
		unread: state.NewValue(0),
	}
	s.Refresh()
	return s
}

func (s *Screen) UnreadCount() int { return s.unread.Get() }

func (s *Screen) WatchUnreadCount(ctx context.Context) <-chan int { return s.unread.Watch(ctx) }

func (s *Screen) Refresh() {
	s.Launch(s.fetch)
}

// fetch leaves the previous state alone on an exception.
func (s *Screen) fetch(ctx context.Context) {
	res := s.api.Notifications(ctx)
	switch {
	case res.OK():
		s.unread.Set(res.Data.UnreadCount)
		s.Set(State{Status: StatusSuccess, Notifications: res.Data.Notifications})
	case res.IsError():
		s.Set(State{Status: StatusError, ErrorMessage: res.Message})
	}
}

// Read opens the order behind n, then marks n read and refreshes the list.
func (s *Screen) Read(n domain.Notification) {
	s.Launch(func(ctx context.Context) {
		s.Emit(Event{Kind: NavigateToOrderDetails, OrderID: n.OrderID})
		if res := s.api.ReadNotification(ctx, n.ID); res.OK() {
			s.fetch(ctx)
		}
	})
}
