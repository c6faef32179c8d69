// Package orders lists past and upcoming orders and shows one order's detail.
package orders

import (
	"context"

	"foodhub/internal/api"
	"foodhub/internal/domain"
	"foodhub/internal/state"
)

// Order statuses that still await the restaurant.
const (
	StatusPending           = "PENDING"
	StatusPendingAcceptance = "PENDING_ACCEPTANCE"
)

type Tab int

const (
	Upcoming Tab = iota
	History
)

func (t Tab) String() string {
	if t == Upcoming {
		return "Upcoming"
	}
	return "History"
}

// TabOf places an order on the Upcoming tab while it is pending.
func TabOf(order domain.Order) Tab {
	switch order.Status {
	case StatusPending, StatusPendingAcceptance:
		return Upcoming
	default:
		return History
	}
}

// Split partitions orders by tab, keeping their order.
func Split(orders []domain.Order) (upcoming, history []domain.Order) {
	for _, order := range orders {
		if TabOf(order) == Upcoming {
			upcoming = append(upcoming, order)
		} else {
			history = append(history, order)
		}
	}
	return upcoming, history
}

type ListStatus int

const (
	ListLoading ListStatus = iota
	ListSuccess
	ListError
)

type ListState struct {
	Status       ListStatus
	Orders       []domain.Order
	ErrorMessage string
}

// Tab returns the orders shown on tab t.
func (s ListState) Tab(t Tab) []domain.Order {
	upcoming, history := Split(s.Orders)
	if t == Upcoming {
		return upcoming
	}
	return history
}

type ListEventKind int

const (
	NavigateToDetails ListEventKind = iota + 1
	NavigateBack
)

type ListEvent struct {
	Kind  ListEventKind
	Order domain.Order
}

type API interface {
	Orders(ctx context.Context) api.Result[domain.OrderListResponse]
	OrderDetails(ctx context.Context, orderID string) api.Result[domain.Order]
}

type List struct {
	*state.Holder[ListState, ListEvent]
	api API
}

func NewList(client API) *List {
	l := &List{
		Holder: state.NewHolder[ListState, ListEvent](ListState{Status: ListLoading}),
		api:    client,
	}
	l.Refresh()
	return l
}

func (l *List) Refresh() {
	l.Launch(func(ctx context.Context) {
		l.Set(ListState{Status: ListLoading})
		res := l.api.Orders(ctx)
		if res.OK() {
			l.Set(ListState{Status: ListSuccess, Orders: res.Data.Orders})
			return
		}
		l.Set(ListState{Status: ListError, ErrorMessage: res.Describe()})
	})
}

func (l *List) Select(order domain.Order) {
	l.Launch(func(ctx context.Context) {
		l.Emit(ListEvent{Kind: NavigateToDetails, Order: order})
	})
}

func (l *List) Back() {
	l.Launch(func(ctx context.Context) {
		l.Emit(ListEvent{Kind: NavigateBack})
	})
}
