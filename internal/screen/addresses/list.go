// Package addresses lists saved delivery addresses and adds new ones from
// a reverse geocoded position.
package addresses

import (
	"context"

	"foodhub/internal/api"
	"foodhub/internal/domain"
	"foodhub/internal/state"
)

type ListStatus int

const (
	ListLoading ListStatus = iota
	ListSuccess
	ListError
)

type ListState struct {
	Status       ListStatus
	Addresses    []domain.Address
	ErrorMessage string
}

type ListEventKind int

const (
	NavigateToAddAddress ListEventKind = iota + 1
	NavigateBack
)

type ListEvent struct {
	Kind    ListEventKind
	Address domain.Address
}

type ListAPI interface {
	Addresses(ctx context.Context) api.Result[domain.AddressListResponse]
}

// SelectedSink receives the address the user picked for checkout.
type SelectedSink interface {
	Put(address domain.Address)
}

type List struct {
	*state.Holder[ListState, ListEvent]
	api      ListAPI
	selected SelectedSink
}

// NewList opens the list and fetches it. selected may be nil.
func NewList(client ListAPI, selected SelectedSink) *List {
	l := &List{
		Holder:   state.NewHolder[ListState, ListEvent](ListState{Status: ListLoading}),
		api:      client,
		selected: selected,
	}
	l.Refresh()
	return l
}

func (l *List) Refresh() {
	l.Launch(func(ctx context.Context) {
		l.Set(ListState{Status: ListLoading})
		res := l.api.Addresses(ctx)
		switch {
		case res.OK():
			l.Set(ListState{Status: ListSuccess, Addresses: res.Data.Addresses})
		case res.IsError():
			l.Set(ListState{Status: ListError, ErrorMessage: res.Message})
		default:
			l.Set(ListState{Status: ListError, ErrorMessage: "Something went wrong"})
		}
	})
}

func (l *List) AddAddress() {
	l.Launch(func(ctx context.Context) {
		l.Emit(ListEvent{Kind: NavigateToAddAddress})
	})
}

// Select hands the address back to the cart and leaves the screen.
func (l *List) Select(address domain.Address) {
	l.Launch(func(ctx context.Context) {
		if l.selected != nil {
			l.selected.Put(address)
		}
		l.Emit(ListEvent{Kind: NavigateBack, Address: address})
	})
}
