// Package fooddetails shows one food item and adds it to the cart.
package fooddetails

import (
	"context"

	"foodhub/internal/api"
	"foodhub/internal/domain"
	"foodhub/internal/state"
)

type Status int

const (
	StatusNothing Status = iota
	StatusLoading
	StatusError
)

type State struct {
	Status       Status
	Item         domain.FoodItem
	Quantity     int
	ErrorMessage string
}

type EventKind int

const (
	OnAddToCart EventKind = iota + 1
	ShowErrorDialog
	GoToCart
)

type Event struct {
	Kind    EventKind
	Message string
}

type API interface {
	AddToCart(ctx context.Context, req domain.AddToCartRequest) api.Result[domain.AddToCartResponse]
}

// AddedSignal is told when an item landed in the cart so the cart badge can refresh.
type AddedSignal interface {
	Put(added bool)
}

type Screen struct {
	*state.Holder[State, Event]
	api   API
	added AddedSignal
}

// New opens the details of item with a draft quantity of one. added may be nil.
func New(client API, item domain.FoodItem, added AddedSignal) *Screen {
	return &Screen{
		Holder: state.NewHolder[State, Event](State{Item: item, Quantity: domain.MinQuantity}),
		api:    client,
		added:  added,
	}
}

// Increment and Decrement keep the draft quantity inside the allowed range.
func (s *Screen) Increment() {
	s.Update(func(st State) State {
		if st.Quantity < domain.MaxQuantity {
			st.Quantity++
		}
		return st
	})
}

func (s *Screen) Decrement() {
	s.Update(func(st State) State {
		if st.Quantity > domain.MinQuantity {
			st.Quantity--
		}
		return st
	})
}

func (s *Screen) AddToCart() {
	s.Launch(func(ctx context.Context) {
		current := s.Update(func(st State) State {
			st.Status = StatusLoading
			st.ErrorMessage = ""
			return st
		})

		res := s.api.AddToCart(ctx, domain.AddToCartRequest{
			RestaurantID: current.Item.RestaurantID,
			MenuItemID:   current.Item.ID,
			Quantity:     current.Quantity,
		})

		message := ""
		switch {
		case res.OK():
			s.Update(func(st State) State { st.Status = StatusNothing; return st })
			if s.added != nil {
				s.added.Put(true)
			}
			s.Emit(Event{Kind: OnAddToCart})
			return
		case res.IsError():
			message = res.Message
		default:
			message = "Exception Occurred"
		}
		s.Update(func(st State) State {
			st.Status = StatusError
			st.ErrorMessage = message
			return st
		})
		s.Emit(Event{Kind: ShowErrorDialog, Message: message})
	})
}

func (s *Screen) GoToCart() {
	s.Launch(func(ctx context.Context) {
		s.Emit(Event{Kind: GoToCart})
	})
}
