// Package restaurant shows the menu of one restaurant.
package restaurant

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
	StatusSuccess
	StatusError
)

type State struct {
	Status       Status
	RestaurantID string
	Name         string
	ImageURL     string
	FoodItems    []domain.FoodItem
	ErrorTitle   string
	ErrorMessage string
}

type EventKind int

const (
	GoBack EventKind = iota + 1
	ShowErrorDialog
	NavigateToFoodDetails
)

type Event struct {
	Kind     EventKind
	FoodItem domain.FoodItem
	Title    string
	Message  string
}

type API interface {
	RestaurantMenu(ctx context.Context, restaurantID string) api.Result[domain.FoodItemResponse]
}

// Failure maps a failed menu fetch to a dialog title and description.
func Failure[T any](res api.Result[T]) (title, message string) {
	if !res.IsError() {
		return "Exception", "Please try again later"
	}
	switch res.Code {
	case 401:
		return "Unauthorized", "You are not authorized to view this page"
	case 500:
		return "Server Error", "Please try again later. Server Error!"
	case 404:
		return "Not Found", "Restaurant Not Found"
	default:
		return "Unknown Error", "Please try again later"
	}
}

type Screen struct {
	*state.Holder[State, Event]
	api API
}

// New opens the menu for the given restaurant and starts loading it.
func New(client API, restaurantID, name, imageURL string) *Screen {
	s := &Screen{
		Holder: state.NewHolder[State, Event](State{RestaurantID: restaurantID, Name: name, ImageURL: imageURL}),
		api:    client,
	}
	s.Load()
	return s
}

func (s *Screen) Load() {
	s.Launch(func(ctx context.Context) {
		current := s.Update(func(st State) State {
			st.Status = StatusLoading
			st.ErrorTitle, st.ErrorMessage = "", ""
			return st
		})

		res := s.api.RestaurantMenu(ctx, current.RestaurantID)
		if res.OK() {
			s.Update(func(st State) State {
				st.Status = StatusSuccess
				st.FoodItems = res.Data.FoodItems
				return st
			})
			return
		}

		title, message := Failure(res)
		s.Update(func(st State) State {
			st.Status = StatusError
			st.ErrorTitle, st.ErrorMessage = title, message
			return st
		})
		s.Emit(Event{Kind: ShowErrorDialog, Title: title, Message: message})
	})
}

func (s *Screen) SelectFoodItem(item domain.FoodItem) {
	s.Launch(func(ctx context.Context) {
		s.Emit(Event{Kind: NavigateToFoodDetails, FoodItem: item})
	})
}

func (s *Screen) Back() {
	s.Launch(func(ctx context.Context) {
		s.Emit(Event{Kind: GoBack})
	})
}
