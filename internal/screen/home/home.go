// Package home loads the landing feed: categories and nearby restaurants.
package home

import (
	"context"

	"foodhub/internal/api"
	"foodhub/internal/domain"
	"foodhub/internal/logging"
	"foodhub/internal/state"

	"github.com/sirupsen/logrus"
)

// Coordinates used when no location fix is available.
const (
	DefaultLatitude  = 40.7128
	DefaultLongitude = -74.0060
)

type Status int

const (
	StatusLoading Status = iota
	StatusEmpty
	StatusSuccess
)

type State struct {
	Status      Status
	Categories  []domain.Category
	Restaurants []domain.Restaurant
}

type EventKind int

const (
	NavigateToDetail EventKind = iota + 1
)

type Event struct {
	Kind         EventKind
	RestaurantID string
	Name         string
	ImageURL     string
}

type API interface {
	Categories(ctx context.Context) api.Result[domain.CategoriesResponse]
	Restaurants(ctx context.Context, lat, lon float64) api.Result[domain.RestaurantResponse]
}

// Locator supplies the device position.
type Locator interface {
	Location(ctx context.Context) (lat, lon float64, err error)
}

type Screen struct {
	*state.Holder[State, Event]
	api     API
	locator Locator
	log     *logrus.Entry
}

// New starts loading immediately. locator may be nil.
func New(client API, locator Locator) *Screen {
	s := &Screen{
		Holder:  state.NewHolder[State, Event](State{Status: StatusLoading}),
		api:     client,
		locator: locator,
		log:     logging.New("home"),
	}
	s.Refresh()
	return s
}

func (s *Screen) Refresh() {
	s.Launch(func(ctx context.Context) {
		s.Set(State{Status: StatusLoading})

		var categories []domain.Category
		if res := s.api.Categories(ctx); res.OK() {
			categories = res.Data.Data
		}

		lat, lon := s.position(ctx)
		var restaurants []domain.Restaurant
		if res := s.api.Restaurants(ctx, lat, lon); res.OK() {
			restaurants = res.Data.Data
		}

		status := StatusEmpty
		if len(categories) > 0 && len(restaurants) > 0 {
			status = StatusSuccess
		}
		s.Set(State{Status: status, Categories: categories, Restaurants: restaurants})
	})
}

func (s *Screen) position(ctx context.Context) (float64, float64) {
	if s.locator == nil {
		return DefaultLatitude, DefaultLongitude
	}
	lat, lon, err := s.locator.Location(ctx)
	if err != nil {
		s.log.WithError(err).Debug("no location fix, using default coordinates")
		return DefaultLatitude, DefaultLongitude
	}
	return lat, lon
}

func (s *Screen) SelectRestaurant(r domain.Restaurant) {
	s.Launch(func(ctx context.Context) {
		s.Emit(Event{Kind: NavigateToDetail, RestaurantID: r.ID, Name: r.Name, ImageURL: r.ImageURL})
	})
}
