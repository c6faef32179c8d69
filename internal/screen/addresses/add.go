package addresses

import (
	"context"

	"foodhub/internal/api"
	"foodhub/internal/domain"
	"foodhub/internal/logging"
	"foodhub/internal/state"

	"github.com/sirupsen/logrus"
)

type AddStatus int

const (
	AddLoading AddStatus = iota
	AddReady
	AddStoring
	AddSuccess
	AddError
)

type AddState struct {
	Status       AddStatus
	Address      *domain.Address
	ErrorMessage string
}

type AddEventKind int

const (
	NavigateToAddressList AddEventKind = iota + 1
)

type AddEvent struct {
	Kind AddEventKind
}

type AddAPI interface {
	ReverseGeocode(ctx context.Context, req domain.ReverseGeoCodeRequest) api.Result[domain.Address]
	StoreAddress(ctx context.Context, address domain.Address) api.Result[domain.GenericMsgResponse]
}

// Locator supplies the device position.
type Locator interface {
	Location(ctx context.Context) (lat, lon float64, err error)
}

type Add struct {
	*state.Holder[AddState, AddEvent]
	api     AddAPI
	locator Locator
	log     *logrus.Entry
}

// NewAdd opens the screen in the loading state; call Locate or Geocode to
// resolve an address.
func NewAdd(client AddAPI, locator Locator) *Add {
	return &Add{
		Holder:  state.NewHolder[AddState, AddEvent](AddState{Status: AddLoading}),
		api:     client,
		locator: locator,
		log:     logging.New("addresses"),
	}
}

// Locate reverse geocodes the current device position.
func (a *Add) Locate() {
	a.Launch(func(ctx context.Context) {
		if a.locator == nil {
			a.Set(AddState{Status: AddError, ErrorMessage: "Failed to fetch Address"})
			return
		}
		lat, lon, err := a.locator.Location(ctx)
		if err != nil {
			a.log.WithError(err).Warn("location unavailable")
			a.Set(AddState{Status: AddError, ErrorMessage: "Failed to fetch Address"})
			return
		}
		a.geocode(ctx, lat, lon)
	})
}

func (a *Add) Geocode(lat, lon float64) {
	a.Launch(func(ctx context.Context) {
		a.geocode(ctx, lat, lon)
	})
}

func (a *Add) geocode(ctx context.Context, lat, lon float64) {
	a.Set(AddState{Status: AddLoading})
	res := a.api.ReverseGeocode(ctx, domain.ReverseGeoCodeRequest{Latitude: lat, Longitude: lon})
	if !res.OK() {
		a.Set(AddState{Status: AddError, ErrorMessage: "Failed to fetch Address"})
		return
	}
	address := res.Data
	a.Set(AddState{Status: AddReady, Address: &address})
}

// Store saves the resolved address. Without one nothing is sent.
func (a *Add) Store() {
	a.Launch(func(ctx context.Context) {
		current := a.Current()
		if current.Address == nil {
			a.Set(AddState{Status: AddError, ErrorMessage: "Failed to store address"})
			return
		}
		address := *current.Address

		a.Set(AddState{Status: AddStoring, Address: &address})
		if res := a.api.StoreAddress(ctx, address); !res.OK() {
			a.Set(AddState{Status: AddError, Address: &address, ErrorMessage: "Failed to store address"})
			return
		}
		a.Set(AddState{Status: AddSuccess, Address: &address})
		a.Emit(AddEvent{Kind: NavigateToAddressList})
	})
}
