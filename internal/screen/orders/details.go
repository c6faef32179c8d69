package orders

import (
	"context"

	"foodhub/internal/domain"
	"foodhub/internal/state"
)

// Stage is the progress picture shown for an order.
type Stage int

const (
	StagePending Stage = iota
	StagePreparing
	StageOnTheWay
	StageDelivered
)

func (s Stage) String() string {
	switch s {
	case StagePreparing:
		return "Preparing"
	case StageOnTheWay:
		return "On the way"
	case StageDelivered:
		return "Delivered"
	default:
		return "Pending"
	}
}

func StageOf(order domain.Order) Stage {
	switch order.Status {
	case "Delivered":
		return StageDelivered
	case "Preparing":
		return StagePreparing
	case "On the way":
		return StageOnTheWay
	default:
		return StagePending
	}
}

type DetailsStatus int

const (
	DetailsLoading DetailsStatus = iota
	DetailsSuccess
	DetailsError
)

type DetailsState struct {
	Status       DetailsStatus
	Order        domain.Order
	Stage        Stage
	ErrorMessage string
}

type DetailsEventKind int

const (
	DetailsNavigateBack DetailsEventKind = iota + 1
)

type DetailsEvent struct {
	Kind DetailsEventKind
}

type Details struct {
	*state.Holder[DetailsState, DetailsEvent]
	api API
}

// NewDetails opens the detail screen and fetches orderID.
func NewDetails(client API, orderID string) *Details {
	d := &Details{
		Holder: state.NewHolder[DetailsState, DetailsEvent](DetailsState{Status: DetailsLoading}),
		api:    client,
	}
	d.Load(orderID)
	return d
}

func (d *Details) Load(orderID string) {
	d.Launch(func(ctx context.Context) {
		d.Set(DetailsState{Status: DetailsLoading})
		res := d.api.OrderDetails(ctx, orderID)
		if res.OK() {
			d.Set(DetailsState{Status: DetailsSuccess, Order: res.Data, Stage: StageOf(res.Data)})
			return
		}
		d.Set(DetailsState{Status: DetailsError, ErrorMessage: res.Describe()})
	})
}

func (d *Details) Back() {
	d.Launch(func(ctx context.Context) {
		d.Emit(DetailsEvent{Kind: DetailsNavigateBack})
	})
}
