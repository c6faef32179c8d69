// Package cart manages the cart screen: quantities, removal, delivery
// address and the checkout/payment round trip.
package cart

import (
	"context"

	"foodhub/internal/api"
	"foodhub/internal/domain"
	"foodhub/internal/logging"
	"foodhub/internal/state"

	"github.com/sirupsen/logrus"
)

type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

type State struct {
	Status       Status
	Cart         domain.CartResponse
	ErrorMessage string
}

type EventKind int

const (
	ShowErrorDialog EventKind = iota + 1
	OrderSuccess
	OnInitiatePayment
	OnQuantityUpdateError
	OnItemRemovedError
	OnAddressClicked
)

type Event struct {
	Kind    EventKind
	Title   string
	Message string
	OrderID string
	Intent  domain.PaymentIntentResponse
}

type API interface {
	Cart(ctx context.Context) api.Result[domain.CartResponse]
	UpdateCartItem(ctx context.Context, req domain.UpdateCartItemRequest) api.Result[domain.GenericMsgResponse]
	DeleteCartItem(ctx context.Context, cartItemID string) api.Result[domain.GenericMsgResponse]
	CreatePaymentIntent(ctx context.Context, req domain.PaymentIntentRequest) api.Result[domain.PaymentIntentResponse]
	ConfirmPayment(ctx context.Context, paymentIntentID string, req domain.ConfirmPaymentRequest) api.Result[domain.ConfirmPaymentResponse]
}

type Screen struct {
	*state.Holder[State, Event]
	api API
	log *logrus.Entry

	itemCount *state.Value[int]
	address   *state.Value[*domain.Address]

	// only touched from scope tasks
	lastGood *domain.CartResponse
	intent   *domain.PaymentIntentResponse
}

// New opens the cart and fetches it.
func New(client API) *Screen {
	s := &Screen{
		Holder:    state.NewHolder[State, Event](State{Status: StatusLoading}),
		api:       client,
		log:       logging.New("cart"),
		itemCount: state.NewValue(0),
		address:   state.NewValue[*domain.Address](nil),
	}
	s.Refresh()
	return s
}

// ItemCount is the number of distinct line items of the last fetched cart.
func (s *Screen) ItemCount() int { return s.itemCount.Get() }

func (s *Screen) WatchItemCount(ctx context.Context) <-chan int { return s.itemCount.Watch(ctx) }

func (s *Screen) SelectedAddress() (domain.Address, bool) {
	if a := s.address.Get(); a != nil {
		return *a, true
	}
	return domain.Address{}, false
}

func (s *Screen) WatchSelectedAddress(ctx context.Context) <-chan *domain.Address {
	return s.address.Watch(ctx)
}

func (s *Screen) Refresh() {
	s.Launch(s.fetch)
}

func (s *Screen) fetch(ctx context.Context) {
	s.setStatus(StatusLoading)
	res := s.api.Cart(ctx)
	switch {
	case res.OK():
		cart := res.Data
		s.lastGood = &cart
		s.itemCount.Set(len(cart.Items))
		s.Set(State{Status: StatusSuccess, Cart: cart})
	case res.IsError():
		s.Set(State{Status: StatusError, ErrorMessage: res.Message})
	default:
		s.log.WithError(res.Err).Warn("fetching cart")
		s.Set(State{Status: StatusError, ErrorMessage: "Something went wrong"})
	}
}

func (s *Screen) setStatus(status Status) {
	s.Update(func(st State) State {
		st.Status = status
		return st
	})
}

// restore puts the last successfully fetched cart back on screen.
func (s *Screen) restore() {
	if s.lastGood == nil {
		s.Set(State{Status: StatusError, ErrorMessage: "Something went wrong"})
		return
	}
	s.Set(State{Status: StatusSuccess, Cart: *s.lastGood})
}

// Increment is a no-op at the maximum quantity.
func (s *Screen) Increment(item domain.CartItem) {
	if item.Quantity >= domain.MaxQuantity {
		return
	}
	s.updateQuantity(item, item.Quantity+1)
}

// Decrement is a no-op at the minimum quantity.
func (s *Screen) Decrement(item domain.CartItem) {
	if item.Quantity <= domain.MinQuantity {
		return
	}
	s.updateQuantity(item, item.Quantity-1)
}

func (s *Screen) updateQuantity(item domain.CartItem, quantity int) {
	s.Launch(func(ctx context.Context) {
		s.setStatus(StatusLoading)
		res := s.api.UpdateCartItem(ctx, domain.UpdateCartItemRequest{CartItemID: item.ID, Quantity: quantity})
		if res.OK() {
			s.fetch(ctx)
			return
		}
		s.restore()
		s.Emit(Event{
			Kind:    OnQuantityUpdateError,
			Title:   "Cannot Update Quantity",
			Message: "Something went wrong while updating quantity",
		})
	})
}

func (s *Screen) Remove(item domain.CartItem) {
	s.Launch(func(ctx context.Context) {
		s.setStatus(StatusLoading)
		res := s.api.DeleteCartItem(ctx, item.ID)
		if res.OK() {
			s.fetch(ctx)
			return
		}
		s.restore()
		s.Emit(Event{
			Kind:    OnItemRemovedError,
			Title:   "Cannot Remove Item",
			Message: "Something went wrong while removing item",
		})
	})
}

func (s *Screen) AddressClicked() {
	s.Launch(func(ctx context.Context) {
		s.Emit(Event{Kind: OnAddressClicked})
	})
}

func (s *Screen) SelectAddress(address domain.Address) {
	s.address.Set(&address)
}

// Checkout creates a payment intent for the selected address. Without an
// address nothing is sent.
func (s *Screen) Checkout() {
	s.Launch(func(ctx context.Context) {
		address, ok := s.SelectedAddress()
		if !ok || address.ID == "" {
			s.Emit(Event{Kind: ShowErrorDialog, Title: "No Address Selected", Message: "Please select a delivery address"})
			return
		}

		s.setStatus(StatusLoading)
		res := s.api.CreatePaymentIntent(ctx, domain.PaymentIntentRequest{AddressID: address.ID})
		if !res.OK() {
			s.restore()
			s.Emit(Event{Kind: ShowErrorDialog, Title: "Cannot Checkout", Message: "Something went wrong while checking out"})
			return
		}
		intent := res.Data
		s.intent = &intent
		s.restore()
		s.Emit(Event{Kind: OnInitiatePayment, Intent: intent})
	})
}

// PaymentSucceeded confirms the intent returned by Checkout and refetches
// the now empty cart.
func (s *Screen) PaymentSucceeded() {
	s.Launch(func(ctx context.Context) {
		address, ok := s.SelectedAddress()
		if s.intent == nil || !ok {
			s.paymentFailed()
			return
		}

		s.setStatus(StatusLoading)
		intentID := s.intent.PaymentIntentID
		res := s.api.ConfirmPayment(ctx, intentID, domain.ConfirmPaymentRequest{PaymentIntentID: intentID, AddressID: address.ID})
		if !res.OK() {
			s.restore()
			s.paymentFailed()
			return
		}
		s.intent = nil
		s.Emit(Event{Kind: OrderSuccess, OrderID: res.Data.OrderID})
		s.restore()
		s.fetch(ctx)
	})
}

func (s *Screen) PaymentFailed() {
	s.Launch(func(ctx context.Context) {
		s.paymentFailed()
	})
}

func (s *Screen) paymentFailed() {
	s.Emit(Event{Kind: ShowErrorDialog, Title: "Payment Failed", Message: "Something went wrong while processing payment"})
}
