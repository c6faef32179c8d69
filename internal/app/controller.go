// Package app is the presentation controller: it decides the start
// destination, owns the live screens and moves values between them.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"foodhub/internal/api"
	"foodhub/internal/domain"
	"foodhub/internal/logging"
	"foodhub/internal/push"
	"foodhub/internal/screen/addresses"
	"foodhub/internal/screen/auth"
	"foodhub/internal/screen/cart"
	"foodhub/internal/screen/fooddetails"
	"foodhub/internal/screen/home"
	"foodhub/internal/screen/notifications"
	"foodhub/internal/screen/orders"
	"foodhub/internal/screen/ordersuccess"
	"foodhub/internal/screen/restaurant"
	"foodhub/internal/session"
	"foodhub/internal/state"

	"github.com/sirupsen/logrus"
)

type Route string

const (
	RouteAuth          Route = "auth"
	RouteSignIn        Route = "signin"
	RouteSignUp        Route = "signup"
	RouteHome          Route = "home"
	RouteRestaurant    Route = "restaurant"
	RouteFoodDetails   Route = "fooddetails"
	RouteCart          Route = "cart"
	RouteAddressList   Route = "addresses"
	RouteAddAddress    Route = "addaddress"
	RouteOrderSuccess  Route = "ordersuccess"
	RouteOrders        Route = "orders"
	RouteOrderDetails  Route = "orderdetails"
	RouteNotifications Route = "notifications"
)

type EventKind int

const (
	NavigateToOrderDetail EventKind = iota + 1
)

type Event struct {
	Kind    EventKind
	OrderID string
}

type screen interface {
	Close()
}

// Controller holds at most one screen per route.
type Controller struct {
	Session session.Store
	API     *api.Client
	Locator home.Locator
	QR      ordersuccess.QRGenerator

	SelectedAddress *Handoff[domain.Address]
	AddedToCart     *Handoff[bool]

	mu      sync.Mutex
	screens map[Route]screen
	events  *state.Events[Event]
	log     *logrus.Entry
}

func NewController(store session.Store, client *api.Client, locator home.Locator, qr ordersuccess.QRGenerator) *Controller {
	return &Controller{
		Session:         store,
		API:             client,
		Locator:         locator,
		QR:              qr,
		SelectedAddress: &Handoff[domain.Address]{},
		AddedToCart:     &Handoff[bool]{},
		screens:         map[Route]screen{},
		events:          state.NewEvents[Event](),
		log:             logging.New("app"),
	}
}

// Launch picks the start destination from the stored session. An unreadable
// session store counts as signed out.
func (c *Controller) Launch(ctx context.Context) Route {
	ok, err := session.HasSession(ctx, c.Session)
	if err != nil {
		c.log.WithError(err).Warn("reading session, starting signed out")
		return RouteAuth
	}
	if ok {
		return RouteHome
	}
	return RouteAuth
}

func (c *Controller) Subscribe(ctx context.Context, buffer int) <-chan Event {
	return c.events.Subscribe(ctx, buffer)
}

// HandleIntent consumes the order deep link carried by a tapped
// notification. The id is removed from extras so a redelivered intent does
// not navigate twice. With nobody subscribed the extras are left untouched
// and false is returned.
func (c *Controller) HandleIntent(ctx context.Context, extras map[string]string) bool {
	orderID := extras[push.ExtraOrderID]
	if orderID == "" || c.events.Subscribers() == 0 {
		return false
	}
	delete(extras, push.ExtraOrderID)
	if err := c.events.Emit(ctx, Event{Kind: NavigateToOrderDetail, OrderID: orderID}); err != nil {
		c.log.WithError(err).WithField("order_id", orderID).Warn("deep link dropped")
		return false
	}
	return true
}

func open[T screen](c *Controller, route Route, s T) T {
	c.mu.Lock()
	previous := c.screens[route]
	c.screens[route] = s
	c.mu.Unlock()

	if previous != nil {
		previous.Close()
	}
	c.log.WithField("route", route).Debug("screen opened")
	return s
}

func (c *Controller) OpenLanding() *auth.Landing {
	return open(c, RouteAuth, auth.NewLanding(c.API, c.Session))
}

func (c *Controller) OpenSignIn() *auth.SignIn {
	return open(c, RouteSignIn, auth.NewSignIn(c.API, c.Session))
}

func (c *Controller) OpenSignUp() *auth.SignUp {
	return open(c, RouteSignUp, auth.NewSignUp(c.API, c.Session))
}

func (c *Controller) OpenHome() *home.Screen {
	return open(c, RouteHome, home.New(c.API, c.Locator))
}

func (c *Controller) OpenRestaurant(id, name, imageURL string) *restaurant.Screen {
	return open(c, RouteRestaurant, restaurant.New(c.API, id, name, imageURL))
}

func (c *Controller) OpenFoodDetails(item domain.FoodItem) *fooddetails.Screen {
	return open(c, RouteFoodDetails, fooddetails.New(c.API, item, c.AddedToCart))
}

// OpenCart opens the cart and applies whatever the other screens handed off.
func (c *Controller) OpenCart() *cart.Screen {
	s := open(c, RouteCart, cart.New(c.API))
	c.Resume(s)
	return s
}

// Resume applies pending hand-offs to a cart that regains focus: a picked
// delivery address and the added-to-cart signal.
func (c *Controller) Resume(s *cart.Screen) {
	if address, ok := c.SelectedAddress.Take(); ok {
		s.SelectAddress(address)
	}
	if added, ok := c.AddedToCart.Take(); ok && added {
		s.Refresh()
	}
}

func (c *Controller) OpenAddressList() *addresses.List {
	return open(c, RouteAddressList, addresses.NewList(c.API, c.SelectedAddress))
}

func (c *Controller) OpenAddAddress() *addresses.Add {
	return open(c, RouteAddAddress, addresses.NewAdd(c.API, c.Locator))
}

func (c *Controller) OpenOrderSuccess(orderID string) *ordersuccess.Screen {
	return open(c, RouteOrderSuccess, ordersuccess.New(orderID, c.QR))
}

func (c *Controller) OpenOrders() *orders.List {
	return open(c, RouteOrders, orders.NewList(c.API))
}

func (c *Controller) OpenOrderDetails(orderID string) *orders.Details {
	return open(c, RouteOrderDetails, orders.NewDetails(c.API, orderID))
}

func (c *Controller) OpenNotifications() *notifications.Screen {
	return open(c, RouteNotifications, notifications.New(c.API))
}

// Close tears down the screen for route, cancelling its pending work.
func (c *Controller) Close(route Route) {
	c.mu.Lock()
	s := c.screens[route]
	delete(c.screens, route)
	c.mu.Unlock()

	if s != nil {
		s.Close()
	}
}

// IsOpen reports whether a screen is live for route.
func (c *Controller) IsOpen(route Route) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.screens[route]
	return ok
}

func (c *Controller) Shutdown() {
	c.mu.Lock()
	live := c.screens
	c.screens = map[Route]screen{}
	c.mu.Unlock()

	for _, s := range live {
		s.Close()
	}
}

// Logout forgets the token and closes every screen.
func (c *Controller) Logout(ctx context.Context) (Route, error) {
	c.Shutdown()
	if err := c.Session.Clear(ctx); err != nil && !errors.Is(err, session.ErrNoToken) {
		return RouteAuth, fmt.Errorf("logout: %w", err)
	}
	return RouteAuth, nil
}
