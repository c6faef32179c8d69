package mockapi

import (
	"fmt"
	"math"

	"foodhub/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func validQuantity(q int) bool {
	return q >= domain.MinQuantity && q <= domain.MaxQuantity
}

// AddToCart adds a line, or grows the existing line for the same menu item.
func (s *Store) AddToCart(userID string, req domain.AddToCartRequest) (domain.AddToCartResponse, error) {
	if !validQuantity(req.Quantity) {
		return domain.AddToCartResponse{}, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.findItem(req.RestaurantID, req.MenuItemID)
	if !ok {
		return domain.AddToCartResponse{}, fmt.Errorf("menu item %s: %w", req.MenuItemID, ErrNotFound)
	}

	cart := s.carts[userID]
	for i := range cart {
		if cart[i].MenuItem.ID != item.ID {
			continue
		}
		if !validQuantity(cart[i].Quantity + req.Quantity) {
			return domain.AddToCartResponse{}, ErrInvalidQuantity
		}
		cart[i].Quantity += req.Quantity
		return addResponse(cart[i]), nil
	}

	line := domain.CartItem{
		ID:           uuid.NewString(),
		MenuItem:     item,
		Quantity:     req.Quantity,
		RestaurantID: req.RestaurantID,
		UserID:       userID,
		AddedAt:      s.timestamp(),
	}
	s.carts[userID] = append(cart, line)
	return addResponse(line), nil
}

func addResponse(line domain.CartItem) domain.AddToCartResponse {
	return domain.AddToCartResponse{
		ID:           line.ID,
		MenuItemID:   line.MenuItem.ID,
		Quantity:     line.Quantity,
		RestaurantID: line.RestaurantID,
		UserID:       line.UserID,
		AddedAt:      line.AddedAt,
	}
}

// Totals: tax is 10% of the subtotal rounded to cents, the delivery fee
// applies to non-empty carts only.
func Totals(items []domain.CartItem) domain.CheckoutDetails {
	subTotal := decimal.Zero
	for _, item := range items {
		subTotal = subTotal.Add(item.LineTotal())
	}
	tax := subTotal.Mul(taxRate).Round(2)
	fee := decimal.Zero
	if len(items) > 0 {
		fee = deliveryFee
	}
	return domain.CheckoutDetails{
		SubTotal:    subTotal,
		Tax:         tax,
		DeliveryFee: fee,
		TotalAmount: subTotal.Add(tax).Add(fee),
	}
}

func (s *Store) Cart(userID string) domain.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := append([]domain.CartItem{}, s.carts[userID]...)
	return domain.CartResponse{Items: items, CheckoutDetails: Totals(items)}
}

func (s *Store) UpdateCartItem(userID string, req domain.UpdateCartItemRequest) error {
	if !validQuantity(req.Quantity) {
		return ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, line := range s.carts[userID] {
		if line.ID == req.CartItemID {
			s.carts[userID][i].Quantity = req.Quantity
			return nil
		}
	}
	return fmt.Errorf("cart item %s: %w", req.CartItemID, ErrNotFound)
}

func (s *Store) DeleteCartItem(userID, cartItemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.carts[userID]
	for i, line := range cart {
		if line.ID == cartItemID {
			s.carts[userID] = append(cart[:i:i], cart[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("cart item %s: %w", cartItemID, ErrNotFound)
}

func (s *Store) Addresses(userID string) []domain.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Address{}, s.addresses[userID]...)
}

func (s *Store) StoreAddress(userID string, address domain.Address) (domain.Address, error) {
	if address.AddressLine1 == "" || address.ZipCode == "" {
		return domain.Address{}, ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	address.ID = uuid.NewString()
	address.UserID = userID
	s.addresses[userID] = append(s.addresses[userID], address)
	return address, nil
}

// ReverseGeocode fabricates a street address for a valid coordinate.
func ReverseGeocode(lat, lon float64) (domain.Address, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return domain.Address{}, ErrInvalidInput
	}
	return domain.Address{
		AddressLine1: fmt.Sprintf("%d Broadway", 1+int(math.Abs(lat)*1000)%900),
		City:         "New York",
		State:        "NY",
		ZipCode:      fmt.Sprintf("10%03d", int(math.Abs(lon)*1000)%1000),
		Country:      "US",
		Latitude:     lat,
		Longitude:    lon,
	}, nil
}

func (s *Store) findAddress(userID, addressID string) (domain.Address, bool) {
	for _, address := range s.addresses[userID] {
		if address.ID == addressID {
			return address, true
		}
	}
	return domain.Address{}, false
}

func (s *Store) CreatePaymentIntent(userID, addressID string) (domain.PaymentIntentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findAddress(userID, addressID); !ok {
		return domain.PaymentIntentResponse{}, fmt.Errorf("address %s: %w", addressID, ErrNotFound)
	}
	cart := s.carts[userID]
	if len(cart) == 0 {
		return domain.PaymentIntentResponse{}, ErrEmptyCart
	}

	intent := paymentIntent{
		ID:        "pi_" + uuid.NewString(),
		UserID:    userID,
		AddressID: addressID,
		Amount:    Totals(cart).TotalAmount,
	}
	s.intents[intent.ID] = intent
	return domain.PaymentIntentResponse{
		PaymentIntentID:    intent.ID,
		ClientSecret:       intent.ID + "_secret",
		CustomerID:         "cus_" + userID,
		EphemeralKeySecret: "ek_" + uuid.NewString(),
		PublishableKey:     "pk_test_foodhub",
		Amount:             intent.Amount,
		Currency:           "usd",
		Status:             "requires_payment_method",
	}, nil
}

// ConfirmPayment turns the cart into an order and records an order notification.
func (s *Store) ConfirmPayment(userID, intentID string, req domain.ConfirmPaymentRequest) (domain.ConfirmPaymentResponse, domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent, ok := s.intents[intentID]
	if !ok || intent.UserID != userID {
		return domain.ConfirmPaymentResponse{}, domain.Order{}, fmt.Errorf("payment intent %s: %w", intentID, ErrNotFound)
	}
	addressID := req.AddressID
	if addressID == "" {
		addressID = intent.AddressID
	}
	address, ok := s.findAddress(userID, addressID)
	if !ok {
		return domain.ConfirmPaymentResponse{}, domain.Order{}, fmt.Errorf("address %s: %w", addressID, ErrNotFound)
	}
	cart := s.carts[userID]
	if len(cart) == 0 {
		return domain.ConfirmPaymentResponse{}, domain.Order{}, ErrEmptyCart
	}

	now := s.timestamp()
	order := domain.Order{
		ID:                    uuid.NewString(),
		UserID:                userID,
		RestaurantID:          cart[0].RestaurantID,
		Address:               address,
		Status:                OrderPendingAcceptance,
		PaymentStatus:         PaymentSucceeded,
		StripePaymentIntentID: intentID,
		TotalAmount:           Totals(cart).TotalAmount,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	for _, restaurant := range s.restaurants {
		if restaurant.ID == order.RestaurantID {
			order.Restaurant = restaurant
		}
	}
	for _, line := range cart {
		order.Items = append(order.Items, domain.OrderItem{
			ID:           uuid.NewString(),
			MenuItemID:   line.MenuItem.ID,
			MenuItemName: line.MenuItem.Name,
			OrderID:      order.ID,
			Quantity:     line.Quantity,
		})
	}

	s.orders[userID] = append(s.orders[userID], order)
	s.carts[userID] = nil
	delete(s.intents, intentID)
	s.notify(userID, order.ID, "Order Placed", "Your order is waiting for the restaurant to accept it")

	return domain.ConfirmPaymentResponse{
		Status:      PaymentSucceeded,
		OrderID:     order.ID,
		OrderStatus: order.Status,
		Message:     "Payment successful",
	}, order, nil
}

// notify must be called with mu held.
func (s *Store) notify(userID, orderID, title, message string) domain.Notification {
	n := domain.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      "order",
		OrderID:   orderID,
		CreatedAt: s.timestamp(),
	}
	s.notifications[userID] = append(s.notifications[userID], n)
	return n
}

func (s *Store) Orders(userID string) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Order{}, s.orders[userID]...)
}

func (s *Store) Order(userID, orderID string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders[userID] {
		if order.ID == orderID {
			return order, nil
		}
	}
	return domain.Order{}, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
}

// SetOrderStatus moves an order along and notifies its owner.
func (s *Store) SetOrderStatus(orderID, status string) (domain.Order, domain.Notification, error) {
	if status == "" {
		return domain.Order{}, domain.Notification{}, ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, orders := range s.orders {
		for i := range orders {
			if orders[i].ID != orderID {
				continue
			}
			orders[i].Status = status
			orders[i].UpdatedAt = s.timestamp()
			n := s.notify(userID, orderID, "Order Update", "Your order is now "+status)
			return orders[i], n, nil
		}
	}
	return domain.Order{}, domain.Notification{}, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
}

func (s *Store) Notifications(userID string) domain.NotificationListResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := append([]domain.Notification{}, s.notifications[userID]...)
	unread := 0
	for _, n := range list {
		if !n.IsRead {
			unread++
		}
	}
	return domain.NotificationListResponse{Notifications: list, UnreadCount: unread}
}

func (s *Store) ReadNotification(userID, notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifications[userID] {
		if n.ID == notificationID {
			s.notifications[userID][i].IsRead = true
			return nil
		}
	}
	return fmt.Errorf("notification %s: %w", notificationID, ErrNotFound)
}

// RegisterDevice records the push token of one of userID's devices.
func (s *Store) RegisterDevice(userID, token string) error {
	if token == "" {
		return ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, known := range s.devices[userID] {
		if known == token {
			return nil
		}
	}
	s.devices[userID] = append(s.devices[userID], token)
	return nil
}

func (s *Store) Devices(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.devices[userID]...)
}
