package mocks

import (
	"context"
	"testing"

	"foodhub/internal/api"
	"foodhub/internal/domain"

	"github.com/stretchr/testify/mock"
)

// FoodAPI is a mock of the REST client surface used by every screen.
type FoodAPI struct {
	mock.Mock
}

// NewFoodAPI registers AssertExpectations as a test cleanup.
func NewFoodAPI(t *testing.T) *FoodAPI {
	m := &FoodAPI{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *FoodAPI) Categories(ctx context.Context) api.Result[domain.CategoriesResponse] {
	ret := m.Called(ctx)
	return ret.Get(0).(api.Result[domain.CategoriesResponse])
}

func (m *FoodAPI) Restaurants(ctx context.Context, lat float64, lon float64) api.Result[domain.RestaurantResponse] {
	ret := m.Called(ctx, lat, lon)
	return ret.Get(0).(api.Result[domain.RestaurantResponse])
}

func (m *FoodAPI) SignUp(ctx context.Context, req domain.SignUpRequest) api.Result[domain.AuthResponse] {
	ret := m.Called(ctx, req)
	return ret.Get(0).(api.Result[domain.AuthResponse])
}

func (m *FoodAPI) SignIn(ctx context.Context, req domain.SignInRequest) api.Result[domain.AuthResponse] {
	ret := m.Called(ctx, req)
	return ret.Get(0).(api.Result[domain.AuthResponse])
}

func (m *FoodAPI) OAuth(ctx context.Context, req domain.OAuthRequest) api.Result[domain.AuthResponse] {
	ret := m.Called(ctx, req)
	return ret.Get(0).(api.Result[domain.AuthResponse])
}

func (m *FoodAPI) RestaurantMenu(ctx context.Context, restaurantID string) api.Result[domain.FoodItemResponse] {
	ret := m.Called(ctx, restaurantID)
	return ret.Get(0).(api.Result[domain.FoodItemResponse])
}

func (m *FoodAPI) AddToCart(ctx context.Context, req domain.AddToCartRequest) api.Result[domain.AddToCartResponse] {
	ret := m.Called(ctx, req)
	return ret.Get(0).(api.Result[domain.AddToCartResponse])
}

func (m *FoodAPI) Cart(ctx context.Context) api.Result[domain.CartResponse] {
	ret := m.Called(ctx)
	return ret.Get(0).(api.Result[domain.CartResponse])
}

func (m *FoodAPI) UpdateCartItem(ctx context.Context, req domain.UpdateCartItemRequest) api.Result[domain.GenericMsgResponse] {
	ret := m.Called(ctx, req)
	return ret.Get(0).(api.Result[domain.GenericMsgResponse])
}

func (m *FoodAPI) DeleteCartItem(ctx context.Context, cartItemID string) api.Result[domain.GenericMsgResponse] {
	ret := m.Called(ctx, cartItemID)
	return ret.Get(0).(api.Result[domain.GenericMsgResponse])
}

func (m *FoodAPI) Addresses(ctx context.Context) api.Result[domain.AddressListResponse] {
	ret := m.Called(ctx)
	return ret.Get(0).(api.Result[domain.AddressListResponse])
}

func (m *FoodAPI) ReverseGeocode(ctx context.Context, req domain.ReverseGeoCodeRequest) api.Result[domain.Address] {
	ret := m.Called(ctx, req)
	return ret.Get(0).(api.Result[domain.Address])
}

func (m *FoodAPI) StoreAddress(ctx context.Context, address domain.Address) api.Result[domain.GenericMsgResponse] {
	ret := m.Called(ctx, address)
	return ret.Get(0).(api.Result[domain.GenericMsgResponse])
}

func (m *FoodAPI) CreatePaymentIntent(ctx context.Context, req domain.PaymentIntentRequest) api.Result[domain.PaymentIntentResponse] {
	ret := m.Called(ctx, req)
	return ret.Get(0).(api.Result[domain.PaymentIntentResponse])
}

func (m *FoodAPI) ConfirmPayment(ctx context.Context, paymentIntentID string, req domain.ConfirmPaymentRequest) api.Result[domain.ConfirmPaymentResponse] {
	ret := m.Called(ctx, paymentIntentID, req)
	return ret.Get(0).(api.Result[domain.ConfirmPaymentResponse])
}

func (m *FoodAPI) Orders(ctx context.Context) api.Result[domain.OrderListResponse] {
	ret := m.Called(ctx)
	return ret.Get(0).(api.Result[domain.OrderListResponse])
}

func (m *FoodAPI) OrderDetails(ctx context.Context, orderID string) api.Result[domain.Order] {
	ret := m.Called(ctx, orderID)
	return ret.Get(0).(api.Result[domain.Order])
}

func (m *FoodAPI) Notifications(ctx context.Context) api.Result[domain.NotificationListResponse] {
	ret := m.Called(ctx)
	return ret.Get(0).(api.Result[domain.NotificationListResponse])
}

func (m *FoodAPI) ReadNotification(ctx context.Context, notificationID string) api.Result[domain.GenericMsgResponse] {
	ret := m.Called(ctx, notificationID)
	return ret.Get(0).(api.Result[domain.GenericMsgResponse])
}

func (m *FoodAPI) UpdatePushToken(ctx context.Context, req domain.PushTokenRequest) api.Result[domain.PushTokenResponse] {
	ret := m.Called(ctx, req)
	return ret.Get(0).(api.Result[domain.PushTokenResponse])
}
