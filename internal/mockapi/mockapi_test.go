package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"foodhub/internal/domain"
	"foodhub/internal/metrics"
	"foodhub/internal/push"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu   sync.Mutex
	sent []push.Message
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, userID string, msg push.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, msg)
	p.keys = append(p.keys, userID)
	return nil
}

func setupRouter(t *testing.T) (*mux.Router, *Store, *recordingPublisher) {
	t.Helper()
	store := NewStore()
	publisher := &recordingPublisher{}
	r := mux.NewRouter()
	NewHandler(store, publisher, nil).RegisterRoutes(r)
	return r, store, publisher
}

func serve(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestTotals(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.CartItem
		want  domain.CheckoutDetails
	}{
		{
			name: "empty cart has no fee",
			want: domain.CheckoutDetails{SubTotal: decimal.Zero, Tax: decimal.Zero, DeliveryFee: decimal.Zero, TotalAmount: decimal.Zero},
		},
		{
			name: "tax rounds to cents",
			items: []domain.CartItem{
				{MenuItem: domain.FoodItem{Price: decimal.RequireFromString("9.99")}, Quantity: 2},
				{MenuItem: domain.FoodItem{Price: decimal.RequireFromString("4.25")}, Quantity: 1},
			},
			want: domain.CheckoutDetails{
				SubTotal:    decimal.RequireFromString("24.23"),
				Tax:         decimal.RequireFromString("2.42"),
				DeliveryFee: decimal.RequireFromString("2.99"),
				TotalAmount: decimal.RequireFromString("29.64"),
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := Totals(testCase.items)
			assert.True(t, testCase.want.SubTotal.Equal(got.SubTotal), "subtotal %s", got.SubTotal)
			assert.True(t, testCase.want.Tax.Equal(got.Tax), "tax %s", got.Tax)
			assert.True(t, testCase.want.DeliveryFee.Equal(got.DeliveryFee), "fee %s", got.DeliveryFee)
			assert.True(t, testCase.want.TotalAmount.Equal(got.TotalAmount), "total %s", got.TotalAmount)
		})
	}
}

func TestStore_AddToCartMergesLines(t *testing.T) {
	store := NewStore()
	req := domain.AddToCartRequest{RestaurantID: "rest-luigi", MenuItemID: "item-margherita", Quantity: 2}

	first, err := store.AddToCart("u1", req)
	require.NoError(t, err)
	second, err := store.AddToCart("u1", req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 4, second.Quantity)
	assert.Len(t, store.Cart("u1").Items, 1)

	req.Quantity = 2
	_, err = store.AddToCart("u1", req)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestStore_Restaurants_SortedByDistance(t *testing.T) {
	list := NewStore().Restaurants(40.7291, -73.9860)
	require.Len(t, list, 3)
	assert.Equal(t, "rest-kaito", list[0].ID)
	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, list[i-1].Distance, list[i].Distance)
	}
}

func TestReverseGeocode(t *testing.T) {
	address, err := ReverseGeocode(40.7128, -74.0060)
	require.NoError(t, err)
	assert.NotEmpty(t, address.AddressLine1)
	assert.Len(t, address.ZipCode, 5)

	_, err = ReverseGeocode(91, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHandler_Auth(t *testing.T) {
	r, _, _ := setupRouter(t)

	tests := []struct {
		name       string
		path       string
		body       any
		wantStatus int
	}{
		{name: "sign up", path: "/auth/signup", body: domain.SignUpRequest{Name: "Ann", Email: "ann@example.com", Password: "pw"}, wantStatus: http.StatusOK},
		{name: "duplicate sign up", path: "/auth/signup", body: domain.SignUpRequest{Name: "Ann", Email: "ann@example.com", Password: "pw"}, wantStatus: http.StatusBadRequest},
		{name: "sign in", path: "/auth/login", body: domain.SignInRequest{Email: "ann@example.com", Password: "pw"}, wantStatus: http.StatusOK},
		{name: "wrong password", path: "/auth/login", body: domain.SignInRequest{Email: "ann@example.com", Password: "nope"}, wantStatus: http.StatusBadRequest},
		{name: "oauth", path: "/auth/oauth", body: domain.OAuthRequest{Token: "g-token", Provider: "google"}, wantStatus: http.StatusOK},
		{name: "oauth empty token", path: "/auth/oauth", body: domain.OAuthRequest{Provider: "facebook"}, wantStatus: http.StatusUnauthorized},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			rr := serve(t, r, http.MethodPost, testCase.path, "", testCase.body)
			assert.Equal(t, testCase.wantStatus, rr.Code, rr.Body.String())
			if testCase.wantStatus == http.StatusOK {
				var res domain.AuthResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
				assert.NotEmpty(t, res.Token)
			}
		})
	}
}

func TestHandler_RequiresBearer(t *testing.T) {
	r, _, _ := setupRouter(t)

	rr := serve(t, r, http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = serve(t, r, http.MethodGet, "/cart", "unknown", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, rr.Body.String())
}

func TestHandler_MenuNotFound(t *testing.T) {
	r, _, _ := setupRouter(t)
	rr := serve(t, r, http.MethodGet, "/restaurants/missing/menu", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Restaurant not found"}`, rr.Body.String())
}

func TestHandler_RestaurantsNeedCoordinates(t *testing.T) {
	r, _, _ := setupRouter(t)
	rr := serve(t, r, http.MethodGet, "/restaurants?lat=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(t, r, http.MethodGet, "/restaurants?lat=40.7128&lon=-74.006", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandler_CheckoutFlow(t *testing.T) {
	r, store, publisher := setupRouter(t)
	const token = "abc123"
	store.SetToken("ann@example.com", token)

	rr := serve(t, r, http.MethodPost, "/cart", token, domain.AddToCartRequest{RestaurantID: "rest-stack", MenuItemID: "item-fries", Quantity: 3})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = serve(t, r, http.MethodPost, "/addresses", token, domain.Address{AddressLine1: "1 Main St", ZipCode: "10001"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = serve(t, r, http.MethodGet, "/addresses", token, nil)
	var addresses domain.AddressListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &addresses))
	require.Len(t, addresses.Addresses, 1)
	addressID := addresses.Addresses[0].ID

	rr = serve(t, r, http.MethodPost, "/payments/create-intent", token, domain.PaymentIntentRequest{AddressID: addressID})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var intent domain.PaymentIntentResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &intent))

	rr = serve(t, r, http.MethodPost, "/payments/confirm/"+intent.PaymentIntentID, token,
		domain.ConfirmPaymentRequest{PaymentIntentID: intent.PaymentIntentID, AddressID: addressID})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var confirmed domain.ConfirmPaymentResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &confirmed))
	assert.Equal(t, OrderPendingAcceptance, confirmed.OrderStatus)

	rr = serve(t, r, http.MethodGet, "/cart", token, nil)
	var cart domain.CartResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cart))
	assert.Empty(t, cart.Items)

	rr = serve(t, r, http.MethodPatch, "/orders/"+confirmed.OrderID+"/status", "", map[string]string{"status": "PREPARING"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	require.Len(t, publisher.sent, 2)
	ann := userFor(t, store, token)
	assert.Equal(t, []string{ann, ann}, publisher.keys)
	assert.Equal(t, push.TypeOrder, publisher.sent[1].Type)
	assert.Equal(t, confirmed.OrderID, publisher.sent[1].OrderID)

	rr = serve(t, r, http.MethodGet, "/notifications", token, nil)
	var notifications domain.NotificationListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &notifications))
	assert.Equal(t, 2, notifications.UnreadCount)

	rr = serve(t, r, http.MethodPost, "/notifications/"+notifications.Notifications[0].ID+"/read", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, store.Notifications(userFor(t, store, token)).UnreadCount)
}

func TestHandler_EmptyCartCannotCheckout(t *testing.T) {
	r, store, _ := setupRouter(t)
	store.SetToken("bob@example.com", "bob")
	rr := serve(t, r, http.MethodPost, "/addresses", "bob", domain.Address{AddressLine1: "1 Main St", ZipCode: "10001"})
	require.Equal(t, http.StatusCreated, rr.Code)
	addressID := store.Addresses(userFor(t, store, "bob"))[0].ID

	rr = serve(t, r, http.MethodPost, "/payments/create-intent", "bob", domain.PaymentIntentRequest{AddressID: addressID})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"cart is empty"}`, rr.Body.String())
}

func TestHandler_RegisterDevice(t *testing.T) {
	r, store, _ := setupRouter(t)
	store.SetToken("ann@example.com", "ann")
	ann := userFor(t, store, "ann")

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{name: "new device", token: "pixel-7", wantStatus: http.StatusOK},
		{name: "same device again", token: "pixel-7", wantStatus: http.StatusOK},
		{name: "empty token", token: "", wantStatus: http.StatusBadRequest},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			rr := serve(t, r, http.MethodPost, "/notifications/device-token", "ann", domain.PushTokenRequest{Token: testCase.token})
			require.Equal(t, testCase.wantStatus, rr.Code, rr.Body.String())
			if testCase.wantStatus != http.StatusOK {
				return
			}
			var res domain.PushTokenResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
			assert.Equal(t, ann, res.UserID)
		})
	}
	assert.Equal(t, []string{"pixel-7"}, store.Devices(ann))

	rr := serve(t, r, http.MethodPost, "/notifications/device-token", "", domain.PushTokenRequest{Token: "x"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func userFor(t *testing.T, s *Store, token string) string {
	t.Helper()
	id, err := s.UserForToken(token)
	require.NoError(t, err)
	return id
}

func TestRouter_ExposesRequestMetrics(t *testing.T) {
	router := NewRouter(NewHandler(NewStore(), nil, metrics.Handler()))

	for i := 0; i < 3; i++ {
		rr := serve(t, router, http.MethodGet, "/categories", "", nil)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := serve(t, router, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `foodhub_mockapi_requests_total{code="200",method="get"}`)
}
