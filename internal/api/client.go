package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"foodhub/internal/domain"
	"foodhub/internal/logging"
	"foodhub/internal/session"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TokenSource supplies the bearer token; session stores satisfy it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Client struct {
	baseURL string
	http    HTTPClient
	tokens  TokenSource
	log     *logrus.Entry
}

func NewClient(baseURL string, httpClient HTTPClient, tokens TokenSource) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
		log:     logging.New("api"),
	}
}

func call[T any](ctx context.Context, c *Client, endpoint, method, path string, query url.Values, payload any) Result[T] {
	req, err := c.newRequest(ctx, method, path, query, payload)
	if err != nil {
		return Exception[T](fmt.Errorf("%s: %w", endpoint, err))
	}

	c.log.WithFields(logrus.Fields{
		"endpoint":   endpoint,
		"method":     method,
		"path":       req.URL.Path,
		"request_id": req.Header.Get("X-Request-ID"),
	}).Debug("calling api")

	res := Do[T](ctx, c.http, endpoint, req)
	if !res.OK() {
		c.log.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"outcome":  res.Outcome.String(),
			"code":     res.Code,
		}).Warn(res.Describe())
	}
	return res
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, payload any) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	var (
		req *http.Request
		err error
	)
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, target, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, target, nil)
	}
	if err != nil {
		return nil, err
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		switch {
		case err == nil && token != "":
			req.Header.Set("Authorization", "Bearer "+token)
		case err != nil && !errors.Is(err, session.ErrNoToken):
			c.log.WithError(err).Warn("reading session token")
		}
	}
	return req, nil
}

func (c *Client) Categories(ctx context.Context) Result[domain.CategoriesResponse] {
	return call[domain.CategoriesResponse](ctx, c, "categories.list", http.MethodGet, "/categories", nil, nil)
}

func (c *Client) Restaurants(ctx context.Context, lat, lon float64) Result[domain.RestaurantResponse] {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return call[domain.RestaurantResponse](ctx, c, "restaurants.list", http.MethodGet, "/restaurants", query, nil)
}

func (c *Client) SignUp(ctx context.Context, req domain.SignUpRequest) Result[domain.AuthResponse] {
	return call[domain.AuthResponse](ctx, c, "auth.signup", http.MethodPost, "/auth/signup", nil, req)
}

func (c *Client) SignIn(ctx context.Context, req domain.SignInRequest) Result[domain.AuthResponse] {
	return call[domain.AuthResponse](ctx, c, "auth.login", http.MethodPost, "/auth/login", nil, req)
}

func (c *Client) OAuth(ctx context.Context, req domain.OAuthRequest) Result[domain.AuthResponse] {
	return call[domain.AuthResponse](ctx, c, "auth.oauth", http.MethodPost, "/auth/oauth", nil, req)
}

func (c *Client) RestaurantMenu(ctx context.Context, restaurantID string) Result[domain.FoodItemResponse] {
	path := "/restaurants/" + url.PathEscape(restaurantID) + "/menu"
	return call[domain.FoodItemResponse](ctx, c, "restaurants.menu", http.MethodGet, path, nil, nil)
}

func (c *Client) AddToCart(ctx context.Context, req domain.AddToCartRequest) Result[domain.AddToCartResponse] {
	return call[domain.AddToCartResponse](ctx, c, "cart.add", http.MethodPost, "/cart", nil, req)
}

func (c *Client) Cart(ctx context.Context) Result[domain.CartResponse] {
	return call[domain.CartResponse](ctx, c, "cart.get", http.MethodGet, "/cart", nil, nil)
}

func (c *Client) UpdateCartItem(ctx context.Context, req domain.UpdateCartItemRequest) Result[domain.GenericMsgResponse] {
	return call[domain.GenericMsgResponse](ctx, c, "cart.update", http.MethodPatch, "/cart", nil, req)
}

func (c *Client) DeleteCartItem(ctx context.Context, cartItemID string) Result[domain.GenericMsgResponse] {
	path := "/cart/" + url.PathEscape(cartItemID)
	return call[domain.GenericMsgResponse](ctx, c, "cart.delete", http.MethodDelete, path, nil, nil)
}

func (c *Client) Addresses(ctx context.Context) Result[domain.AddressListResponse] {
	return call[domain.AddressListResponse](ctx, c, "addresses.list", http.MethodGet, "/addresses", nil, nil)
}

func (c *Client) ReverseGeocode(ctx context.Context, req domain.ReverseGeoCodeRequest) Result[domain.Address] {
	return call[domain.Address](ctx, c, "addresses.reverse_geocode", http.MethodPost, "/addresses/reverse-geocode", nil, req)
}

func (c *Client) StoreAddress(ctx context.Context, address domain.Address) Result[domain.GenericMsgResponse] {
	return call[domain.GenericMsgResponse](ctx, c, "addresses.store", http.MethodPost, "/addresses", nil, address)
}

func (c *Client) CreatePaymentIntent(ctx context.Context, req domain.PaymentIntentRequest) Result[domain.PaymentIntentResponse] {
	return call[domain.PaymentIntentResponse](ctx, c, "payments.create_intent", http.MethodPost, "/payments/create-intent", nil, req)
}

func (c *Client) ConfirmPayment(ctx context.Context, paymentIntentID string, req domain.ConfirmPaymentRequest) Result[domain.ConfirmPaymentResponse] {
	path := "/payments/confirm/" + url.PathEscape(paymentIntentID)
	return call[domain.ConfirmPaymentResponse](ctx, c, "payments.confirm", http.MethodPost, path, nil, req)
}

func (c *Client) Orders(ctx context.Context) Result[domain.OrderListResponse] {
	return call[domain.OrderListResponse](ctx, c, "orders.list", http.MethodGet, "/orders", nil, nil)
}

func (c *Client) OrderDetails(ctx context.Context, orderID string) Result[domain.Order] {
	path := "/orders/" + url.PathEscape(orderID)
	return call[domain.Order](ctx, c, "orders.get", http.MethodGet, path, nil, nil)
}

func (c *Client) Notifications(ctx context.Context) Result[domain.NotificationListResponse] {
	return call[domain.NotificationListResponse](ctx, c, "notifications.list", http.MethodGet, "/notifications", nil, nil)
}

func (c *Client) ReadNotification(ctx context.Context, notificationID string) Result[domain.GenericMsgResponse] {
	path := "/notifications/" + url.PathEscape(notificationID) + "/read"
	return call[domain.GenericMsgResponse](ctx, c, "notifications.read", http.MethodPost, path, nil, nil)
}

func (c *Client) UpdatePushToken(ctx context.Context, req domain.PushTokenRequest) Result[domain.PushTokenResponse] {
	return call[domain.PushTokenResponse](ctx, c, "notifications.push_token", http.MethodPost, "/notifications/device-token", nil, req)
}
