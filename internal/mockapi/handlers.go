package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"foodhub/internal/domain"
	"foodhub/internal/logging"
	"foodhub/internal/push"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

type Handler struct {
	Store     *Store
	Publisher Publisher
	Metrics   http.Handler
	log       *logrus.Entry
}

// NewHandler wires the store. publisher and metrics may be nil.
func NewHandler(store *Store, publisher Publisher, metrics http.Handler) *Handler {
	return &Handler{Store: store, Publisher: publisher, Metrics: metrics, log: logging.New("mockapi")}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics).Methods("GET")
	}

	r.HandleFunc("/auth/signup", h.signUp).Methods("POST")
	r.HandleFunc("/auth/login", h.signIn).Methods("POST")
	r.HandleFunc("/auth/oauth", h.oauth).Methods("POST")

	r.HandleFunc("/categories", h.getCategories).Methods("GET")
	r.HandleFunc("/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/restaurants/{id}/menu", h.getMenu).Methods("GET")

	authed := r.NewRoute().Subrouter()
	authed.Use(h.requireUser)
	authed.HandleFunc("/cart", h.addToCart).Methods("POST")
	authed.HandleFunc("/cart", h.getCart).Methods("GET")
	authed.HandleFunc("/cart", h.updateCart).Methods("PATCH")
	authed.HandleFunc("/cart/{id}", h.deleteCartItem).Methods("DELETE")
	authed.HandleFunc("/addresses", h.getAddresses).Methods("GET")
	authed.HandleFunc("/addresses/reverse-geocode", h.reverseGeocode).Methods("POST")
	authed.HandleFunc("/addresses", h.storeAddress).Methods("POST")
	authed.HandleFunc("/payments/create-intent", h.createPaymentIntent).Methods("POST")
	authed.HandleFunc("/payments/confirm/{id}", h.confirmPayment).Methods("POST")
	authed.HandleFunc("/orders", h.getOrders).Methods("GET")
	authed.HandleFunc("/orders/{id}", h.getOrder).Methods("GET")
	authed.HandleFunc("/notifications", h.getNotifications).Methods("GET")
	authed.HandleFunc("/notifications/device-token", h.registerDevice).Methods("POST")
	authed.HandleFunc("/notifications/{id}/read", h.readNotification).Methods("POST")

	// restaurant-side action, no user token
	r.HandleFunc("/orders/{id}/status", h.setOrderStatus).Methods("PATCH")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrInvalidQuantity), errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrEmptyCart):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.WithError(err).Error("request failed")
	}
	writeError(w, status, err.Error())
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		userID, err := h.Store.UserForToken(token)
		if err != nil {
			h.fail(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, userID)))
	})
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "foodhub-mockapi",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req domain.SignUpRequest
	if !decode(w, r, &req) {
		return
	}
	token, err := h.Store.SignUp(req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.AuthResponse{Token: token})
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req domain.SignInRequest
	if !decode(w, r, &req) {
		return
	}
	token, err := h.Store.SignIn(req.Email, req.Password)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.AuthResponse{Token: token})
}

func (h *Handler) oauth(w http.ResponseWriter, r *http.Request) {
	var req domain.OAuthRequest
	if !decode(w, r, &req) {
		return
	}
	token, err := h.Store.OAuth(req.Token, req.Provider)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.AuthResponse{Token: token})
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.CategoriesResponse{Data: h.Store.Categories()})
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if errLat != nil || errLon != nil {
		writeError(w, http.StatusBadRequest, "lat and lon are required")
		return
	}
	writeJSON(w, http.StatusOK, domain.RestaurantResponse{Data: h.Store.Restaurants(lat, lon)})
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.Menu(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, domain.FoodItemResponse{FoodItems: items})
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req domain.AddToCartRequest
	if !decode(w, r, &req) {
		return
	}
	line, err := h.Store.AddToCart(userID(r), req)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, line)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Cart(userID(r)))
}

func (h *Handler) updateCart(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateCartItemRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Store.UpdateCartItem(userID(r), req); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.GenericMsgResponse{Message: "Cart item updated"})
}

func (h *Handler) deleteCartItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteCartItem(userID(r), mux.Vars(r)["id"]); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.GenericMsgResponse{Message: "Cart item removed"})
}

func (h *Handler) getAddresses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.AddressListResponse{Addresses: h.Store.Addresses(userID(r))})
}

func (h *Handler) reverseGeocode(w http.ResponseWriter, r *http.Request) {
	var req domain.ReverseGeoCodeRequest
	if !decode(w, r, &req) {
		return
	}
	address, err := ReverseGeocode(req.Latitude, req.Longitude)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, address)
}

func (h *Handler) storeAddress(w http.ResponseWriter, r *http.Request) {
	var req domain.Address
	if !decode(w, r, &req) {
		return
	}
	if _, err := h.Store.StoreAddress(userID(r), req); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, domain.GenericMsgResponse{Message: "Address stored"})
}

func (h *Handler) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req domain.PaymentIntentRequest
	if !decode(w, r, &req) {
		return
	}
	intent, err := h.Store.CreatePaymentIntent(userID(r), req.AddressID)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, intent)
}

func (h *Handler) confirmPayment(w http.ResponseWriter, r *http.Request) {
	var req domain.ConfirmPaymentRequest
	if !decode(w, r, &req) {
		return
	}
	user := userID(r)
	res, order, err := h.Store.ConfirmPayment(user, mux.Vars(r)["id"], req)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.publish(r.Context(), user, push.Message{
		Type:    push.TypeOrder,
		OrderID: order.ID,
		Title:   "Order Placed",
		Body:    "Your order is waiting for the restaurant to accept it",
	})
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.OrderListResponse{Orders: h.Store.Orders(userID(r))})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Store.Order(userID(r), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) setOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decode(w, r, &req) {
		return
	}
	order, n, err := h.Store.SetOrderStatus(mux.Vars(r)["id"], req.Status)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.publish(r.Context(), order.UserID, push.Message{Type: push.TypeOrder, OrderID: order.ID, Title: n.Title, Body: n.Message})
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Notifications(userID(r)))
}

func (h *Handler) readNotification(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.ReadNotification(userID(r), mux.Vars(r)["id"]); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.GenericMsgResponse{Message: "Notification marked as read"})
}

func (h *Handler) registerDevice(w http.ResponseWriter, r *http.Request) {
	var req domain.PushTokenRequest
	if !decode(w, r, &req) {
		return
	}
	user := userID(r)
	if err := h.Store.RegisterDevice(user, req.Token); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.PushTokenResponse{UserID: user, Message: "Device registered"})
}

// publish is best effort: a broker outage never fails the request.
func (h *Handler) publish(ctx context.Context, userID string, msg push.Message) {
	if h.Publisher == nil {
		return
	}
	if err := h.Publisher.Publish(ctx, userID, msg); err != nil {
		h.log.WithError(err).WithField("order_id", msg.OrderID).Warn("publishing push message")
	}
}
