// Package mockapi is an in-memory development backend serving the REST
// surface the client talks to.
package mockapi

import (
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"foodhub/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidQuantity    = errors.New("quantity must be between 1 and 5")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmptyCart          = errors.New("cart is empty")
)

// Order statuses.
const (
	OrderPendingAcceptance = "PENDING_ACCEPTANCE"
	PaymentSucceeded       = "succeeded"
)

var (
	taxRate     = decimal.RequireFromString("0.10")
	deliveryFee = decimal.RequireFromString("2.99")
)

type user struct {
	ID       string
	Name     string
	Email    string
	Password string
}

type paymentIntent struct {
	ID        string
	UserID    string
	AddressID string
	Amount    decimal.Decimal
}

type Store struct {
	mu sync.Mutex

	users  map[string]*user
	tokens map[string]string

	categories  []domain.Category
	restaurants []domain.Restaurant
	menus       map[string][]domain.FoodItem

	carts         map[string][]domain.CartItem
	addresses     map[string][]domain.Address
	intents       map[string]paymentIntent
	orders        map[string][]domain.Order
	notifications map[string][]domain.Notification
	devices       map[string][]string

	now func() time.Time
}

// NewStore returns a store seeded with a small catalogue around New York.
func NewStore() *Store {
	s := &Store{
		users:         map[string]*user{},
		tokens:        map[string]string{},
		menus:         map[string][]domain.FoodItem{},
		carts:         map[string][]domain.CartItem{},
		addresses:     map[string][]domain.Address{},
		intents:       map[string]paymentIntent{},
		orders:        map[string][]domain.Order{},
		notifications: map[string][]domain.Notification{},
		devices:       map[string][]string{},
		now:           time.Now,
	}
	s.seed()
	return s
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func (s *Store) seed() {
	s.categories = []domain.Category{
		{ID: "cat-pizza", Name: "Pizza", ImageURL: "https://cdn.foodhub.dev/categories/pizza.png"},
		{ID: "cat-burger", Name: "Burgers", ImageURL: "https://cdn.foodhub.dev/categories/burger.png"},
		{ID: "cat-sushi", Name: "Sushi", ImageURL: "https://cdn.foodhub.dev/categories/sushi.png"},
	}

	created := s.timestamp()
	s.restaurants = []domain.Restaurant{
		{ID: "rest-luigi", Name: "Luigi's Slice", Address: "12 Mulberry St, New York", CategoryID: "cat-pizza", OwnerID: "owner-1", Latitude: 40.7196, Longitude: -73.9970, CreatedAt: created},
		{ID: "rest-stack", Name: "Stack House", Address: "88 W 3rd St, New York", CategoryID: "cat-burger", OwnerID: "owner-2", Latitude: 40.7300, Longitude: -73.9990, CreatedAt: created},
		{ID: "rest-kaito", Name: "Kaito Sushi", Address: "301 E 9th St, New York", CategoryID: "cat-sushi", OwnerID: "owner-3", Latitude: 40.7291, Longitude: -73.9860, CreatedAt: created},
	}

	item := func(id, restaurantID, name, description, price string) domain.FoodItem {
		return domain.FoodItem{
			ID:           id,
			RestaurantID: restaurantID,
			Name:         name,
			Description:  description,
			Price:        decimal.RequireFromString(price),
			ImageURL:     "https://cdn.foodhub.dev/items/" + id + ".png",
			CreatedAt:    created,
		}
	}
	s.menus["rest-luigi"] = []domain.FoodItem{
		item("item-margherita", "rest-luigi", "Margherita", "Tomato, mozzarella, basil", "9.99"),
		item("item-pepperoni", "rest-luigi", "Pepperoni", "Double pepperoni", "11.50"),
	}
	s.menus["rest-stack"] = []domain.FoodItem{
		item("item-classic", "rest-stack", "Classic Burger", "Beef, cheddar, pickles", "12.00"),
		item("item-fries", "rest-stack", "Fries", "Hand cut", "4.25"),
	}
	s.menus["rest-kaito"] = []domain.FoodItem{
		item("item-salmon", "rest-kaito", "Salmon Nigiri", "Two pieces", "6.75"),
	}
}

func (s *Store) issueToken(u *user) string {
	token := uuid.NewString()
	s.tokens[token] = u.ID
	return token
}

func (s *Store) SignUp(name, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return "", ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; ok {
		return "", ErrEmailTaken
	}
	u := &user{ID: uuid.NewString(), Name: name, Email: email, Password: password}
	s.users[email] = u
	return s.issueToken(u), nil
}

func (s *Store) SignIn(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok || u.Password != password {
		return "", ErrInvalidCredentials
	}
	return s.issueToken(u), nil
}

// OAuth accepts any non-empty provider token and maps it to one account per
// provider identity.
func (s *Store) OAuth(providerToken, provider string) (string, error) {
	if providerToken == "" {
		return "", ErrUnauthorized
	}
	if provider != "google" && provider != "facebook" {
		return "", ErrInvalidInput
	}
	email := provider + ":" + providerToken

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		u = &user{ID: uuid.NewString(), Name: provider + " user", Email: email}
		s.users[email] = u
	}
	return s.issueToken(u), nil
}

// SetToken registers a fixed token for a new or existing email account.
func (s *Store) SetToken(email, token string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		u = &user{ID: uuid.NewString(), Name: email, Email: email}
		s.users[email] = u
	}
	s.tokens[token] = u.ID
	return u.ID
}

func (s *Store) UserForToken(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[token]
	if !ok {
		return "", ErrUnauthorized
	}
	return id, nil
}

func (s *Store) Categories() []domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Category(nil), s.categories...)
}

// Restaurants returns every restaurant ordered by distance from lat/lon.
func (s *Store) Restaurants(lat, lon float64) []domain.Restaurant {
	s.mu.Lock()
	out := append([]domain.Restaurant(nil), s.restaurants...)
	s.mu.Unlock()

	for i := range out {
		out[i].Distance = math.Round(distanceKM(lat, lon, out[i].Latitude, out[i].Longitude)*10) / 10
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

func distanceKM(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371.0
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func (s *Store) Menu(restaurantID string) ([]domain.FoodItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.menus[restaurantID]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]domain.FoodItem(nil), items...), nil
}

func (s *Store) findItem(restaurantID, menuItemID string) (domain.FoodItem, bool) {
	for _, item := range s.menus[restaurantID] {
		if item.ID == menuItemID {
			return item, true
		}
	}
	return domain.FoodItem{}, false
}
