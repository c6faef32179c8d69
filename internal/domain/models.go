package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

type CategoriesResponse struct {
	Data []Category `json:"data"`
}

type Restaurant struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	ImageURL   string  `json:"imageUrl"`
	Address    string  `json:"address"`
	CategoryID string  `json:"categoryId"`
	OwnerID    string  `json:"ownerId"`
	Distance   float64 `json:"distance"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	CreatedAt  string  `json:"createdAt"`
}

type RestaurantResponse struct {
	Data []Restaurant `json:"data"`
}

type FoodItem struct {
	ID           string          `json:"id"`
	RestaurantID string          `json:"restaurantId"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"imageUrl"`
	ARModeURL    string          `json:"arModeUrl,omitempty"`
	CreatedAt    string          `json:"createdAt"`
}

type FoodItemResponse struct {
	FoodItems []FoodItem `json:"foodItems"`
}

type CartItem struct {
	ID           string   `json:"id"`
	MenuItem     FoodItem `json:"menuItemId"`
	Quantity     int      `json:"quantity"`
	RestaurantID string   `json:"restaurantId"`
	UserID       string   `json:"userId"`
	AddedAt      string   `json:"addedAt"`
}

type CheckoutDetails struct {
	SubTotal    decimal.Decimal `json:"subTotal"`
	Tax         decimal.Decimal `json:"tax"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type CartResponse struct {
	Items           []CartItem      `json:"items"`
	CheckoutDetails CheckoutDetails `json:"checkoutDetails"`
}

type AddToCartRequest struct {
	RestaurantID string `json:"restaurantId"`
	MenuItemID   string `json:"menuItemId"`
	Quantity     int    `json:"quantity"`
}

type AddToCartResponse struct {
	ID           string `json:"id"`
	MenuItemID   string `json:"menuItemId"`
	Quantity     int    `json:"quantity"`
	RestaurantID string `json:"restaurantId"`
	UserID       string `json:"userId"`
	AddedAt      string `json:"addedAt"`
}

type UpdateCartItemRequest struct {
	CartItemID string `json:"cartItemId"`
	Quantity   int    `json:"quantity"`
}

type GenericMsgResponse struct {
	Message string `json:"message"`
}

type Address struct {
	ID           string  `json:"id,omitempty"`
	UserID       string  `json:"userId,omitempty"`
	AddressLine1 string  `json:"addressLine1,omitempty"`
	AddressLine2 string  `json:"addressLine2,omitempty"`
	City         string  `json:"city,omitempty"`
	State        string  `json:"state,omitempty"`
	ZipCode      string  `json:"zipCode"`
	Country      string  `json:"country,omitempty"`
	Latitude     float64 `json:"latitude,omitempty"`
	Longitude    float64 `json:"longitude,omitempty"`
}

type AddressListResponse struct {
	Addresses []Address `json:"addresses"`
}

type ReverseGeoCodeRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PaymentIntentRequest struct {
	AddressID string `json:"addressId"`
}

type PaymentIntentResponse struct {
	PaymentIntentID    string          `json:"paymentIntentId"`
	ClientSecret       string          `json:"clientSecret"`
	CustomerID         string          `json:"customerId"`
	EphemeralKeySecret string          `json:"ephemeralKeySecret"`
	PublishableKey     string          `json:"publishableKey"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	Status             string          `json:"status"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	AddressID       string `json:"addressId"`
}

type ConfirmPaymentResponse struct {
	Status         string `json:"status"`
	RequiresAction bool   `json:"requiresAction"`
	ClientSecret   string `json:"clientSecret"`
	OrderID        string `json:"orderId"`
	OrderStatus    string `json:"orderStatus"`
	Message        string `json:"message"`
}

type OrderItem struct {
	ID           string `json:"id"`
	MenuItemID   string `json:"menuItemId"`
	MenuItemName string `json:"menuItemName,omitempty"`
	OrderID      string `json:"orderId"`
	Quantity     int    `json:"quantity"`
}

type Order struct {
	ID                    string          `json:"id"`
	UserID                string          `json:"userId"`
	RestaurantID          string          `json:"restaurantId"`
	Restaurant            Restaurant      `json:"restaurant"`
	Address               Address         `json:"address"`
	Items                 []OrderItem     `json:"items"`
	Status                string          `json:"status"`
	PaymentStatus         string          `json:"paymentStatus"`
	StripePaymentIntentID string          `json:"stripePaymentIntentId"`
	TotalAmount           decimal.Decimal `json:"totalAmount"`
	CreatedAt             string          `json:"createdAt"`
	UpdatedAt             string          `json:"updatedAt"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
}

type Notification struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	OrderID   string `json:"orderId"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OAuthRequest struct {
	Token    string `json:"token"`
	Provider string `json:"provider"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

// PushTokenRequest registers the device's push token for the signed-in user.
type PushTokenRequest struct {
	Token string `json:"token"`
}

// PushTokenResponse names the recipient key push messages for this user carry.
type PushTokenResponse struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}
