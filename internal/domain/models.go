package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents a registered customer or admin account
type Profile struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Session represents an authenticated login session
type Session struct {
	ID          uuid.UUID
	ProfileID   uuid.UUID
	TokenHash   string
	TokenLookup string // SHA256(token) hex for fast lookup
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Category groups products for browsing
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	Slug        string
	ImageURL    string
	CreatedAt   time.Time
}

// Product is a catalog entry. Inactive products are hidden from customers
// but stay resolvable by ID for historical order items.
type Product struct {
	ID            uuid.UUID
	CategoryID    uuid.UUID
	Name          string
	Description   string
	Price         float64
	ImageURL      string
	StockQuantity int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CartItem is a (user, product, quantity) row. At most one per (user, product);
// adding an already-carted product increments quantity instead.
type CartItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
	Product   *Product // joined product, when loaded
}

// WishlistItem is a saved product. At most one per (user, product); toggle semantics.
type WishlistItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	CreatedAt time.Time
	Product   *Product
}

// Order is created once from a cart snapshot at checkout. All fields except
// Status are immutable after creation; Total is never recomputed.
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	OrderNumber     string
	Status          OrderStatus
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	DeliveryAddress string
	DeliveryCity    string
	PaymentMethod   PaymentMethod
	Subtotal        float64
	DeliveryFee     float64
	Total           float64
	Notes           string
	PaymentProofURL *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem is an immutable order line. Price is the product's price at order
// time, copied, never a live reference.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Price     float64
	CreatedAt time.Time
	Product   *Product
}

// SiteContent is an admin-editable text block keyed by (page, section)
type SiteContent struct {
	ID        uuid.UUID
	Page      string
	Section   string
	Content   string
	UpdatedAt time.Time
	UpdatedBy *uuid.UUID
}

// OrderEvent is an audit record for order creation and status changes
type OrderEvent struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	EventType string
	EventData map[string]interface{} // JSONB
	CreatedAt time.Time
}

// IdempotencyKey stores checkout idempotency information
type IdempotencyKey struct {
	Key         string
	ProfileID   uuid.UUID
	OrderID     uuid.UUID
	RequestHash string
	CreatedAt   time.Time
}
