package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shyakx/akazuba-florist/internal/domain"
)

// ProfileRepository defines account data access methods
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	Create(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, profile *domain.Profile) error
}

// SessionRepository defines login session data access methods
type SessionRepository interface {
	GetByTokenLookup(ctx context.Context, tokenLookup string) (*domain.Session, error)
	Create(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProfileID(ctx context.Context, profileID uuid.UUID) error
}

// CategoryRepository defines category data access methods
type CategoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
}

// ProductRepository defines product data access methods. ListActive is the
// single place the is_active predicate is applied for customer queries.
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListActive(ctx context.Context, categoryID *uuid.UUID) ([]*domain.Product, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// CartItemRepository defines cart data access methods
type CartItemRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CartItem, error)
	GetByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*domain.CartItem, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error)
	SumQuantities(ctx context.Context, userID uuid.UUID) (int, error)
	Create(ctx context.Context, item *domain.CartItem) error
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// WishlistItemRepository defines wishlist data access methods
type WishlistItemRepository interface {
	GetByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*domain.WishlistItem, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.WishlistItem, error)
	Create(ctx context.Context, item *domain.WishlistItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepository defines order data access methods
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	List(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderItemRepository defines order line data access methods
type OrderItemRepository interface {
	CreateBatch(ctx context.Context, items []*domain.OrderItem) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
}

// SiteContentRepository defines content block data access methods
type SiteContentRepository interface {
	Get(ctx context.Context, page, section string) (*domain.SiteContent, error)
	ListByPage(ctx context.Context, page string) ([]*domain.SiteContent, error)
	Upsert(ctx context.Context, content *domain.SiteContent) error
}

// OrderEventRepository defines audit event data access methods
type OrderEventRepository interface {
	Create(ctx context.Context, event *domain.OrderEvent) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error)
}

// IdempotencyKeyRepository defines checkout idempotency data access methods
type IdempotencyKeyRepository interface {
	GetByKey(ctx context.Context, key string) (*domain.IdempotencyKey, error)
	Create(ctx context.Context, key *domain.IdempotencyKey) error
}

// DashboardStats is the admin dashboard aggregation, recomputed on demand
type DashboardStats struct {
	TotalProducts     int
	TotalOrders       int
	TotalCustomers    int
	PendingOrders     int
	DeliveredOrders   int
	LowStockProducts  int
	TotalRevenue      float64
	MonthlyRevenue    float64
	AverageOrderValue float64
}

// AnalyticsRepository defines the read-side aggregation queries. Each method
// is an independent query; no consistency across them is required.
type AnalyticsRepository interface {
	CountProducts(ctx context.Context) (int, error)
	CountOrders(ctx context.Context) (int, error)
	CountOrdersByStatus(ctx context.Context, status domain.OrderStatus) (int, error)
	CountCustomers(ctx context.Context) (int, error)
	CountLowStockProducts(ctx context.Context, threshold int) (int, error)
	RevenueDelivered(ctx context.Context) (float64, error)
	RevenueDeliveredBetween(ctx context.Context, from, to time.Time) (float64, error)
}

// Repositories aggregates all repositories
type Repositories struct {
	Profile        ProfileRepository
	Session        SessionRepository
	Category       CategoryRepository
	Product        ProductRepository
	CartItem       CartItemRepository
	WishlistItem   WishlistItemRepository
	Order          OrderRepository
	OrderItem      OrderItemRepository
	SiteContent    SiteContentRepository
	OrderEvent     OrderEventRepository
	IdempotencyKey IdempotencyKeyRepository
	Analytics      AnalyticsRepository
}
