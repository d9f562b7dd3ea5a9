// Package memory provides map-backed implementations of the repository
// interfaces. They back the service and handler tests and the seed tooling;
// production always runs on postgres.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/repository"
)

// Store holds all in-memory tables behind one mutex
type Store struct {
	mu sync.Mutex

	profiles     map[uuid.UUID]*domain.Profile
	sessions     map[uuid.UUID]*domain.Session
	categories   map[uuid.UUID]*domain.Category
	products     map[uuid.UUID]*domain.Product
	cartItems    map[uuid.UUID]*domain.CartItem
	wishlist     map[uuid.UUID]*domain.WishlistItem
	orders       map[uuid.UUID]*domain.Order
	orderItems   map[uuid.UUID]*domain.OrderItem
	siteContent  map[string]*domain.SiteContent // keyed page + "/" + section
	orderEvents  map[uuid.UUID][]*domain.OrderEvent
	idempotency map[string]*domain.IdempotencyKey
	failItems   bool
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		profiles:    make(map[uuid.UUID]*domain.Profile),
		sessions:    make(map[uuid.UUID]*domain.Session),
		categories:  make(map[uuid.UUID]*domain.Category),
		products:    make(map[uuid.UUID]*domain.Product),
		cartItems:   make(map[uuid.UUID]*domain.CartItem),
		wishlist:    make(map[uuid.UUID]*domain.WishlistItem),
		orders:      make(map[uuid.UUID]*domain.Order),
		orderItems:  make(map[uuid.UUID]*domain.OrderItem),
		siteContent: make(map[string]*domain.SiteContent),
		orderEvents: make(map[uuid.UUID][]*domain.OrderEvent),
		idempotency: make(map[string]*domain.IdempotencyKey),
	}
}

// NewRepositories wires every repository interface to a shared Store
func NewRepositories(s *Store) *repository.Repositories {
	return &repository.Repositories{
		Profile:        &profileRepo{s},
		Session:        &sessionRepo{s},
		Category:       &categoryRepo{s},
		Product:        &productRepo{s},
		CartItem:       &cartItemRepo{s},
		WishlistItem:   &wishlistRepo{s},
		Order:          &orderRepo{s},
		OrderItem:      &orderItemRepo{s},
		SiteContent:    &siteContentRepo{s},
		OrderEvent:     &orderEventRepo{s},
		IdempotencyKey: &idempotencyRepo{s},
		Analytics:      &analyticsRepo{s},
	}
}

// FailOrderItemInserts makes the next order item batch insert fail, for
// exercising the checkout partial-failure path.
func (s *Store) FailOrderItemInserts(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failItems = fail
}
