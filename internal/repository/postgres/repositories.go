package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/repository"
)

// NewRepositories creates a new set of repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Profile:        NewProfileRepository(db, logger),
		Session:        NewSessionRepository(db, logger),
		Category:       NewCategoryRepository(db, logger),
		Product:        NewProductRepository(db, logger),
		CartItem:       NewCartItemRepository(db, logger),
		WishlistItem:   NewWishlistItemRepository(db, logger),
		Order:          NewOrderRepository(db, logger),
		OrderItem:      NewOrderItemRepository(db, logger),
		SiteContent:    NewSiteContentRepository(db, logger),
		OrderEvent:     NewOrderEventRepository(db, logger),
		IdempotencyKey: NewIdempotencyKeyRepository(db, logger),
		Analytics:      NewAnalyticsRepository(db, logger),
	}
}
