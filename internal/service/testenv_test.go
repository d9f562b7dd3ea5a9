package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/mailer"
	"github.com/shyakx/akazuba-florist/internal/repository"
	"github.com/shyakx/akazuba-florist/internal/repository/memory"
	"github.com/shyakx/akazuba-florist/internal/service"
)

type testEnv struct {
	store  *memory.Store
	repos  *repository.Repositories
	counts *service.CartCountCache
	logger *zap.Logger
}

func newTestEnv() *testEnv {
	store := memory.NewStore()
	repos := memory.NewRepositories(store)
	logger := zap.NewNop()
	return &testEnv{
		store:  store,
		repos:  repos,
		counts: service.NewCartCountCache(repos, logger),
		logger: logger,
	}
}

func (e *testEnv) seedProfile(email string) *domain.Profile {
	profile := &domain.Profile{
		ID:        uuid.New(),
		Email:     email,
		FullName:  "Test Customer",
		CreatedAt: time.Now(),
	}
	if err := e.repos.Profile.Create(context.Background(), profile); err != nil {
		panic(err)
	}
	return profile
}

func (e *testEnv) seedCategory(name string) *domain.Category {
	category := &domain.Category{
		ID:        uuid.New(),
		Name:      name,
		Slug:      name,
		CreatedAt: time.Now(),
	}
	if err := e.repos.Category.Create(context.Background(), category); err != nil {
		panic(err)
	}
	return category
}

func (e *testEnv) seedProduct(categoryID uuid.UUID, name string, price float64) *domain.Product {
	product := &domain.Product{
		ID:            uuid.New(),
		CategoryID:    categoryID,
		Name:          name,
		Price:         price,
		ImageURL:      "/placeholder.jpg",
		StockQuantity: 10,
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := e.repos.Product.Create(context.Background(), product); err != nil {
		panic(err)
	}
	return product
}

// stubMailer records sends and can be told to fail
type stubMailer struct {
	sent []mailer.OrderEmail
	fail bool
}

func (m *stubMailer) SendOrderNotification(_ context.Context, email mailer.OrderEmail) error {
	if m.fail {
		return fmt.Errorf("relay unreachable")
	}
	m.sent = append(m.sent, email)
	return nil
}
