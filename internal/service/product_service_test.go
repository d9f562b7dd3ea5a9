package service_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/service"
	"github.com/shyakx/akazuba-florist/internal/storage"
	"github.com/shyakx/akazuba-florist/pkg/errors"
)

// stubStore is an in-memory storage.Store
type stubStore struct {
	saved []string
	fail  bool
}

func (s *stubStore) Save(_ context.Context, name string, _ io.Reader) (string, error) {
	if s.fail {
		return "", fmt.Errorf("disk full")
	}
	url := "/uploads/" + name
	s.saved = append(s.saved, url)
	return url, nil
}

func TestSaveProductCreatesActive(t *testing.T) {
	env := newTestEnv()
	category := env.seedCategory("flowers")

	products := service.NewProductService(env.repos, &stubStore{}, env.logger)
	saved, err := products.Save(context.Background(), &domain.Product{
		CategoryID:    category.ID,
		Name:          "Rose Bouquet",
		Price:         25000,
		StockQuantity: 10,
	}, nil)
	require.NoError(t, err)

	assert.True(t, saved.IsActive, "new products start visible")
	assert.Equal(t, storage.PlaceholderImageURL, saved.ImageURL)
}

func TestSaveProductStoresImage(t *testing.T) {
	env := newTestEnv()
	category := env.seedCategory("flowers")
	blobs := &stubStore{}

	products := service.NewProductService(env.repos, blobs, env.logger)
	saved, err := products.Save(context.Background(), &domain.Product{
		CategoryID: category.ID,
		Name:       "Rose Bouquet",
		Price:      25000,
	}, &service.ImageUpload{Filename: "roses.jpg", Reader: strings.NewReader("jpeg bytes")})
	require.NoError(t, err)

	require.Len(t, blobs.saved, 1)
	assert.Equal(t, blobs.saved[0], saved.ImageURL)
}

func TestSaveProductFailedUploadFallsBack(t *testing.T) {
	env := newTestEnv()
	category := env.seedCategory("flowers")

	products := service.NewProductService(env.repos, &stubStore{fail: true}, env.logger)
	saved, err := products.Save(context.Background(), &domain.Product{
		CategoryID: category.ID,
		Name:       "Rose Bouquet",
		Price:      25000,
	}, &service.ImageUpload{Filename: "roses.jpg", Reader: strings.NewReader("jpeg bytes")})
	require.NoError(t, err, "a failed upload must not abort the save")

	assert.Equal(t, storage.PlaceholderImageURL, saved.ImageURL)
}

func TestSaveProductValidation(t *testing.T) {
	env := newTestEnv()
	category := env.seedCategory("flowers")
	products := service.NewProductService(env.repos, &stubStore{}, env.logger)
	ctx := context.Background()

	_, err := products.Save(ctx, &domain.Product{CategoryID: category.ID, Price: 100}, nil)
	assert.IsType(t, &errors.ErrValidation{}, err)

	_, err = products.Save(ctx, &domain.Product{CategoryID: category.ID, Name: "X", Price: -1}, nil)
	assert.IsType(t, &errors.ErrValidation{}, err)
}

func TestSoftDeleteHidesFromCatalogOnly(t *testing.T) {
	env := newTestEnv()
	category := env.seedCategory("flowers")
	product := env.seedProduct(category.ID, "Rose Bouquet", 25000)

	products := service.NewProductService(env.repos, &stubStore{}, env.logger)
	ctx := context.Background()

	require.NoError(t, products.SoftDelete(ctx, product.ID))

	catalog, err := products.Catalog(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, catalog, "inactive products leave the storefront")

	// Still resolvable by ID for order history
	got, err := products.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	// Admin sees everything when asked to
	all, err := products.AdminList(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, products.Restore(ctx, product.ID))
	catalog, err = products.Catalog(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, catalog, 1)
}

func TestCatalogFiltersByCategory(t *testing.T) {
	env := newTestEnv()
	flowers := env.seedCategory("flowers")
	perfumes := env.seedCategory("perfumes")
	env.seedProduct(flowers.ID, "Rose Bouquet", 25000)
	env.seedProduct(perfumes.ID, "Rose Garden EdP", 45000)

	products := service.NewProductService(env.repos, &stubStore{}, env.logger)
	got, err := products.Catalog(context.Background(), &flowers.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Rose Bouquet", got[0].Name)
}
