package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyakx/akazuba-florist/internal/service"
	"github.com/shyakx/akazuba-florist/pkg/errors"
)

func TestAddToCartIncrementsExistingLine(t *testing.T) {
	env := newTestEnv()
	user := env.seedProfile("alice@example.com")
	category := env.seedCategory("flowers")
	product := env.seedProduct(category.ID, "Rose Bouquet", 25000)

	carts := service.NewCartService(env.repos, env.counts, env.logger)
	ctx := context.Background()

	first, err := carts.AddToCart(ctx, user.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Quantity)

	second, err := carts.AddToCart(ctx, user.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same product must reuse the line")
	assert.Equal(t, 2, second.Quantity)

	items, err := carts.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAddToCartRejectsInactiveProduct(t *testing.T) {
	env := newTestEnv()
	user := env.seedProfile("alice@example.com")
	category := env.seedCategory("flowers")
	product := env.seedProduct(category.ID, "Rose Bouquet", 25000)
	require.NoError(t, env.repos.Product.SetActive(context.Background(), product.ID, false))

	carts := service.NewCartService(env.repos, env.counts, env.logger)
	_, err := carts.AddToCart(context.Background(), user.ID, product.ID)
	require.Error(t, err)
	assert.IsType(t, &errors.ErrValidation{}, err)
}

func TestCartCountSumsQuantities(t *testing.T) {
	env := newTestEnv()
	user := env.seedProfile("alice@example.com")
	category := env.seedCategory("flowers")
	roses := env.seedProduct(category.ID, "Rose Bouquet", 25000)
	lilies := env.seedProduct(category.ID, "Lily Arrangement", 35000)

	carts := service.NewCartService(env.repos, env.counts, env.logger)
	ctx := context.Background()

	_, err := carts.AddToCart(ctx, user.ID, roses.ID)
	require.NoError(t, err)
	_, err = carts.AddToCart(ctx, user.ID, roses.ID)
	require.NoError(t, err)
	_, err = carts.AddToCart(ctx, user.ID, lilies.ID)
	require.NoError(t, err)

	count, err := carts.Count(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count, "badge counts quantities, not lines")
}

func TestUpdateQuantityRejectsBelowOne(t *testing.T) {
	env := newTestEnv()
	user := env.seedProfile("alice@example.com")
	category := env.seedCategory("flowers")
	product := env.seedProduct(category.ID, "Rose Bouquet", 25000)

	carts := service.NewCartService(env.repos, env.counts, env.logger)
	ctx := context.Background()

	item, err := carts.AddToCart(ctx, user.ID, product.ID)
	require.NoError(t, err)

	err = carts.UpdateQuantity(ctx, user.ID, item.ID, 0)
	require.Error(t, err)
	assert.IsType(t, &errors.ErrValidation{}, err)

	// The line is unchanged
	items, err := carts.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestUpdateQuantityEnforcesOwnership(t *testing.T) {
	env := newTestEnv()
	owner := env.seedProfile("alice@example.com")
	intruder := env.seedProfile("bob@example.com")
	category := env.seedCategory("flowers")
	product := env.seedProduct(category.ID, "Rose Bouquet", 25000)

	carts := service.NewCartService(env.repos, env.counts, env.logger)
	ctx := context.Background()

	item, err := carts.AddToCart(ctx, owner.ID, product.ID)
	require.NoError(t, err)

	err = carts.UpdateQuantity(ctx, intruder.ID, item.ID, 5)
	require.Error(t, err)
	assert.IsType(t, &errors.ErrForbidden{}, err)
}

func TestCartTotalUsesLivePrices(t *testing.T) {
	env := newTestEnv()
	user := env.seedProfile("alice@example.com")
	category := env.seedCategory("flowers")
	product := env.seedProduct(category.ID, "Rose Bouquet", 25000)

	carts := service.NewCartService(env.repos, env.counts, env.logger)
	ctx := context.Background()

	item, err := carts.AddToCart(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.NoError(t, carts.UpdateQuantity(ctx, user.ID, item.ID, 2))

	// Price change before checkout shows up in the cart total
	product.Price = 30000
	require.NoError(t, env.repos.Product.Update(ctx, product))

	items, err := carts.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 60000.0, service.CartTotal(items))
}
