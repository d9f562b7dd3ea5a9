package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyakx/akazuba-florist/internal/realtime"
	"github.com/shyakx/akazuba-florist/internal/service"
)

func TestCountResyncDiscardsPendingDelta(t *testing.T) {
	env := newTestEnv()
	user := env.seedProfile("alice@example.com")
	category := env.seedCategory("flowers")
	product := env.seedProduct(category.ID, "Rose Bouquet", 25000)

	carts := service.NewCartService(env.repos, env.counts, env.logger)
	ctx := context.Background()

	_, err := carts.AddToCart(ctx, user.ID, product.ID)
	require.NoError(t, err)

	// Pile on optimistic bumps that the store never saw
	env.counts.OptimisticAdd(user.ID, 3)

	// The recount replaces everything, pending delta included
	n, err := env.counts.Resync(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = env.counts.Count(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCountNeverNegative(t *testing.T) {
	env := newTestEnv()
	user := env.seedProfile("alice@example.com")

	_, err := env.counts.Resync(context.Background(), user.ID)
	require.NoError(t, err)

	env.counts.OptimisticAdd(user.ID, -5)
	n, err := env.counts.Count(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestWatchAllResyncsOnChange(t *testing.T) {
	env := newTestEnv()
	user := env.seedProfile("alice@example.com")
	category := env.seedCategory("flowers")
	product := env.seedProduct(category.ID, "Rose Bouquet", 25000)

	carts := service.NewCartService(env.repos, env.counts, env.logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := realtime.NewBus()
	go env.counts.WatchAll(ctx, bus)
	time.Sleep(10 * time.Millisecond) // let the subscription land

	// A change made "elsewhere": the row appears without an optimistic bump
	_, err := carts.AddToCart(ctx, user.ID, product.ID)
	require.NoError(t, err)
	env.counts.OptimisticAdd(user.ID, 5) // stale local guess

	bus.Publish(realtime.Change{Table: "cart_items", OwnerID: user.ID})

	require.Eventually(t, func() bool {
		n, err := env.counts.Count(ctx, user.ID)
		return err == nil && n == 1
	}, time.Second, 10*time.Millisecond, "change feed recount should replace the stale delta")
}

func TestForgetDropsCachedEntry(t *testing.T) {
	env := newTestEnv()
	user := env.seedProfile("alice@example.com")

	env.counts.OptimisticAdd(user.ID, 7)
	env.counts.Forget(user.ID)

	// Next read goes back to the store, which has nothing
	n, err := env.counts.Count(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
