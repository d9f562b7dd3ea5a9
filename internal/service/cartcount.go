package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/realtime"
	"github.com/shyakx/akazuba-florist/internal/repository"
)

// CartCountCache keeps the per-user cart badge count: an authoritative count
// from the store plus a pending optimistic delta. The delta is discarded
// whenever an authoritative recount lands, so interleaved local updates and
// remote-triggered refreshes always converge on the store's truth.
type CartCountCache struct {
	mu     sync.Mutex
	counts map[uuid.UUID]*cachedCount
	repos  *repository.Repositories
	logger *zap.Logger
}

type cachedCount struct {
	authoritative int
	pending       int
	known         bool
}

// NewCartCountCache creates an empty cache over repos
func NewCartCountCache(repos *repository.Repositories, logger *zap.Logger) *CartCountCache {
	return &CartCountCache{
		counts: make(map[uuid.UUID]*cachedCount),
		repos:  repos,
		logger: logger,
	}
}

// OptimisticAdd bumps the pending delta without waiting for the store
func (c *CartCountCache) OptimisticAdd(userID uuid.UUID, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := c.entry(userID)
	entry.pending += delta
}

// Count returns authoritative + pending, recounting from the store first when
// nothing is cached for this user.
func (c *CartCountCache) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	c.mu.Lock()
	entry := c.entry(userID)
	if entry.known {
		n := entry.authoritative + entry.pending
		c.mu.Unlock()
		if n < 0 {
			n = 0
		}
		return n, nil
	}
	c.mu.Unlock()

	return c.Resync(ctx, userID)
}

// Resync recounts from the store and discards the pending delta. Safe to call
// from any interleaving of local updates and change-feed events; the recount
// is idempotent.
func (c *CartCountCache) Resync(ctx context.Context, userID uuid.UUID) (int, error) {
	sum, err := c.repos.CartItem.SumQuantities(ctx, userID)
	if err != nil {
		// Failed reads leave the cached view unchanged
		c.logger.Warn("Cart count resync failed", zap.String("user_id", userID.String()), zap.Error(err))
		return 0, err
	}

	c.mu.Lock()
	entry := c.entry(userID)
	entry.authoritative = sum
	entry.pending = 0
	entry.known = true
	c.mu.Unlock()

	return sum, nil
}

// ResyncAll recounts every cached user; the periodic job calls this
func (c *CartCountCache) ResyncAll(ctx context.Context) {
	c.mu.Lock()
	ids := make([]uuid.UUID, 0, len(c.counts))
	for id := range c.counts {
		ids = append(ids, id)
	}
	c.mu.Unlock()

	for _, id := range ids {
		if _, err := c.Resync(ctx, id); err != nil {
			return
		}
	}
}

// Watch resyncs the user's count whenever their cart rows change in any
// session, until ctx ends. Only the fact of the change is consumed.
func (c *CartCountCache) Watch(ctx context.Context, sub realtime.Subscriber, userID uuid.UUID) error {
	changes, cancel, err := sub.Subscribe(ctx, "cart_items", userID)
	if err != nil {
		return err
	}

	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				_, _ = c.Resync(ctx, userID)
			}
		}
	}()

	return nil
}

// WatchAll resyncs whichever user a cart change belongs to, until ctx ends.
// The server runs one of these over the NOTIFY listener.
func (c *CartCountCache) WatchAll(ctx context.Context, sub realtime.Subscriber) error {
	changes, cancel, err := sub.Subscribe(ctx, "cart_items", uuid.Nil)
	if err != nil {
		return err
	}
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			_, _ = c.Resync(ctx, change.OwnerID)
		}
	}
}

// Forget drops the cached entry, e.g. on sign-out
func (c *CartCountCache) Forget(userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counts, userID)
}

func (c *CartCountCache) entry(userID uuid.UUID) *cachedCount {
	entry, ok := c.counts[userID]
	if !ok {
		entry = &cachedCount{}
		c.counts[userID] = entry
	}
	return entry
}
