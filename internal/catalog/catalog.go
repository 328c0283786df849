package catalog

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/warungpos/storefront/internal/backend"
	"github.com/warungpos/storefront/internal/domain"
)

// Catalog caches the remote menu in memory. Refreshes are tagged with a
// generation so a slow fetch can never overwrite the result of a newer one.
type Catalog struct {
	backend *backend.Client
	logger  *slog.Logger

	nextGen atomic.Uint64

	mu          sync.RWMutex
	appliedGen  uint64
	products    []domain.Product
	categories  []domain.Category
	refreshedAt time.Time
}

func New(client *backend.Client, logger *slog.Logger) *Catalog {
	return &Catalog{
		backend: client,
		logger:  logger,
	}
}

// Refresh fetches products and categories from the remote service. A failed
// category fetch keeps the previous categories; the menu can live without
// icons for a while. A refresh that was superseded while in flight is
// discarded.
func (c *Catalog) Refresh(ctx context.Context) error {
	gen := c.nextGen.Add(1)

	products, err := c.backend.Products(ctx)
	if err != nil {
		return err
	}

	categories, err := c.backend.Categories(ctx)
	if err != nil {
		c.logger.Error("failed to load categories", "error", err)
		categories = nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen <= c.appliedGen {
		c.logger.Debug("discarding superseded catalog refresh", "generation", gen)
		return nil
	}
	c.appliedGen = gen
	c.products = products
	if categories != nil {
		c.categories = categories
	}
	c.refreshedAt = time.Now()
	return nil
}

// Products returns the cached product list in remote order.
func (c *Catalog) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Categories returns the cached category list.
func (c *Catalog) Categories() []domain.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Product looks up a cached product by id.
func (c *Catalog) Product(id string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// RefreshedAt reports when the cache last changed; zero if never refreshed.
func (c *Catalog) RefreshedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshedAt
}

// KeepFresh refreshes the catalog every interval until ctx is cancelled.
// Failures are logged and retried on the next tick; the cache keeps serving
// the previous snapshot meanwhile.
func (c *Catalog) KeepFresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil {
				c.logger.Error("catalog refresh failed", "error", err)
			}
		}
	}
}
