// Package catalog fetches product snapshots for stock checks and pricing.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/pricing"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

// DefaultPageSize is the number of products per catalog page.
const DefaultPageSize = 10

// maxParallel bounds concurrent product fetches in Products.
const maxParallel = 4

// API is the subset of the storefront client the catalog needs.
type API interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error)
}

// Catalog fetches live product snapshots and remembers the last one seen
// for each product.
type Catalog struct {
	api API
	sfg singleflight.Group // one in-flight fetch per product
	log *zap.Logger

	mu   sync.RWMutex
	seen map[string]domain.Product
}

// New creates a Catalog. A nil logger disables logging.
func New(api API, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{api: api, log: log, seen: make(map[string]domain.Product)}
}

// Product fetches the current snapshot of id. Concurrent calls for the same
// product share one request. The shared request is not tied to any one
// caller's context; a caller whose ctx ends stops waiting and the others
// keep theirs.
func (c *Catalog) Product(ctx context.Context, id string) (domain.Product, error) {
	flight := context.WithoutCancel(ctx)
	ch := c.sfg.DoChan(id, func() (interface{}, error) {
		p, err := c.api.GetProduct(flight, id)
		if err != nil {
			return nil, err
		}
		return *p, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return domain.Product{}, fmt.Errorf("catalog.Product: %w", ctx.Err())
	}
	if res.Err != nil {
		return domain.Product{}, fmt.Errorf("catalog.Product: %w", res.Err)
	}
	p := res.Val.(domain.Product)
	if res.Shared {
		c.log.Debug("coalesced product fetch", zap.String("product_id", id))
	}
	c.remember(p)
	return p, nil
}

// Products fetches snapshots for every id and returns them as a pricing lookup.
func (c *Catalog) Products(ctx context.Context, ids []string) (pricing.Snapshots, error) {
	out := make(pricing.Snapshots, len(ids))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for _, id := range ids {
		g.Go(func() error {
			p, err := c.Product(ctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			out[id] = p
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// List fetches one catalog page. Page numbers start at 1.
func (c *Catalog) List(ctx context.Context, brand string, page int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	products, err := c.api.ListProducts(ctx, domain.ProductFilter{Brand: brand, Page: page, Limit: DefaultPageSize})
	if err != nil {
		return nil, fmt.Errorf("catalog.List: %w", err)
	}
	for _, p := range products {
		c.remember(p)
	}
	return products, nil
}

// Snapshot returns the last fetched snapshot of productID.
func (c *Catalog) Snapshot(productID string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.seen[productID]
	return p, ok
}

func (c *Catalog) remember(p domain.Product) {
	c.mu.Lock()
	c.seen[p.ID] = p
	c.mu.Unlock()
}
