// Package cart holds the authenticated user's cart and keeps it in step
// with the server.
package cart

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

// API is the cart half of the storefront client.
type API interface {
	GetCart(ctx context.Context) (domain.Cart, error)
	ReplaceCart(ctx context.Context, items []domain.CartItemInput) (domain.Cart, error)
}

// StockSource returns a live product snapshot.
type StockSource interface {
	Product(ctx context.Context, id string) (domain.Product, error)
}

// Sessions reports whether a valid session exists.
type Sessions interface {
	IsAuthenticated() bool
}

// Store is the client-side cart. Every mutation pushes the full line list
// and then adopts whatever the server returns. At most one request is
// outstanding at a time; a concurrent call fails with
// domain.ErrAlreadyInProgress instead of waiting.
type Store struct {
	api      API
	stock    StockSource
	sessions Sessions
	log      *zap.Logger

	mu       sync.Mutex
	cart     domain.Cart
	loaded   bool
	inFlight bool
	disposed bool
}

// NewStore creates an empty, unloaded Store.
func NewStore(api API, stock StockSource, sessions Sessions, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{api: api, stock: stock, sessions: sessions, log: log}
}

// Cart returns a copy of the current cart.
func (s *Store) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// Loaded reports whether the cart has been fetched from the server.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Busy reports whether a request is outstanding.
func (s *Store) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Dispose detaches the store from its view. Requests already running still
// return their result to the caller but no longer update the store.
func (s *Store) Dispose() {
	s.mu.Lock()
	s.disposed = true
	s.mu.Unlock()
}

// Load replaces the cart with the server's copy. On failure the previous
// cart is kept.
func (s *Store) Load(ctx context.Context) (domain.Cart, error) {
	if err := s.begin(); err != nil {
		return domain.Cart{}, fmt.Errorf("cart.Load: %w", err)
	}
	defer s.end()

	c, err := s.api.GetCart(ctx)
	if err != nil {
		s.log.Warn("load cart", zap.Error(err))
		return s.Cart(), fmt.Errorf("cart.Load: %w", err)
	}
	s.adopt(c)
	return c.Clone(), nil
}

// SetQuantity sets the quantity of an existing line. q <= 0 removes it;
// otherwise q is clamped to the product's live stock. A product with no
// stock left is removed and ErrOutOfStock returned. Nothing is sent when
// the clamped quantity equals the current one.
func (s *Store) SetQuantity(ctx context.Context, productID string, q int) (domain.Cart, error) {
	if err := s.begin(); err != nil {
		return domain.Cart{}, fmt.Errorf("cart.SetQuantity: %w", err)
	}
	defer s.end()

	cur, err := s.current(ctx)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("cart.SetQuantity: %w", err)
	}
	line, ok := cur.Line(productID)
	if !ok {
		return cur, fmt.Errorf("cart.SetQuantity: %w: product %s is not in the cart", domain.ErrValidation, productID)
	}
	if q <= 0 {
		return s.push(ctx, "cart.SetQuantity", without(cur, productID))
	}

	p, err := s.stock.Product(ctx, productID)
	if err != nil {
		return cur, fmt.Errorf("cart.SetQuantity: %w", err)
	}
	if p.Stock <= 0 {
		return s.dropSoldOut(ctx, "cart.SetQuantity", cur, productID)
	}
	clamped := min(q, p.Stock)
	if clamped == line.Quantity {
		return cur, nil
	}
	return s.push(ctx, "cart.SetQuantity", withQuantity(cur, productID, clamped))
}

// Add puts q more units of productID in the cart, merging with an existing
// line. The resulting quantity is clamped to live stock, and an existing
// line of a sold-out product is removed.
func (s *Store) Add(ctx context.Context, productID string, q int) (domain.Cart, error) {
	if q < 1 {
		return domain.Cart{}, fmt.Errorf("cart.Add: %w: quantity %d", domain.ErrValidation, q)
	}
	if err := s.begin(); err != nil {
		return domain.Cart{}, fmt.Errorf("cart.Add: %w", err)
	}
	defer s.end()

	cur, err := s.current(ctx)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("cart.Add: %w", err)
	}
	p, err := s.stock.Product(ctx, productID)
	if err != nil {
		return cur, fmt.Errorf("cart.Add: %w", err)
	}
	if p.Stock <= 0 {
		return s.dropSoldOut(ctx, "cart.Add", cur, productID)
	}

	line, ok := cur.Line(productID)
	if !ok {
		next := cur.Clone()
		next.Lines = append(next.Lines, domain.CartLine{
			ProductID:      p.ID,
			Name:           p.Name,
			Quantity:       min(q, p.Stock),
			UnitPriceAtAdd: p.UnitPrice,
		})
		return s.push(ctx, "cart.Add", next)
	}
	merged := min(line.Quantity+q, p.Stock)
	if merged == line.Quantity {
		return cur, nil
	}
	return s.push(ctx, "cart.Add", withQuantity(cur, productID, merged))
}

// Remove deletes the line for productID. Removing an absent product is a no-op.
func (s *Store) Remove(ctx context.Context, productID string) (domain.Cart, error) {
	if err := s.begin(); err != nil {
		return domain.Cart{}, fmt.Errorf("cart.Remove: %w", err)
	}
	defer s.end()

	cur, err := s.current(ctx)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("cart.Remove: %w", err)
	}
	if _, ok := cur.Line(productID); !ok {
		return cur, nil
	}
	return s.push(ctx, "cart.Remove", without(cur, productID))
}

// begin claims the in-flight slot. It never blocks.
func (s *Store) begin() error {
	if s.sessions != nil && !s.sessions.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return domain.ErrAlreadyInProgress
	}
	s.inFlight = true
	return nil
}

func (s *Store) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

// current returns the cart to mutate, fetching it first if it was never
// loaded so that a push cannot overwrite lines the server already has.
// Caller holds the in-flight slot.
func (s *Store) current(ctx context.Context) (domain.Cart, error) {
	s.mu.Lock()
	loaded, c := s.loaded, s.cart.Clone()
	s.mu.Unlock()
	if loaded {
		return c, nil
	}
	fetched, err := s.api.GetCart(ctx)
	if err != nil {
		return domain.Cart{}, err
	}
	s.adopt(fetched)
	return fetched.Clone(), nil
}

// push sends next and adopts the server's response. Caller holds the
// in-flight slot.
func (s *Store) push(ctx context.Context, op string, next domain.Cart) (domain.Cart, error) {
	stored, err := s.api.ReplaceCart(ctx, next.Inputs())
	if err != nil {
		s.log.Warn("push cart", zap.String("op", op), zap.Int("lines", len(next.Lines)), zap.Error(err))
		return s.Cart(), fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("cart updated", zap.String("op", op), zap.Int("lines", len(stored.Lines)),
		zap.Int("units", stored.TotalQuantity()))
	s.adopt(stored)
	return stored.Clone(), nil
}

// dropSoldOut removes productID's line, if any, and reports ErrOutOfStock.
// Caller holds the in-flight slot.
func (s *Store) dropSoldOut(ctx context.Context, op string, cur domain.Cart, productID string) (domain.Cart, error) {
	soldOut := fmt.Errorf("%s: %w: %s", op, domain.ErrOutOfStock, productID)
	if _, ok := cur.Line(productID); !ok {
		return cur, soldOut
	}
	s.log.Info("dropping sold-out line", zap.String("op", op), zap.String("product_id", productID))
	c, err := s.push(ctx, op, without(cur, productID))
	if err != nil {
		return c, err
	}
	return c, soldOut
}

func (s *Store) adopt(c domain.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.cart = c.Clone()
	s.loaded = true
}

func without(c domain.Cart, productID string) domain.Cart {
	out := domain.Cart{Lines: make([]domain.CartLine, 0, len(c.Lines))}
	for _, l := range c.Lines {
		if l.ProductID != productID {
			out.Lines = append(out.Lines, l)
		}
	}
	return out
}

func withQuantity(c domain.Cart, productID string, q int) domain.Cart {
	out := c.Clone()
	for i := range out.Lines {
		if out.Lines[i].ProductID == productID {
			out.Lines[i].Quantity = q
		}
	}
	return out
}
