// Package order validates, assembles and submits orders.
package order

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

// State is the phase of the current submission attempt.
type State int

const (
	Idle State = iota
	Validating
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// API creates orders.
type API interface {
	CreateOrder(ctx context.Context, draft domain.OrderDraft) (domain.OrderResult, error)
}

// Sessions reports whether a valid session exists.
type Sessions interface {
	IsAuthenticated() bool
}

// CartRefresher reloads the cart after a cart order is accepted.
type CartRefresher interface {
	Load(ctx context.Context) (domain.Cart, error)
}

// Submitter runs one order attempt at a time. Attempts are never retried;
// a server rejection is returned with the server's reason.
type Submitter struct {
	api      API
	sessions Sessions
	cart     CartRefresher
	log      *zap.Logger

	mu       sync.Mutex
	state    State
	result   domain.OrderResult
	err      error
	disposed bool
}

// NewSubmitter creates a Submitter. cart may be nil when no cart needs
// refreshing.
func NewSubmitter(api API, sessions Sessions, cart CartRefresher, log *zap.Logger) *Submitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Submitter{api: api, sessions: sessions, cart: cart, log: log}
}

// State returns the phase of the latest attempt.
func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the order assigned by the last successful attempt.
func (s *Submitter) Result() domain.OrderResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Err returns the error of the last failed attempt.
func (s *Submitter) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Dispose stops in-flight attempts from writing their outcome to s.
func (s *Submitter) Dispose() {
	s.mu.Lock()
	s.disposed = true
	s.mu.Unlock()
}

// PlaceFromCart orders every line of cart and refreshes the cart on success.
func (s *Submitter) PlaceFromCart(ctx context.Context, cart domain.Cart, method domain.PaymentMethod) (domain.OrderResult, error) {
	const op = "order.PlaceFromCart"
	if err := s.begin(); err != nil {
		return domain.OrderResult{}, fmt.Errorf("%s: %w", op, err)
	}

	lines, err := s.validateCart(cart, method)
	if err != nil {
		return domain.OrderResult{}, s.fail(op, err)
	}
	res, err := s.submit(ctx, op, domain.NewOrderDraft(lines, method))
	if err != nil {
		return domain.OrderResult{}, err
	}

	if s.cart != nil {
		if _, err := s.cart.Load(ctx); err != nil {
			s.log.Warn("refresh cart after order", zap.String("order_id", res.OrderID), zap.Error(err))
		}
	}
	return res, nil
}

// PlaceSingle orders q units of p directly, bypassing the cart.
func (s *Submitter) PlaceSingle(ctx context.Context, p domain.Product, q int, method domain.PaymentMethod) (domain.OrderResult, error) {
	const op = "order.PlaceSingle"
	if err := s.begin(); err != nil {
		return domain.OrderResult{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.validateSingle(p, q, method); err != nil {
		return domain.OrderResult{}, s.fail(op, err)
	}
	lines := []domain.OrderLine{{ProductID: p.ID, Quantity: q}}
	return s.submit(ctx, op, domain.NewOrderDraft(lines, method))
}

func (s *Submitter) validateCart(cart domain.Cart, method domain.PaymentMethod) ([]domain.OrderLine, error) {
	if !s.sessions.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	if !domain.ValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, method)
	}
	lines := make([]domain.OrderLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		if l.Quantity < 1 {
			return nil, fmt.Errorf("%w: product %s has quantity %d", domain.ErrValidation, l.ProductID, l.Quantity)
		}
		lines = append(lines, domain.OrderLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return lines, nil
}

func (s *Submitter) validateSingle(p domain.Product, q int, method domain.PaymentMethod) error {
	if !s.sessions.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}
	if p.ID == "" {
		return fmt.Errorf("%w: product id is empty", domain.ErrValidation)
	}
	if q < 1 {
		return fmt.Errorf("%w: quantity %d", domain.ErrValidation, q)
	}
	if p.Stock <= 0 || q > p.Stock {
		return fmt.Errorf("%w: %d requested, %d available", domain.ErrOutOfStock, q, p.Stock)
	}
	if !domain.ValidPaymentMethod(method) {
		return fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, method)
	}
	return nil
}

// begin claims the submitter for a new attempt.
func (s *Submitter) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Validating || s.state == Submitting {
		return domain.ErrAlreadyInProgress
	}
	s.state = Validating
	s.result = domain.OrderResult{}
	s.err = nil
	return nil
}

func (s *Submitter) submit(ctx context.Context, op string, draft domain.OrderDraft) (domain.OrderResult, error) {
	s.transition(Submitting)

	res, err := s.api.CreateOrder(ctx, draft)
	if err != nil {
		s.log.Warn("order rejected", zap.String("op", op), zap.Int("lines", len(draft.Lines)), zap.Error(err))
		return domain.OrderResult{}, s.fail(op, err)
	}
	s.log.Info("order placed", zap.String("op", op), zap.String("order_id", res.OrderID),
		zap.String("payment_method", string(draft.PaymentMethod)))

	s.mu.Lock()
	if !s.disposed {
		s.result = res
	}
	s.state = Succeeded
	s.mu.Unlock()
	return res, nil
}

func (s *Submitter) fail(op string, err error) error {
	wrapped := fmt.Errorf("%s: %w", op, err)
	s.mu.Lock()
	if !s.disposed {
		s.err = wrapped
	}
	s.state = Failed
	s.mu.Unlock()
	return wrapped
}

func (s *Submitter) transition(to State) {
	s.mu.Lock()
	s.state = to
	s.mu.Unlock()
}
