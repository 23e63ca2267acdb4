package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/pricing"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

var widget = domain.Product{
	ID:              "p1",
	Name:            "Widget",
	Brand:           "Acme",
	UnitPrice:       decimal.NewFromInt(100),
	DiscountPercent: decimal.NewFromInt(20),
	Stock:           3,
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type fakeSessions struct {
	session    domain.Session
	ok         bool
	tokens     []string
	terminated int
}

func guest() *fakeSessions { return &fakeSessions{} }

func signedInAs(role domain.Role) *fakeSessions {
	return &fakeSessions{
		session: domain.Session{SubjectID: "u1", Role: role, ExpiresAt: time.Now().Add(time.Hour)},
		ok:      true,
	}
}

func (f *fakeSessions) Current() (domain.Session, bool) { return f.session, f.ok }

func (f *fakeSessions) Establish(token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, domain.ErrInvalidToken
	}
	f.tokens = append(f.tokens, token)
	f.session = domain.Session{SubjectID: "u1", Role: domain.RoleCustomer, ExpiresAt: time.Now().Add(time.Hour), Token: token}
	f.ok = true
	return f.session, nil
}

func (f *fakeSessions) Terminate() error {
	f.terminated++
	f.session = domain.Session{}
	f.ok = false
	return nil
}

type fakeAPI struct {
	token         string
	loginErr      error
	registerErr   error
	logins        []domain.Credentials
	registrations []domain.Registration
	orders        []domain.Order
	sellerOrders  []domain.Order
	ordersCalls   int
	sellerCalls   int
}

func (f *fakeAPI) Login(_ context.Context, creds domain.Credentials) (string, error) {
	f.logins = append(f.logins, creds)
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.token, nil
}

func (f *fakeAPI) Register(_ context.Context, reg domain.Registration) error {
	f.registrations = append(f.registrations, reg)
	return f.registerErr
}

func (f *fakeAPI) ListOrders(context.Context) ([]domain.Order, error) {
	f.ordersCalls++
	return f.orders, nil
}

func (f *fakeAPI) SellerOrders(context.Context) ([]domain.Order, error) {
	f.sellerCalls++
	return f.sellerOrders, nil
}

type fakeCatalog struct {
	list      []domain.Product
	products  map[string]domain.Product
	lastBrand string
	lastPage  int
}

func newFakeCatalog(ps ...domain.Product) *fakeCatalog {
	c := &fakeCatalog{list: ps, products: make(map[string]domain.Product)}
	for _, p := range ps {
		c.products[p.ID] = p
	}
	return c
}

func (f *fakeCatalog) List(_ context.Context, brand string, page int) ([]domain.Product, error) {
	f.lastBrand, f.lastPage = brand, page
	return f.list, nil
}

func (f *fakeCatalog) Product(_ context.Context, id string) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, errors.New("product not found")
	}
	return p, nil
}

func (f *fakeCatalog) Products(_ context.Context, ids []string) (pricing.Snapshots, error) {
	out := make(pricing.Snapshots, len(ids))
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeCatalog) Snapshot(id string) (domain.Product, bool) {
	p, ok := f.products[id]
	return p, ok
}

type setCall struct {
	productID string
	q         int
}

type fakeCart struct {
	cart     domain.Cart
	err      error
	loads    int
	sets     []setCall
	removed  []string
	inFlight bool
}

func (f *fakeCart) Cart() domain.Cart { return f.cart.Clone() }

func (f *fakeCart) Busy() bool { return f.inFlight }

func (f *fakeCart) Load(context.Context) (domain.Cart, error) {
	f.loads++
	if f.err != nil {
		return f.cart.Clone(), f.err
	}
	return f.cart.Clone(), nil
}

func (f *fakeCart) Add(_ context.Context, productID string, q int) (domain.Cart, error) {
	if f.err != nil {
		return domain.Cart{}, f.err
	}
	for i, l := range f.cart.Lines {
		if l.ProductID == productID {
			f.cart.Lines[i].Quantity += q
			return f.cart.Clone(), nil
		}
	}
	f.cart.Lines = append(f.cart.Lines, domain.CartLine{ProductID: productID, Quantity: q})
	return f.cart.Clone(), nil
}

func (f *fakeCart) SetQuantity(_ context.Context, productID string, q int) (domain.Cart, error) {
	f.sets = append(f.sets, setCall{productID, q})
	if f.err != nil {
		return domain.Cart{}, f.err
	}
	for i, l := range f.cart.Lines {
		if l.ProductID == productID {
			f.cart.Lines[i].Quantity = q
		}
	}
	return f.cart.Clone(), nil
}

func (f *fakeCart) Remove(_ context.Context, productID string) (domain.Cart, error) {
	f.removed = append(f.removed, productID)
	kept := f.cart.Lines[:0]
	for _, l := range f.cart.Lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	f.cart.Lines = kept
	return f.cart.Clone(), nil
}

type fakeCheckout struct {
	result  domain.OrderResult
	err     error
	carts   []domain.Cart
	singles []domain.OrderLine
	methods []domain.PaymentMethod
}

func (f *fakeCheckout) PlaceFromCart(_ context.Context, cart domain.Cart, method domain.PaymentMethod) (domain.OrderResult, error) {
	f.carts = append(f.carts, cart)
	f.methods = append(f.methods, method)
	return f.result, f.err
}

func (f *fakeCheckout) PlaceSingle(_ context.Context, p domain.Product, q int, method domain.PaymentMethod) (domain.OrderResult, error) {
	f.singles = append(f.singles, domain.OrderLine{ProductID: p.ID, Quantity: q})
	f.methods = append(f.methods, method)
	return f.result, f.err
}

type fixture struct {
	api      *fakeAPI
	sessions *fakeSessions
	catalog  *fakeCatalog
	cart     *fakeCart
	checkout *fakeCheckout
}

func newFixture(s *fakeSessions) *fixture {
	return &fixture{
		api:      &fakeAPI{token: "tok"},
		sessions: s,
		catalog:  newFakeCatalog(widget),
		cart:     &fakeCart{},
		checkout: &fakeCheckout{result: domain.OrderResult{OrderID: "ord-12345678", Status: "processing"}},
	}
}

func (f *fixture) app() App {
	a := NewApp(Deps{
		API:      f.api,
		Sessions: f.sessions,
		Catalog:  f.catalog,
		Cart:     f.cart,
		Checkout: f.checkout,
	})
	a.width = 80
	a.height = 30
	return a
}
