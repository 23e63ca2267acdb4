package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/guard"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/pricing"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

// AuthAPI signs users in and registers new accounts.
type AuthAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	Register(ctx context.Context, reg domain.Registration) error
}

// OrdersAPI lists placed orders.
type OrdersAPI interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	SellerOrders(ctx context.Context) ([]domain.Order, error)
}

// API is the part of the storefront client the views call directly.
type API interface {
	AuthAPI
	OrdersAPI
}

// Sessions is the session manager as seen by the views.
type Sessions interface {
	Current() (domain.Session, bool)
	Establish(token string) (domain.Session, error)
	Terminate() error
}

// Catalog serves product pages and live snapshots.
type Catalog interface {
	pricing.Lookup
	List(ctx context.Context, brand string, page int) ([]domain.Product, error)
	Product(ctx context.Context, id string) (domain.Product, error)
	Products(ctx context.Context, ids []string) (pricing.Snapshots, error)
}

// Cart is the cart store.
type Cart interface {
	Cart() domain.Cart
	Busy() bool
	Load(ctx context.Context) (domain.Cart, error)
	Add(ctx context.Context, productID string, q int) (domain.Cart, error)
	SetQuantity(ctx context.Context, productID string, q int) (domain.Cart, error)
	Remove(ctx context.Context, productID string) (domain.Cart, error)
}

// Checkout is the order submitter.
type Checkout interface {
	PlaceFromCart(ctx context.Context, cart domain.Cart, method domain.PaymentMethod) (domain.OrderResult, error)
	PlaceSingle(ctx context.Context, p domain.Product, q int, method domain.PaymentMethod) (domain.OrderResult, error)
}

// Deps wires the views to the storefront services.
type Deps struct {
	API      API
	Sessions Sessions
	Catalog  Catalog
	Cart     Cart
	Checkout Checkout
}

type view int

const (
	viewProducts view = iota
	viewCart
	viewOrders
	viewSales
	viewCheckout
	viewLogin
	viewUnauthorized
)

// navigateMsg asks the app to show the view for path.
type navigateMsg struct {
	path string
}

type loggedOutMsg struct{ err error }

type tab struct {
	key  string
	name string
	path string
	v    view
}

var tabs = []tab{
	{"1", "Shop", "/", viewProducts},
	{"2", "Cart", "/cart", viewCart},
	{"3", "Orders", "/orders", viewOrders},
	{"4", "Sales", "/seller/orders", viewSales},
}

// App is the root Bubbletea model. Every view change goes through the
// access guard; redirects show the sign-in or unauthorized view.
type App struct {
	deps       Deps
	guard      *guard.Guard
	view       view
	products   productsModel
	cart       cartModel
	orders     ordersModel
	sales      ordersModel
	checkout   checkoutModel
	login      loginModel
	returnTo   string     // path to open after sign-in
	denied     string     // path refused for the current role
	pending    *buyNowMsg // product awaiting a buy-now checkout
	helpOpen   bool
	helpCursor int
	status     string
	width      int
	height     int
	frame      int // logo shimmer animation frame
}

// NewApp creates a new TUI application.
func NewApp(d Deps) App {
	return App{
		deps:     d,
		guard:    guard.New(d.Sessions),
		products: newProductsModel(d.Catalog),
		cart:     newCartModel(d.Cart, d.Catalog),
		orders:   newOrdersModel(d.API, false),
		sales:    newOrdersModel(d.API, true),
		login:    newLoginModel(d.API, d.Sessions),
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.products.Init(), shimmerTickCmd()}
	if a.signedIn() {
		cmds = append(cmds, loadCartCmd(a.deps.Cart, a.deps.Catalog))
	}
	return tea.Batch(cmds...)
}

func (a App) signedIn() bool {
	_, ok := a.deps.Sessions.Current()
	return ok
}

// navigate shows the view for path if the guard allows it.
func (a App) navigate(path string) (App, tea.Cmd) {
	if path == "/login" {
		return a.showLogin("/"), nil
	}
	switch a.guard.AuthorizeRoute(path) {
	case guard.RedirectLogin:
		return a.showLogin(path), nil
	case guard.RedirectUnauthorized:
		a.denied = path
		a.view = viewUnauthorized
		return a, nil
	}
	return a.open(path)
}

func (a App) showLogin(returnTo string) App {
	a.returnTo = returnTo
	a.login = newLoginModel(a.deps.API, a.deps.Sessions)
	a.view = viewLogin
	return a
}

func (a App) open(path string) (App, tea.Cmd) {
	a.status = ""
	switch path {
	case "/":
		if a.view == viewProducts {
			return a, nil
		}
		a.view = viewProducts
		return a, a.products.Init()
	case "/cart":
		a.view = viewCart
		a.cart.loading = true
		return a, a.cart.Init()
	case "/orders":
		a.view = viewOrders
		a.orders = newOrdersModel(a.deps.API, false)
		return a, a.orders.Init()
	case "/seller/orders":
		a.view = viewSales
		a.sales = newOrdersModel(a.deps.API, true)
		return a, a.sales.Init()
	case "/checkout":
		a.view = viewCheckout
		a.checkout = newCartCheckout(a.deps.Checkout, a.deps.Catalog, a.deps.Cart.Cart())
		return a, nil
	}

	if params, ok := guard.Match("/checkout/:productId", path); ok {
		if a.pending != nil && a.pending.product.ID == params["productId"] {
			p := a.pending
			a.pending = nil
			a.view = viewCheckout
			a.checkout = newSingleCheckout(a.deps.Checkout, a.deps.Catalog, p.product, p.qty)
			return a, nil
		}
	}
	a.view = viewProducts
	return a, nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + blank(1) + help(1) = 5 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.products, _ = a.products.Update(bodyMsg)
		a.cart, _ = a.cart.Update(bodyMsg)
		a.orders, _ = a.orders.Update(bodyMsg)
		a.sales, _ = a.sales.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case navigateMsg:
		return a.navigate(msg.path)

	case loggedInMsg:
		a.login, _ = a.login.Update(msg)
		target := a.returnTo
		a.returnTo = ""
		if target == "" || target == "/login" {
			target = "/"
		}
		// The checkout summary needs the cart, which the cart view loads.
		if target == "/checkout" {
			target = "/cart"
		}
		a.view = viewProducts
		next, cmd := a.navigate(target)
		if target == "/cart" {
			return next, cmd
		}
		return next, tea.Batch(cmd, loadCartCmd(a.deps.Cart, a.deps.Catalog))

	case loginFailedMsg:
		a.login, _ = a.login.Update(msg)
		return a, nil

	case loggedOutMsg:
		if msg.err != nil {
			a.status = "sign out failed: " + msg.err.Error()
		} else {
			a.status = "signed out"
		}
		a.cart = newCartModel(a.deps.Cart, a.deps.Catalog)
		a.cart.cart = domain.Cart{}
		a.view = viewProducts
		return a, nil

	case addToCartMsg:
		switch a.guard.AuthorizeRoute("/cart") {
		case guard.RedirectLogin:
			a = a.showLogin("/")
			a.login.status = "sign in to add items to your cart"
			return a, nil
		case guard.RedirectUnauthorized:
			return a.navigate("/cart")
		}
		store := a.deps.Cart
		return a, func() tea.Msg {
			cart, err := store.Add(context.Background(), msg.productID, msg.qty)
			return cartUpdatedMsg{cart: cart, err: err}
		}

	case buyNowMsg:
		a.pending = &msg
		return a.navigate("/checkout/" + msg.product.ID)

	case productsLoadedMsg, productLoadedMsg, openImageMsg:
		var cmd tea.Cmd
		a.products, cmd = a.products.Update(msg)
		return a, cmd

	case cartLoadedMsg:
		if a.sessionLost(msg.err) {
			return a.showLogin("/cart"), nil
		}
		a.cart, _ = a.cart.Update(msg)
		return a, nil

	case cartUpdatedMsg:
		if a.sessionLost(msg.err) {
			return a.showLogin("/cart"), nil
		}
		a.cart, _ = a.cart.Update(msg)
		a.products, _ = a.products.Update(msg)
		return a, nil

	case ordersLoadedMsg:
		if msg.seller {
			a.sales, _ = a.sales.Update(msg)
		} else {
			a.orders, _ = a.orders.Update(msg)
		}
		return a, nil

	case orderPlacedMsg:
		a.checkout, _ = a.checkout.Update(msg)
		a.cart, _ = a.cart.Update(msg)
		return a, nil

	case copyResultMsg:
		a.checkout, _ = a.checkout.Update(msg)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc":
				a.helpOpen = false
			case "q":
				return a, tea.Quit
			case "j", "down":
				if a.helpCursor < len(helpItems)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			}
			return a, nil
		}

		if a.isEditing() {
			if msg.String() == "esc" && a.view == viewLogin {
				a.returnTo = ""
				return a.open("/")
			}
			break
		}

		switch key := msg.String(); key {
		case "h":
			a.helpOpen = true
			a.helpCursor = 0
			return a, nil
		case "q":
			return a, tea.Quit
		case "1", "2", "3", "4":
			for _, t := range tabs {
				if t.key == key {
					return a.navigate(t.path)
				}
			}
		case "L":
			return a.navigate("/login")
		case "X":
			sessions := a.deps.Sessions
			return a, func() tea.Msg { return loggedOutMsg{err: sessions.Terminate()} }
		case "esc":
			switch {
			case a.view == viewCheckout && a.checkout.single != nil:
				return a.open("/")
			case a.view == viewCheckout:
				return a.navigate("/cart")
			case a.view == viewUnauthorized:
				return a.open("/")
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewProducts:
		a.products, cmd = a.products.Update(msg)
	case viewCart:
		a.cart, cmd = a.cart.Update(msg)
	case viewOrders:
		a.orders, cmd = a.orders.Update(msg)
	case viewSales:
		a.sales, cmd = a.sales.Update(msg)
	case viewCheckout:
		a.checkout, cmd = a.checkout.Update(msg)
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	}
	return a, cmd
}

// sessionLost reports whether err means the session is gone, so the user
// must sign in again.
func (a App) sessionLost(err error) bool {
	return errors.Is(err, domain.ErrUnauthenticated) && !a.signedIn()
}

func (a App) isEditing() bool {
	switch a.view {
	case viewLogin:
		return true
	case viewProducts:
		return a.products.editing
	}
	return false
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)

	statsLine := metaStyle.Render("guest · L to sign in")
	if s, ok := a.deps.Sessions.Current(); ok {
		parts := []string{string(s.Role)}
		if n := a.cart.cart.TotalQuantity(); n > 0 {
			parts = append(parts, fmt.Sprintf("%d in cart", n))
		}
		statsLine = metaStyle.Render(strings.Join(parts, " · "))
	}
	if a.status != "" {
		statsLine += metaStyle.Render(" · ") + dimStyle.Render(a.status)
	}

	header := center(logo, a.width) + "\n" + center(statsLine, a.width)

	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := max((colWidth-labelWidth)/2, 0)
		rightPad := max(colWidth-labelWidth-leftPad, 0)
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}

	var body, help string
	switch a.view {
	case viewProducts:
		body, help = a.products.View(), a.products.helpKeys()
	case viewCart:
		body, help = a.cart.View(), a.cart.helpKeys()
	case viewOrders:
		body, help = a.orders.View(), a.orders.helpKeys()
	case viewSales:
		body, help = a.sales.View(), a.sales.helpKeys()
	case viewCheckout:
		body, help = a.checkout.View(), a.checkout.helpKeys()
	case viewLogin:
		body, help = a.login.View(), a.login.helpKeys()
	case viewUnauthorized:
		body = unauthorizedView(a.denied)
		help = helpBar("1-4", "tabs", "esc", "back", "q", "quit")
	}

	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = helpBar("j/k", "nav", "esc", "close")
	}

	chrome := 5
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n\n%s", header, tabBar.String(), body, help)
}

func center(s string, width int) string {
	pad := max((width-lipgloss.Width(s))/2, 0)
	return strings.Repeat(" ", pad) + s
}

func unauthorizedView(path string) string {
	var b strings.Builder
	b.WriteString("\n " + rejectStyle.Render("Unauthorized") + "\n\n")
	b.WriteString(" " + normalStyle.Render("your account cannot open "+path+".") + "\n")
	b.WriteString(" " + dimStyle.Render("sign in with a seller account to manage products and sales.") + "\n")
	return b.String()
}
