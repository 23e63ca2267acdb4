package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/pricing"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

// cartLoadedMsg carries a fresh server cart. Product snapshots for its lines
// have been refreshed in the catalog.
type cartLoadedMsg struct {
	cart domain.Cart
	err  error
}

// cartUpdatedMsg carries the result of a cart mutation.
type cartUpdatedMsg struct {
	cart domain.Cart
	err  error
}

type cartModel struct {
	store   Cart
	catalog Catalog
	cart    domain.Cart
	cursor  int
	loading bool
	busy    bool
	status  string
	err     error
	width   int
	height  int
}

func newCartModel(store Cart, c Catalog) cartModel {
	return cartModel{store: store, catalog: c, cart: store.Cart()}
}

func (m cartModel) Init() tea.Cmd {
	return loadCartCmd(m.store, m.catalog)
}

// loadCartCmd fetches the cart and refreshes product snapshots for its lines.
// A snapshot failure keeps the cart and falls back to prices at add time.
func loadCartCmd(store Cart, c Catalog) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		cart, err := store.Load(ctx)
		if err != nil {
			return cartLoadedMsg{cart: cart, err: err}
		}
		ids := make([]string, 0, len(cart.Lines))
		for _, l := range cart.Lines {
			ids = append(ids, l.ProductID)
		}
		c.Products(ctx, ids) //nolint:errcheck // prices fall back to the cart line
		return cartLoadedMsg{cart: cart}
	}
}

func (m cartModel) mutate(f func(ctx context.Context) (domain.Cart, error)) tea.Cmd {
	return func() tea.Msg {
		cart, err := f(context.Background())
		return cartUpdatedMsg{cart: cart, err: err}
	}
}

func (m cartModel) Update(msg tea.Msg) (cartModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case cartLoadedMsg:
		m.loading = false
		if errors.Is(msg.err, domain.ErrAlreadyInProgress) {
			return m, nil
		}
		m.err = msg.err
		m.cart = msg.cart
		if msg.err != nil {
			m.cart = m.store.Cart()
		}
		m.clampCursor()

	case cartUpdatedMsg:
		// A rejected call means another change is still being saved.
		m.busy = m.store.Busy()
		m.cart = msg.cart
		if msg.err != nil {
			m.cart = m.store.Cart()
		}
		switch {
		case errors.Is(msg.err, domain.ErrOutOfStock):
			m.status = "sold out, removed from your cart"
		case errors.Is(msg.err, domain.ErrAlreadyInProgress):
			m.status = "still saving the last change"
		case msg.err != nil:
			m.status = "update failed: " + errText(msg.err)
		default:
			m.status = ""
		}
		m.clampCursor()

	case orderPlacedMsg:
		if msg.err == nil {
			m.cart = m.store.Cart()
			m.clampCursor()
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *cartModel) clampCursor() {
	if m.cursor >= len(m.cart.Lines) {
		m.cursor = len(m.cart.Lines) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m cartModel) handleKey(msg tea.KeyMsg) (cartModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.cart.Lines)-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "r":
		m.loading = true
		return m, loadCartCmd(m.store, m.catalog)
	case "c":
		if m.cart.IsEmpty() {
			m.status = "your cart is empty"
			return m, nil
		}
		return m, func() tea.Msg { return navigateMsg{path: "/checkout"} }
	}

	if m.cursor >= len(m.cart.Lines) {
		return m, nil
	}
	line := m.cart.Lines[m.cursor]
	store := m.store
	switch msg.String() {
	case "+", "=", "right":
		m.busy = true
		return m, m.mutate(func(ctx context.Context) (domain.Cart, error) {
			return store.SetQuantity(ctx, line.ProductID, line.Quantity+1)
		})
	case "-", "left":
		m.busy = true
		return m, m.mutate(func(ctx context.Context) (domain.Cart, error) {
			return store.SetQuantity(ctx, line.ProductID, line.Quantity-1)
		})
	case "d", "x", "delete":
		m.busy = true
		return m, m.mutate(func(ctx context.Context) (domain.Cart, error) {
			return store.Remove(ctx, line.ProductID)
		})
	}
	return m, nil
}

func (m cartModel) View() string {
	var b strings.Builder

	switch {
	case m.loading && m.cart.IsEmpty():
		b.WriteString(" " + dimStyle.Render("loading cart...") + "\n")
		return b.String()
	case m.err != nil && m.cart.IsEmpty():
		b.WriteString(" " + rejectStyle.Render("error: "+errText(m.err)) + "\n")
		return b.String()
	case m.cart.IsEmpty():
		b.WriteString("\n " + dimStyle.Render("your cart is empty. press 1 to browse the shop") + "\n")
		return b.String()
	}

	totals := pricing.Summarize(m.cart, m.catalog)
	for i, ls := range totals.Lines {
		cursor := " "
		nameStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			nameStyle = selectedStyle
		}
		name := ls.Line.Name
		if p, ok := m.catalog.Snapshot(ls.Line.ProductID); ok && p.Name != "" {
			name = p.Name
		}
		if name == "" {
			name = ls.Line.ProductID
		}
		row := fmt.Sprintf(" %s %s %s x %s  %s",
			cursor,
			nameStyle.Render(fmt.Sprintf("%-28s", truncStr(name, 28))),
			dimStyle.Render(fmt.Sprintf("%3d", ls.Line.Quantity)),
			dimStyle.Render(pricing.Format(ls.UnitPrice)),
			priceStyle.Render(pricing.Format(ls.Total)))
		if ls.Discount.IsPositive() {
			row += " " + discountStyle.Render("-"+pricing.Format(ls.Discount))
		}
		b.WriteString(row + "\n")
	}

	b.WriteString("\n")
	b.WriteString(totalsView(totals))

	if m.busy {
		b.WriteString("\n " + dimStyle.Render("saving...") + "\n")
	} else if m.status != "" {
		b.WriteString("\n " + warnStyle.Render(m.status) + "\n")
	}
	return b.String()
}

// totalsView renders the subtotal, shipping, tax and total block shared by
// the cart and checkout views.
func totalsView(t pricing.Totals) string {
	var b strings.Builder
	row := func(label, value string) {
		fmt.Fprintf(&b, "   %s %s\n", sectionHeaderStyle.Render(fmt.Sprintf("%-10s", label)), value)
	}
	row("subtotal", normalStyle.Render(pricing.Format(t.Subtotal)))
	if t.Discount.IsPositive() {
		row("savings", discountStyle.Render(pricing.Format(t.Discount)))
	}
	row("shipping", dimStyle.Render(pricing.Format(t.Shipping)))
	row("tax", dimStyle.Render(pricing.Format(t.Tax)))
	row("total", priceStyle.Render(pricing.Format(t.Grand)))
	return b.String()
}

func (m cartModel) helpKeys() string {
	return helpBar("1-4", "tabs", "j/k", "nav", "+/-", "qty", "d", "remove", "c", "checkout", "r", "refresh", "q", "quit")
}
