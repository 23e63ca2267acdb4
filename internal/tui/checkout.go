package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/pricing"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

// orderPlacedMsg carries the attempt number of the checkout that sent it.
type orderPlacedMsg struct {
	attempt int64
	result  domain.OrderResult
	err     error
}

// checkoutSeq numbers checkout screens so a late result never lands on a
// screen opened after the one that placed it.
var checkoutSeq atomic.Int64

type copyResultMsg struct{ err error }

// checkoutModel places one order, either for the whole cart or for a single
// product ("buy now").
type checkoutModel struct {
	attempt  int64
	checkout Checkout
	catalog  Catalog
	cart     domain.Cart
	single   *domain.Product
	qty      int
	method   int // index into domain.PaymentMethods
	placing  bool
	done     bool
	result   domain.OrderResult
	err      error
	status   string
}

func newCartCheckout(c Checkout, cat Catalog, cart domain.Cart) checkoutModel {
	return checkoutModel{attempt: checkoutSeq.Add(1), checkout: c, catalog: cat, cart: cart}
}

func newSingleCheckout(c Checkout, cat Catalog, p domain.Product, qty int) checkoutModel {
	return checkoutModel{attempt: checkoutSeq.Add(1), checkout: c, catalog: cat, single: &p, qty: qty}
}

func (m checkoutModel) paymentMethod() domain.PaymentMethod {
	return domain.PaymentMethods[m.method]
}

func (m checkoutModel) totals() pricing.Totals {
	if m.single != nil {
		return pricing.SummarizeProduct(*m.single, m.qty)
	}
	return pricing.Summarize(m.cart, m.catalog)
}

func (m checkoutModel) place() tea.Cmd {
	c := m.checkout
	method, attempt := m.paymentMethod(), m.attempt
	if m.single != nil {
		p, q := *m.single, m.qty
		return func() tea.Msg {
			res, err := c.PlaceSingle(context.Background(), p, q, method)
			return orderPlacedMsg{attempt: attempt, result: res, err: err}
		}
	}
	cart := m.cart
	return func() tea.Msg {
		res, err := c.PlaceFromCart(context.Background(), cart, method)
		return orderPlacedMsg{attempt: attempt, result: res, err: err}
	}
}

func (m checkoutModel) Update(msg tea.Msg) (checkoutModel, tea.Cmd) {
	switch msg := msg.(type) {
	case orderPlacedMsg:
		if msg.attempt != m.attempt {
			return m, nil
		}
		m.placing = false
		if errors.Is(msg.err, domain.ErrAlreadyInProgress) {
			m.status = "an earlier order is still being placed, try again shortly"
			return m, nil
		}
		m.err = msg.err
		if msg.err == nil {
			m.done = true
			m.result = msg.result
			m.status = ""
		}

	case copyResultMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "order id copied"
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m checkoutModel) handleKey(msg tea.KeyMsg) (checkoutModel, tea.Cmd) {
	if m.done {
		if msg.String() == "c" {
			id := m.result.OrderID
			return m, func() tea.Msg {
				return copyResultMsg{err: clipboard.WriteAll(id)}
			}
		}
		return m, nil
	}

	n := len(domain.PaymentMethods)
	switch msg.String() {
	case "tab", "down", "j", "right":
		if !m.placing {
			m.method = (m.method + 1) % n
		}
	case "shift+tab", "up", "k", "left":
		if !m.placing {
			m.method = (m.method - 1 + n) % n
		}
	case "enter", "p":
		if m.placing {
			m.status = "order already in progress"
			return m, nil
		}
		m.placing = true
		m.err = nil
		m.status = ""
		return m, m.place()
	}
	return m, nil
}

func (m checkoutModel) View() string {
	var b strings.Builder
	totals := m.totals()

	title := "Checkout"
	if m.single != nil {
		title = "Buy now"
	}
	fmt.Fprintf(&b, " %s\n\n", selectedStyle.Render(title))

	for _, ls := range totals.Lines {
		name := ls.Line.Name
		if m.single != nil {
			name = m.single.Name
		} else if p, ok := m.catalog.Snapshot(ls.Line.ProductID); ok && p.Name != "" {
			name = p.Name
		}
		if name == "" {
			name = ls.Line.ProductID
		}
		fmt.Fprintf(&b, "   %s %s x %s  %s\n",
			normalStyle.Render(fmt.Sprintf("%-28s", truncStr(name, 28))),
			dimStyle.Render(fmt.Sprintf("%3d", ls.Line.Quantity)),
			dimStyle.Render(pricing.Format(ls.UnitPrice)),
			priceStyle.Render(pricing.Format(ls.Total)))
	}
	b.WriteString("\n")
	b.WriteString(totalsView(totals))

	fmt.Fprintf(&b, "\n %s\n", sectionHeaderStyle.Render("payment"))
	for i, pm := range domain.PaymentMethods {
		marker := "( )"
		label := dimStyle.Render(pm.Label())
		if i == m.method {
			marker = accentStyle.Render("(•)")
			label = selectedStyle.Render(pm.Label())
		}
		fmt.Fprintf(&b, "   %s %s\n", marker, label)
	}

	b.WriteString("\n")
	switch {
	case m.done:
		fmt.Fprintf(&b, " %s %s\n", okStyle.Render("order placed:"), selectedStyle.Render(m.result.OrderID))
	case m.placing:
		b.WriteString(" " + dimStyle.Render("placing order...") + "\n")
	case m.err != nil:
		b.WriteString(" " + rejectStyle.Render(checkoutError(m.err)) + "\n")
	}
	if m.status != "" {
		b.WriteString(" " + dimStyle.Render(m.status) + "\n")
	}
	return b.String()
}

// checkoutError explains a failed attempt. Server rejections show the
// server's reason unchanged.
func checkoutError(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return "your cart is empty"
	case errors.Is(err, domain.ErrOutOfStock):
		return "not enough stock for that quantity"
	case errors.Is(err, domain.ErrUnauthenticated) && !errors.Is(err, domain.ErrNetwork):
		return "please sign in to place an order"
	default:
		return "order failed: " + errText(err)
	}
}

func (m checkoutModel) helpKeys() string {
	if m.done {
		return helpBar("c", "copy order id", "1-4", "tabs", "q", "quit")
	}
	return helpBar("tab", "payment", "enter", "place order", "esc", "back")
}
