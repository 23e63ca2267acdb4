package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/client"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

func TestCheckoutCyclesPaymentMethod(t *testing.T) {
	m := newCartCheckout(&fakeCheckout{}, newFakeCatalog(widget), domain.Cart{})
	if m.paymentMethod() != domain.PaymentCreditCard {
		t.Fatalf("default method = %s, want credit_card", m.paymentMethod())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.paymentMethod() != domain.PaymentPayPal {
		t.Errorf("after tab: %s, want paypal", m.paymentMethod())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.paymentMethod() != domain.PaymentCOD {
		t.Errorf("after wrapping back: %s, want cod", m.paymentMethod())
	}
}

func TestCheckoutPlaceFromCart(t *testing.T) {
	fc := &fakeCheckout{result: domain.OrderResult{OrderID: "ord-1"}}
	cart := domain.Cart{Lines: []domain.CartLine{{ProductID: "p1", Quantity: 2}}}
	m := newCartCheckout(fc, newFakeCatalog(widget), cart)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.placing {
		t.Fatal("expected placing after enter")
	}
	if cmd == nil {
		t.Fatal("expected an order command")
	}
	m, _ = m.Update(cmd())

	if len(fc.carts) != 1 || len(fc.carts[0].Lines) != 1 {
		t.Fatalf("PlaceFromCart calls = %+v", fc.carts)
	}
	if fc.methods[0] != domain.PaymentPayPal {
		t.Errorf("method = %s, want paypal", fc.methods[0])
	}
	if !m.done || m.placing {
		t.Errorf("done=%v placing=%v", m.done, m.placing)
	}
	if !strings.Contains(m.View(), "ord-1") {
		t.Error("view should show the order id")
	}
}

func TestCheckoutSecondEnterWhilePlacing(t *testing.T) {
	fc := &fakeCheckout{}
	m := newCartCheckout(fc, newFakeCatalog(widget), domain.Cart{Lines: []domain.CartLine{{ProductID: "p1", Quantity: 1}}})

	m, first := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, second := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if first == nil {
		t.Fatal("expected the first enter to submit")
	}
	if second != nil {
		t.Error("a second enter while placing must not submit again")
	}
	if m.status != "order already in progress" {
		t.Errorf("status = %q", m.status)
	}
}

func TestCheckoutSingleUsesPlaceSingle(t *testing.T) {
	fc := &fakeCheckout{result: domain.OrderResult{OrderID: "ord-2"}}
	m := newSingleCheckout(fc, newFakeCatalog(), widget, 2)

	out := m.View()
	for _, want := range []string{"Buy now", "Widget", "$160.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	cmd()
	if len(fc.singles) != 1 || fc.singles[0] != (domain.OrderLine{ProductID: "p1", Quantity: 2}) {
		t.Errorf("PlaceSingle calls = %+v", fc.singles)
	}
	if len(fc.carts) != 0 {
		t.Error("buy now must not order the cart")
	}
}

func TestCheckoutRejectionShowsServerReason(t *testing.T) {
	m := newSingleCheckout(&fakeCheckout{}, newFakeCatalog(), widget, 1)
	m.placing = true
	m, _ = m.Update(orderPlacedMsg{attempt: m.attempt, err: &client.HTTPError{StatusCode: 400, Message: "Insufficient stock for Widget"}})
	if m.placing || m.done {
		t.Errorf("placing=%v done=%v", m.placing, m.done)
	}
	if !strings.Contains(m.View(), "Insufficient stock for Widget") {
		t.Errorf("view should show the server reason:\n%s", m.View())
	}
}

func TestCheckoutErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"empty", domain.ErrEmptyCart, "your cart is empty"},
		{"stock", domain.ErrOutOfStock, "not enough stock"},
		{"signed out", domain.ErrUnauthenticated, "please sign in"},
		{"server 401", &client.HTTPError{StatusCode: 401, Message: "jwt expired"}, "jwt expired"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := checkoutError(tc.err); !strings.Contains(got, tc.want) {
				t.Errorf("checkoutError(%v) = %q, want to contain %q", tc.err, got, tc.want)
			}
		})
	}
}

func TestCheckoutBusySubmitterLetsUserRetry(t *testing.T) {
	m := newSingleCheckout(&fakeCheckout{}, newFakeCatalog(), widget, 1)
	m.placing = true
	m, _ = m.Update(orderPlacedMsg{attempt: m.attempt, err: domain.ErrAlreadyInProgress})
	if m.placing || m.done || m.err != nil {
		t.Errorf("placing=%v done=%v err=%v", m.placing, m.done, m.err)
	}
	if !strings.Contains(m.status, "still being placed") {
		t.Errorf("status = %q", m.status)
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Error("enter should place the order again")
	}
}

func TestCheckoutDropsResultOfAnotherScreen(t *testing.T) {
	first := newCartCheckout(&fakeCheckout{}, newFakeCatalog(widget), domain.Cart{Lines: []domain.CartLine{{ProductID: "p1", Quantity: 1}}})
	second := newSingleCheckout(&fakeCheckout{}, newFakeCatalog(), widget, 1)
	if first.attempt == second.attempt {
		t.Fatal("each checkout screen needs its own attempt number")
	}
	second.placing = true
	second, _ = second.Update(orderPlacedMsg{attempt: first.attempt, result: domain.OrderResult{OrderID: "cart-order-1"}})
	if second.done || second.result.OrderID != "" || !second.placing {
		t.Errorf("late result landed on the wrong screen: done=%v result=%q", second.done, second.result.OrderID)
	}
}

func TestCheckoutCopyAfterSuccess(t *testing.T) {
	m := newSingleCheckout(&fakeCheckout{}, newFakeCatalog(), widget, 1)
	_, cmd := m.Update(runeKey("c"))
	if cmd != nil {
		t.Error("copy is only offered after an order is placed")
	}

	m.done = true
	m.result = domain.OrderResult{OrderID: "ord-3"}
	_, cmd = m.Update(runeKey("c"))
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	m, _ = m.Update(copyResultMsg{})
	if m.status != "order id copied" {
		t.Errorf("status = %q", m.status)
	}
}
