package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CartLine is one product/quantity pair in the user's cart.
type CartLine struct {
	ProductID      string          `json:"product_id"`
	Name           string          `json:"name,omitempty"`
	Quantity       int             `json:"quantity"`
	UnitPriceAtAdd decimal.Decimal `json:"price"`
}

// Cart is the ordered line list owned by the authenticated user, unique by product.
type Cart struct {
	Lines []CartLine `json:"items"`
}

// CartItemInput is the line shape POST /cart accepts. Prices are never sent.
type CartItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Line returns the line for productID, if present.
func (c Cart) Line(productID string) (CartLine, bool) {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return CartLine{}, false
}

// Clone returns a copy that shares no backing array with c.
func (c Cart) Clone() Cart {
	if c.Lines == nil {
		return Cart{}
	}
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

// Inputs returns the line list in the shape the cart endpoint accepts.
func (c Cart) Inputs() []CartItemInput {
	in := make([]CartItemInput, 0, len(c.Lines))
	for _, l := range c.Lines {
		in = append(in, CartItemInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return in
}

// Validate checks that every line has a product, a positive quantity and
// that no product appears twice.
func (c Cart) Validate() error {
	seen := make(map[string]bool, len(c.Lines))
	for _, l := range c.Lines {
		if l.ProductID == "" {
			return fmt.Errorf("%w: cart line without product id", ErrValidation)
		}
		if l.Quantity < 1 {
			return fmt.Errorf("%w: cart line %s has quantity %d", ErrValidation, l.ProductID, l.Quantity)
		}
		if seen[l.ProductID] {
			return fmt.Errorf("%w: duplicate cart line %s", ErrValidation, l.ProductID)
		}
		seen[l.ProductID] = true
	}
	return nil
}

// TotalQuantity sums the quantities of all lines.
func (c Cart) TotalQuantity() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}
