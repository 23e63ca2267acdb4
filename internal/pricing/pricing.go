// Package pricing computes display totals for products and carts.
//
// Amounts are computed exactly and rounded to cents only when a value leaves
// this package. The API remains the price authority; nothing here is sent
// with an order.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

const places = 2

var hundred = decimal.NewFromInt(100)

// Shipping and Tax are flat for every order.
var (
	Shipping = decimal.Zero
	Tax      = decimal.Zero
)

// Lookup resolves a product snapshot by ID.
type Lookup interface {
	Snapshot(productID string) (domain.Product, bool)
}

// Snapshots is a Lookup over an in-memory set of products.
type Snapshots map[string]domain.Product

// Snapshot implements Lookup.
func (s Snapshots) Snapshot(productID string) (domain.Product, bool) {
	p, ok := s[productID]
	return p, ok
}

func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(places)
}

func discounted(p domain.Product) decimal.Decimal {
	return p.UnitPrice.Mul(hundred.Sub(p.DiscountPercent)).Div(hundred)
}

func qty(q int) decimal.Decimal {
	if q < 0 {
		q = 0
	}
	return decimal.NewFromInt(int64(q))
}

// UnitPrice returns the discounted price of one unit.
func UnitPrice(p domain.Product) decimal.Decimal {
	return round(discounted(p))
}

// LineTotal returns unitPrice * (1 - discount/100) * q.
func LineTotal(p domain.Product, q int) decimal.Decimal {
	return round(discounted(p).Mul(qty(q)))
}

// DiscountAmount returns unitPrice * discount/100 * q.
func DiscountAmount(p domain.Product, q int) decimal.Decimal {
	return round(p.UnitPrice.Mul(p.DiscountPercent).Div(hundred).Mul(qty(q)))
}

// LineSummary is one priced cart line.
type LineSummary struct {
	Line      domain.CartLine
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal

	// Snapshot is false when the product was missing from the lookup and the
	// line was priced at its add-time price.
	Snapshot bool
}

// Totals is the checkout summary block.
type Totals struct {
	Lines    []LineSummary
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Grand    decimal.Decimal
}

func priceLine(l domain.CartLine, lookup Lookup) LineSummary {
	if lookup != nil {
		if p, ok := lookup.Snapshot(l.ProductID); ok {
			return LineSummary{
				Line:      l,
				UnitPrice: UnitPrice(p),
				Discount:  DiscountAmount(p, l.Quantity),
				Total:     LineTotal(p, l.Quantity),
				Snapshot:  true,
			}
		}
	}
	return LineSummary{
		Line:      l,
		UnitPrice: round(l.UnitPriceAtAdd),
		Discount:  decimal.Zero,
		Total:     round(l.UnitPriceAtAdd.Mul(qty(l.Quantity))),
	}
}

// CartSubtotal sums the line totals of cart. Lines whose product lookup
// misses are priced at their add-time unit price with no discount.
func CartSubtotal(cart domain.Cart, lookup Lookup) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range cart.Lines {
		sum = sum.Add(priceLine(l, lookup).Total)
	}
	return sum
}

// GrandTotal adds shipping and tax to subtotal.
func GrandTotal(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(Shipping).Add(Tax)
}

// Summarize prices every line of cart and aggregates the totals.
func Summarize(cart domain.Cart, lookup Lookup) Totals {
	t := Totals{
		Lines:    make([]LineSummary, 0, len(cart.Lines)),
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Shipping: Shipping,
		Tax:      Tax,
	}
	for _, l := range cart.Lines {
		ls := priceLine(l, lookup)
		t.Lines = append(t.Lines, ls)
		t.Subtotal = t.Subtotal.Add(ls.Total)
		t.Discount = t.Discount.Add(ls.Discount)
	}
	t.Grand = GrandTotal(t.Subtotal)
	return t
}

// SummarizeProduct prices a single "buy now" purchase of q units of p.
func SummarizeProduct(p domain.Product, q int) Totals {
	cart := domain.Cart{Lines: []domain.CartLine{{ProductID: p.ID, Name: p.Name, Quantity: q, UnitPriceAtAdd: p.UnitPrice}}}
	return Summarize(cart, Snapshots{p.ID: p})
}

// Format renders d as dollars with two decimals.
func Format(d decimal.Decimal) string {
	return "$" + d.StringFixed(places)
}
