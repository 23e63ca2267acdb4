package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Product is a catalog snapshot as served by GET /product/{id}.
// Only ID, UnitPrice, DiscountPercent and Stock feed pricing and stock checks;
// the rest is display data.
type Product struct {
	ID              string          `json:"_id"`
	Name            string          `json:"name"`
	Brand           string          `json:"brand,omitempty"`
	Type            string          `json:"type,omitempty"`
	Description     string          `json:"description,omitempty"`
	Image           string          `json:"image,omitempty"`
	Images          []string        `json:"images,omitempty"`
	Features        []string        `json:"features,omitempty"`
	Ratings         float64         `json:"ratings,omitempty"`
	UnitPrice       decimal.Decimal `json:"price"`
	DiscountPercent decimal.Decimal `json:"discount"`
	Stock           int             `json:"stock"`
}

// Validate checks the snapshot fields: an ID, a non-negative price,
// a discount within 0..100 and non-negative stock.
func (p Product) Validate() error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: product id is empty", ErrValidation)
	case p.UnitPrice.IsNegative():
		return fmt.Errorf("%w: product %s has negative price", ErrValidation, p.ID)
	case p.DiscountPercent.IsNegative() || p.DiscountPercent.GreaterThan(hundred):
		return fmt.Errorf("%w: product %s discount %s outside 0..100", ErrValidation, p.ID, p.DiscountPercent)
	case p.Stock < 0:
		return fmt.Errorf("%w: product %s has negative stock", ErrValidation, p.ID)
	}
	return nil
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// HasDiscount reports whether a positive discount applies.
func (p Product) HasDiscount() bool {
	return p.DiscountPercent.IsPositive()
}

// ProductFilter narrows the catalog listing.
type ProductFilter struct {
	Brand string
	Page  int
	Limit int
}
