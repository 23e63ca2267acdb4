package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is a label passed through to the API; nothing is charged client-side.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentPayPal     PaymentMethod = "paypal"
	PaymentCOD        PaymentMethod = "cod"
)

// PaymentMethods is the checkout cycle order.
var PaymentMethods = []PaymentMethod{PaymentCreditCard, PaymentPayPal, PaymentCOD}

// ValidPaymentMethod returns true if m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

// Label returns the display name of the payment method.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCreditCard:
		return "Credit Card"
	case PaymentPayPal:
		return "PayPal"
	case PaymentCOD:
		return "Cash on Delivery"
	default:
		return string(m)
	}
}

// Initial statuses sent with every new order.
const (
	PaymentStatusPending  = "pending"
	OrderStatusProcessing = "processing"
)

// OrderLine is a product/quantity pair in an order request.
type OrderLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderDraft is the payload of POST /order. Prices are omitted; the API is the
// price authority.
type OrderDraft struct {
	Lines         []OrderLine   `json:"products"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentStatus string        `json:"payment_status"`
	OrderStatus   string        `json:"order_status"`
}

// NewOrderDraft builds a draft with the initial payment and order statuses.
func NewOrderDraft(lines []OrderLine, method PaymentMethod) OrderDraft {
	return OrderDraft{
		Lines:         lines,
		PaymentMethod: method,
		PaymentStatus: PaymentStatusPending,
		OrderStatus:   OrderStatusProcessing,
	}
}

// OrderResult is what the API assigns to an accepted order.
type OrderResult struct {
	OrderID string `json:"_id"`
	Status  string `json:"order_status"`
}

// ProductInfo is the product summary embedded in order items.
type ProductInfo struct {
	Name string `json:"name"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ProductID       string          `json:"product_id"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
	ProductInfo     *ProductInfo    `json:"product_info,omitempty"`
}

// DisplayName returns the product name, or a placeholder when the API omitted it.
func (i OrderItem) DisplayName() string {
	if i.ProductInfo != nil && i.ProductInfo.Name != "" {
		return i.ProductInfo.Name
	}
	return "Product"
}

// Order is a placed order as listed by GET /orders and GET /product/seller.
type Order struct {
	ID            string          `json:"_id"`
	CreatedAt     time.Time       `json:"createdAt"`
	OrderStatus   string          `json:"order_status"`
	PaymentStatus string          `json:"payment_status"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"`
	Items         []OrderItem     `json:"items"`
	TotalSummary  decimal.Decimal `json:"total_summary"`
}

// ShortID returns the first eight characters of the order ID.
func (o Order) ShortID() string {
	if len(o.ID) <= 8 {
		return o.ID
	}
	return o.ID[:8]
}
