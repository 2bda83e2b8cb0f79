package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is either a user's open cart (complete=false) or an immutable
// purchase record (complete=true). A user has at most one open order.
type Order struct {
	ID            string      `json:"id"`
	UserID        *string     `json:"userId,omitempty"`
	Complete      bool        `json:"complete"`
	TransactionID string      `json:"transactionId,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	Items         []OrderItem `json:"items"`
}

// OrderItem is a (product, quantity) line within an order. ProductID is
// nil once the product has been deleted; such lines render with an
// empty name and a zero unit price.
type OrderItem struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"orderId"`
	ProductID   *string         `json:"productId,omitempty"`
	ProductName string          `json:"productName,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	AddedAt     time.Time       `json:"addedAt"`
}

// LineTotal is the item's contribution to the order total. Items whose
// product was deleted carry a zero unit price and contribute nothing.
func (i OrderItem) LineTotal() decimal.Decimal {
	if i.ProductID == nil {
		return decimal.Zero
	}
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total sums the line totals of all items.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// ItemCount sums the quantities of all items.
func (o Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}
