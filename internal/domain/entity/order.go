package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine is one product in a user's cart.
// A line is open while Settled is false; at most one open line exists per (user, product).
type OrderLine struct {
	ID        int64
	UserID    uuid.UUID
	ProductID int64
	Product   *Product
	Quantity  int
	Settled   bool
	OrderID   *int64 // Set once the line is attached to an order.
	CreatedAt time.Time
}

// LineTotal is quantity times unit price, truncated to an integer.
func (l *OrderLine) LineTotal() int64 {
	if l.Product == nil {
		return 0
	}

	return l.Product.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity))).IntPart()
}

// SavedAmount is how much the discount saves on this line.
func (l *OrderLine) SavedAmount() decimal.Decimal {
	if l.Product == nil || !l.Product.HasDiscount() {
		return decimal.Zero
	}
	qty := decimal.NewFromInt(int64(l.Quantity))

	return l.Product.Price.Sub(l.Product.DiscountPrice).Mul(qty)
}

// Order is a user's cart until Ordered is set, and a purchase afterwards.
// At most one order with Ordered=false exists per user.
type Order struct {
	ID                int64
	UserID            uuid.UUID
	RefCode           string
	StartDate         time.Time
	OrderedDate       time.Time
	Ordered           bool
	Lines             []*OrderLine
	ShippingAddressID *int64
	ShippingAddress   *Address
	BillingAddressID  *int64
	BillingAddress    *Address
	PaymentID         *int64
	CouponID          *int64
	Coupon            *Coupon
	BeingDelivered    bool
	Received          bool
	RefundRequested   bool
	RefundGranted     bool
}

// Total sums the truncated line totals and subtracts the truncated coupon amount.
// The result is not floored at zero.
func (o *Order) Total() int64 {
	var total int64
	for _, line := range o.Lines {
		total += line.LineTotal()
	}
	if o.Coupon != nil {
		total -= o.Coupon.Amount.IntPart()
	}

	return total
}

// LineFor returns the order's line for productID, or nil.
func (o *Order) LineFor(productID int64) *OrderLine {
	for _, line := range o.Lines {
		if line.ProductID == productID {
			return line
		}
	}

	return nil
}

// IsEmpty reports whether the order has no lines.
func (o *Order) IsEmpty() bool {
	return len(o.Lines) == 0
}
