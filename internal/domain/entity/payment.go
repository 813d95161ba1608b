package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment records a captured charge for an order.
type Payment struct {
	ID        int64
	ChargeID  string // External charge reference.
	UserID    *uuid.UUID
	Amount    decimal.Decimal
	Timestamp time.Time
}

// Coupon is a flat discount identified by its code.
type Coupon struct {
	ID     int64
	Code   string
	Amount decimal.Decimal
}

// Refund is a customer's request to return a finalized order.
type Refund struct {
	ID        int64
	OrderID   int64
	Reason    string
	Email     string
	Accepted  bool
	CreatedAt time.Time
}
