package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentModel mirrors the 'payments' table.
type PaymentModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	ChargeID  string          `gorm:"type:varchar(50);not null"`
	UserID    *uuid.UUID      `gorm:"type:uuid;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Timestamp time.Time       `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (PaymentModel) TableName() string {
	return "payments"
}

// CouponModel mirrors the 'coupons' table.
type CouponModel struct {
	ID     int64           `gorm:"primaryKey;autoIncrement"`
	Code   string          `gorm:"type:varchar(15);uniqueIndex;not null"`
	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (CouponModel) TableName() string {
	return "coupons"
}

// RefundModel mirrors the 'refunds' table.
type RefundModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	OrderID   int64  `gorm:"not null;index"`
	Reason    string `gorm:"type:text;not null"`
	Email     string `gorm:"type:varchar(254);not null"`
	Accepted  bool   `gorm:"not null;default:false"`
	CreatedAt time.Time

	Order *OrderModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (RefundModel) TableName() string {
	return "refunds"
}
