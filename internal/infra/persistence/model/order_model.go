package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table.
// idx_orders_open_user keeps at most one unordered order per user.
type OrderModel struct {
	ID                int64     `gorm:"primaryKey;autoIncrement"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index;index:idx_orders_open_user,unique,where:ordered = false"`
	RefCode           string    `gorm:"type:varchar(20);index"`
	StartDate         time.Time `gorm:"not null"`
	OrderedDate       time.Time `gorm:"not null"`
	Ordered           bool      `gorm:"not null;default:false"`
	ShippingAddressID *int64
	BillingAddressID  *int64
	PaymentID         *int64
	CouponID          *int64
	BeingDelivered    bool `gorm:"not null;default:false"`
	Received          bool `gorm:"not null;default:false"`
	RefundRequested   bool `gorm:"not null;default:false"`
	RefundGranted     bool `gorm:"not null;default:false"`

	Lines           []*OrderLineModel `gorm:"foreignKey:OrderID"`
	ShippingAddress *AddressModel     `gorm:"foreignKey:ShippingAddressID;constraint:OnDelete:SET NULL"`
	BillingAddress  *AddressModel     `gorm:"foreignKey:BillingAddressID;constraint:OnDelete:SET NULL"`
	Payment         *PaymentModel     `gorm:"foreignKey:PaymentID;constraint:OnDelete:SET NULL"`
	Coupon          *CouponModel      `gorm:"foreignKey:CouponID;constraint:OnDelete:SET NULL"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineModel mirrors the 'order_lines' table.
// idx_order_lines_open keeps at most one unsettled line per (user, product).
type OrderLineModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_order_lines_open,unique,where:settled = false"`
	ProductID int64     `gorm:"not null;index:idx_order_lines_open,unique,where:settled = false"`
	Quantity  int       `gorm:"not null;default:1;check:chk_order_lines_quantity,quantity >= 1"`
	Settled   bool      `gorm:"not null;default:false"`
	OrderID   *int64    `gorm:"index"`
	CreatedAt time.Time

	Product *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderLineModel) TableName() string {
	return "order_lines"
}
