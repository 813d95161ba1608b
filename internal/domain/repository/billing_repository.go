package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// ErrCouponNotFound is returned when no coupon has the requested code.
var ErrCouponNotFound = errors.New("coupon not found")

// CouponRepository looks up coupons.
type CouponRepository interface {
	FindCouponByCode(ctx context.Context, code string) (*entity.Coupon, error)
}

// PaymentRepository stores captured payments.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *entity.Payment) error
}

// RefundRepository stores refund requests.
type RefundRepository interface {
	CreateRefund(ctx context.Context, refund *entity.Refund) error
}
