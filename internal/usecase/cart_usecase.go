package usecase

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
)

// CartUsecase manages the user's current order.
type CartUsecase interface {
	// AddToCart adds one unit of the product, creating the order and line as needed.
	AddToCart(ctx context.Context, userID uuid.UUID, productID int64) (*Result, error)

	// RemoveFromCart deletes the product's line from the current order.
	RemoveFromCart(ctx context.Context, userID uuid.UUID, productID int64) (*Result, error)

	// DecrementLine removes one unit; the line is deleted when it reaches zero.
	DecrementLine(ctx context.Context, userID uuid.UUID, productID int64) (*Result, error)

	// OrderSummary returns the current order, or a redirect when there is none.
	OrderSummary(ctx context.Context, userID uuid.UUID) (*entity.Order, *Result, error)

	// ApplyCoupon attaches a coupon to the current order by code.
	ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*Result, error)
}
