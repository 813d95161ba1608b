package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrOrderNotFound is returned when a user has no matching order.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOpenOrderExists is returned when a second unordered order would be created for a user.
	ErrOpenOrderExists = errors.New("user already has an open order")
	// ErrLineNotFound is returned when no open line exists for the (user, product) pair.
	ErrLineNotFound = errors.New("order line not found")
	// ErrOpenLineExists is returned when a second open line would be created for the same product.
	ErrOpenLineExists = errors.New("open order line already exists")
)

// OrderRepository manages orders and their lines.
type OrderRepository interface {
	// FindOpenOrder returns the user's order with ordered=false, fully loaded:
	// lines with products, coupon and addresses.
	FindOpenOrder(ctx context.Context, userID uuid.UUID) (*entity.Order, error)

	// FindOrderByRefCode returns one of the user's orders by reference code.
	FindOrderByRefCode(ctx context.Context, userID uuid.UUID, refCode string) (*entity.Order, error)

	// CreateOrder inserts a new order. Returns ErrOpenOrderExists when the user already has one.
	CreateOrder(ctx context.Context, order *entity.Order) error

	// UpdateOrder stores the order's scalar fields and references.
	UpdateOrder(ctx context.Context, order *entity.Order) error

	// FindOpenLine returns the user's unsettled line for productID.
	FindOpenLine(ctx context.Context, userID uuid.UUID, productID int64) (*entity.OrderLine, error)

	// CreateLine inserts a line. Returns ErrOpenLineExists on a duplicate open line.
	CreateLine(ctx context.Context, line *entity.OrderLine) error

	// AttachLine links a line to an order.
	AttachLine(ctx context.Context, lineID, orderID int64) error

	// UpdateLineQuantity sets the quantity of a line.
	UpdateLineQuantity(ctx context.Context, lineID int64, quantity int) error

	// DeleteLine removes a line.
	DeleteLine(ctx context.Context, lineID int64) error

	// SettleLines marks every line of the order as settled.
	SettleLines(ctx context.Context, orderID int64) error
}
