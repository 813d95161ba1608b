package usecase

import (
	"context"

	"github.com/google/uuid"
)

// FinalizeInput is what the payment provider reports back after capturing the charge.
type FinalizeInput struct {
	Provider string
	ChargeID string
	// SaveCard enables one-click purchasing for later orders.
	SaveCard bool
}

// RefundInput mirrors the refund request form.
type RefundInput struct {
	RefCode string `validate:"required,max=20"`
	Message string `validate:"required"`
	Email   string `validate:"required,email"`
}

// OrderUsecase covers what happens after payment routing.
type OrderUsecase interface {
	// FinalizeOrder records the captured payment and closes the current order.
	FinalizeOrder(ctx context.Context, userID uuid.UUID, input *FinalizeInput) (*Result, error)

	// RequestRefund files a refund for one of the user's finalized orders.
	RequestRefund(ctx context.Context, userID uuid.UUID, input *RefundInput) (*Result, error)
}
