package usecase

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
)

// Payment providers keyed by checkout option code.
var PaymentProviders = map[string]string{
	"T": "Tinkoff_bank",
	"Z": "ZberBank",
	"U": "UMoney",
}

// IsPaymentProvider reports whether name is one of the provider route names.
func IsPaymentProvider(name string) bool {
	for _, provider := range PaymentProviders {
		if provider == name {
			return true
		}
	}

	return false
}

// CheckoutInput mirrors the checkout form.
type CheckoutInput struct {
	ShippingAddress  string
	ShippingAddress2 string
	ShippingCountry  string
	ShippingZip      string

	BillingAddress  string
	BillingAddress2 string
	BillingCountry  string
	BillingZip      string

	SameBillingAddress bool
	SetDefaultShipping bool
	UseDefaultShipping bool
	SetDefaultBilling  bool
	UseDefaultBilling  bool

	PaymentOption string
}

// CheckoutOutput is the checkout page view.
type CheckoutOutput struct {
	Order                  *entity.Order
	DefaultShippingAddress *entity.Address
	DefaultBillingAddress  *entity.Address
}

// PaymentOutput is the payment landing page view.
type PaymentOutput struct {
	Order              *entity.Order
	Provider           string
	OneClickPurchasing bool
}

// CheckoutUsecase runs the checkout form and payment hand-off.
type CheckoutUsecase interface {
	CheckoutPage(ctx context.Context, userID uuid.UUID) (*CheckoutOutput, *Result, error)

	// SubmitCheckout resolves addresses and routes to a payment provider.
	// A submission that ends in failure leaves no writes behind.
	SubmitCheckout(ctx context.Context, userID uuid.UUID, input *CheckoutInput) (*Result, error)

	PaymentPage(ctx context.Context, userID uuid.UUID, provider string) (*PaymentOutput, *Result, error)
}
