package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	msgNoDefaultShipping   = "No default shipping address available."
	msgNoDefaultBilling    = "No default billing address available."
	msgInvalidShipping     = "Please fill in the required shipping address fields."
	msgInvalidBilling      = "Please fill in the required billing address fields."
	msgNoShippingToCopy    = "There is no shipping address to copy into billing."
	msgInvalidPayment      = "Invalid payment option selected."
	msgUnknownProvider     = "Unknown payment provider."
	msgCheckoutAddressSave = "Addresses saved."
)

// addressForm is the validated subset of one address block of the checkout form.
type addressForm struct {
	Street    string `validate:"required,max=100"`
	Apartment string `validate:"omitempty,max=100"`
	Country   string `validate:"required,iso3166_1_alpha2"`
	Zip       string `validate:"required,max=100"`
}

func (f *addressForm) toEntity(userID uuid.UUID, addressType entity.AddressType, isDefault bool) *entity.Address {
	return &entity.Address{
		UserID:    userID,
		Street:    f.Street,
		Apartment: f.Apartment,
		Country:   f.Country,
		Zip:       f.Zip,
		Type:      addressType,
		Default:   isDefault,
	}
}

func newAddressForm(street, apartment, country, zip string) *addressForm {
	return &addressForm{
		Street:    strings.TrimSpace(street),
		Apartment: strings.TrimSpace(apartment),
		Country:   strings.ToUpper(strings.TrimSpace(country)),
		Zip:       strings.TrimSpace(zip),
	}
}

type checkoutService struct {
	txManager   repository.TransactionManager
	orderRepo   repository.OrderRepository
	addressRepo repository.AddressRepository
	userRepo    repository.UserRepository
	validate    *validator.Validate
	metrics     service.StorefrontMetrics
	logger      *slog.Logger
	now         func() time.Time
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	OrderRepo   repository.OrderRepository
	AddressRepo repository.AddressRepository
	UserRepo    repository.UserRepository
	Metrics     service.StorefrontMetrics
	Logger      *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		txManager:   params.TxManager,
		orderRepo:   params.OrderRepo,
		addressRepo: params.AddressRepo,
		userRepo:    params.UserRepo,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		metrics:     params.Metrics,
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CheckoutPage loads the open order and the user's default addresses.
func (srv *checkoutService) CheckoutPage(ctx context.Context, userID uuid.UUID) (*usecase.CheckoutOutput, *usecase.Result, error) {
	order, err := srv.orderRepo.FindOpenOrder(ctx, userID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, usecase.Info(msgNoActiveOrder, usecase.RouteOrderSummary), nil
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load checkout order")
	}

	output := &usecase.CheckoutOutput{Order: order}

	output.DefaultShippingAddress, err = srv.findDefault(ctx, srv.addressRepo, userID, entity.AddressTypeShipping)
	if err != nil {
		return nil, nil, err
	}
	output.DefaultBillingAddress, err = srv.findDefault(ctx, srv.addressRepo, userID, entity.AddressTypeBilling)
	if err != nil {
		return nil, nil, err
	}

	return output, nil, nil
}

// findDefault returns nil when the user has no default of that type.
func (srv *checkoutService) findDefault(ctx context.Context, addressRepo repository.AddressRepository, userID uuid.UUID, addressType entity.AddressType) (*entity.Address, error) {
	address, err := addressRepo.FindDefaultAddress(ctx, userID, addressType)
	if errors.Is(err, repository.ErrAddressNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find default address")
	}

	return address, nil
}

// checkoutRun carries the state of one submission inside its transaction.
type checkoutRun struct {
	userID      uuid.UUID
	input       *usecase.CheckoutInput
	orderRepo   repository.OrderRepository
	addressRepo repository.AddressRepository
	order       *entity.Order
	shipping    *entity.Address
	warnings    []string
}

func (run *checkoutRun) warn(message string) {
	run.warnings = append(run.warnings, message)
}

// SubmitCheckout resolves shipping, then billing, then routes to the payment provider.
func (srv *checkoutService) SubmitCheckout(ctx context.Context, userID uuid.UUID, input *usecase.CheckoutInput) (*usecase.Result, error) {
	result, err := executeForResult(ctx, srv.txManager, func(factory repository.RepositoryFactory) (*usecase.Result, error) {
		run := &checkoutRun{
			userID:      userID,
			input:       input,
			orderRepo:   factory.NewOrderRepository(),
			addressRepo: factory.NewAddressRepository(),
		}

		order, err := run.orderRepo.FindOpenOrder(ctx, userID)
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, abort(usecase.Info(msgNoActiveOrder, usecase.RouteOrderSummary))
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to find open order")
		}
		run.order = order

		if err := srv.resolveShipping(ctx, run); err != nil {
			return nil, err
		}
		if err := srv.resolveBilling(ctx, run); err != nil {
			return nil, err
		}

		provider, ok := usecase.PaymentProviders[input.PaymentOption]
		if !ok {
			return nil, abort(usecase.Warning(msgInvalidPayment, usecase.RouteCheckout))
		}

		if err := run.orderRepo.UpdateOrder(ctx, run.order); err != nil {
			return nil, errors.Wrap(err, "failed to attach addresses")
		}

		result := usecase.Success(msgCheckoutAddressSave, usecase.PaymentRoute(provider))
		if len(run.warnings) > 0 {
			result.Status = usecase.StatusWarning
			result.Warnings = run.warnings
		}

		return result, nil
	})

	srv.metrics.Checkout(outcomeOf(result, err))
	if err != nil {
		srv.log(ctx).Error("Failed to submit checkout", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to submit checkout")
	}
	srv.log(ctx).Info("Checkout submitted",
		slog.Any("userID", userID),
		slog.String("redirect", result.Redirect),
		slog.Int("warnings", len(result.Warnings)),
	)

	return result, nil
}

func (srv *checkoutService) resolveShipping(ctx context.Context, run *checkoutRun) error {
	input := run.input

	if input.UseDefaultShipping {
		address, err := srv.findDefault(ctx, run.addressRepo, run.userID, entity.AddressTypeShipping)
		if err != nil {
			return err
		}
		if address == nil {
			return abort(usecase.Info(msgNoDefaultShipping, usecase.RouteCheckout))
		}
		run.shipping = address
		run.order.ShippingAddressID = &address.ID

		return nil
	}

	form := newAddressForm(input.ShippingAddress, input.ShippingAddress2, input.ShippingCountry, input.ShippingZip)
	if err := srv.validate.Struct(form); err != nil {
		run.warn(msgInvalidShipping)

		return nil
	}

	address := form.toEntity(run.userID, entity.AddressTypeShipping, input.SetDefaultShipping)
	if err := srv.storeAddress(ctx, run.addressRepo, address); err != nil {
		return err
	}
	run.shipping = address
	run.order.ShippingAddressID = &address.ID

	return nil
}

func (srv *checkoutService) resolveBilling(ctx context.Context, run *checkoutRun) error {
	input := run.input

	switch {
	case input.SameBillingAddress:
		if run.shipping == nil {
			run.warn(msgNoShippingToCopy)

			return nil
		}
		address := run.shipping.CloneAs(entity.AddressTypeBilling)
		if err := srv.storeAddress(ctx, run.addressRepo, address); err != nil {
			return err
		}
		run.order.BillingAddressID = &address.ID

	case input.UseDefaultBilling:
		address, err := srv.findDefault(ctx, run.addressRepo, run.userID, entity.AddressTypeBilling)
		if err != nil {
			return err
		}
		if address == nil {
			return abort(usecase.Info(msgNoDefaultBilling, usecase.RouteCheckout))
		}
		run.order.BillingAddressID = &address.ID

	default:
		form := newAddressForm(input.BillingAddress, input.BillingAddress2, input.BillingCountry, input.BillingZip)
		if err := srv.validate.Struct(form); err != nil {
			run.warn(msgInvalidBilling)

			return nil
		}
		address := form.toEntity(run.userID, entity.AddressTypeBilling, input.SetDefaultBilling)
		if err := srv.storeAddress(ctx, run.addressRepo, address); err != nil {
			return err
		}
		run.order.BillingAddressID = &address.ID
	}

	return nil
}

// storeAddress inserts the address. A new default replaces the previous one of its type.
func (srv *checkoutService) storeAddress(ctx context.Context, addressRepo repository.AddressRepository, address *entity.Address) error {
	address.CreatedAt = srv.now()
	makeDefault := address.Default
	address.Default = false

	if err := addressRepo.CreateAddress(ctx, address); err != nil {
		return errors.Wrap(err, "failed to create address")
	}
	if !makeDefault {
		return nil
	}

	if err := addressRepo.ClearDefault(ctx, address.UserID, address.Type); err != nil {
		return errors.Wrap(err, "failed to clear default address")
	}
	if err := addressRepo.SetDefault(ctx, address.ID); err != nil {
		return errors.Wrap(err, "failed to set default address")
	}
	address.Default = true

	return nil
}

// PaymentPage shows the order about to be paid with the chosen provider.
func (srv *checkoutService) PaymentPage(ctx context.Context, userID uuid.UUID, provider string) (*usecase.PaymentOutput, *usecase.Result, error) {
	if !usecase.IsPaymentProvider(provider) {
		return nil, usecase.Warning(msgUnknownProvider, usecase.RouteCheckout), nil
	}

	order, err := srv.orderRepo.FindOpenOrder(ctx, userID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, usecase.Info(msgNoActiveOrder, usecase.RouteOrderSummary), nil
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load payment order")
	}

	output := &usecase.PaymentOutput{Order: order, Provider: provider}

	profile, err := srv.userRepo.FindProfile(ctx, userID)
	switch {
	case err == nil:
		output.OneClickPurchasing = profile.OneClickPurchasing
	case errors.Is(err, repository.ErrUserNotFound):
		srv.log(ctx).Warn("User has no profile", slog.Any("userID", userID))
	default:
		return nil, nil, errors.Wrap(err, "failed to load profile")
	}

	return output, nil, nil
}
