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
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const (
	msgEmptyCart         = "Your cart is empty."
	msgOrderPlaced       = "Your order was placed."
	msgOrderNotFound     = "This order does not exist."
	msgOrderNotPaid      = "This order has not been paid yet."
	msgRefundRequested   = "Your refund request was received."
	msgRefundAlreadySent = "A refund was already requested for this order."
	msgRefundFormInvalid = "Please fill in the refund form."
)

type orderService struct {
	txManager repository.TransactionManager
	validate  *validator.Validate
	metrics   service.StorefrontMetrics
	logger    *slog.Logger
	now       func() time.Time
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Metrics   service.StorefrontMetrics
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		metrics:   params.Metrics,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// FinalizeOrder stores the payment, marks the order ordered and settles its lines.
func (srv *orderService) FinalizeOrder(ctx context.Context, userID uuid.UUID, input *usecase.FinalizeInput) (*usecase.Result, error) {
	var finalized *entity.Order

	result, err := executeForResult(ctx, srv.txManager, func(factory repository.RepositoryFactory) (*usecase.Result, error) {
		orderRepo := factory.NewOrderRepository()

		order, err := orderRepo.FindOpenOrder(ctx, userID)
		if errors.Is(err, repository.ErrOrderNotFound) {
			return usecase.Info(msgNoActiveOrder, usecase.RouteOrderSummary), nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to find open order")
		}
		if order.IsEmpty() {
			return usecase.Info(msgEmptyCart, usecase.RouteOrderSummary), nil
		}

		now := srv.now()
		payment := &entity.Payment{
			ChargeID:  input.ChargeID,
			UserID:    &userID,
			Amount:    decimal.NewFromInt(order.Total()),
			Timestamp: now,
		}
		if err := factory.NewPaymentRepository().CreatePayment(ctx, payment); err != nil {
			return nil, errors.Wrap(err, "failed to create payment")
		}

		order.PaymentID = &payment.ID
		order.Ordered = true
		order.OrderedDate = now
		if err := orderRepo.UpdateOrder(ctx, order); err != nil {
			return nil, errors.Wrap(err, "failed to mark order as ordered")
		}
		if err := orderRepo.SettleLines(ctx, order.ID); err != nil {
			return nil, errors.Wrap(err, "failed to settle lines")
		}
		if input.SaveCard {
			if err := srv.rememberCustomer(ctx, factory.NewUserRepository(), userID, input.Provider); err != nil {
				return nil, err
			}
		}
		finalized = order

		return usecase.Success(msgOrderPlaced, usecase.RouteCatalog), nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to finalize order", slog.Any("userID", userID), slog.String("provider", input.Provider), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to finalize order")
	}

	if finalized != nil {
		srv.metrics.OrderFinalized()
		srv.log(ctx).Info("Order finalized",
			slog.Any("userID", userID),
			slog.String("refCode", finalized.RefCode),
			slog.String("provider", input.Provider),
			slog.Int64("total", finalized.Total()),
		)
	}

	return result, nil
}

// rememberCustomer keeps the first provider customer id and turns on one-click purchasing.
func (srv *orderService) rememberCustomer(ctx context.Context, userRepo repository.UserRepository, userID uuid.UUID, provider string) error {
	profile, err := userRepo.FindProfile(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to load profile")
	}

	if profile.PaymentCustomerID == "" {
		profile.PaymentCustomerID = strings.ToLower(provider) + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	}
	profile.OneClickPurchasing = true

	if err := userRepo.UpdateProfile(ctx, profile); err != nil {
		return errors.Wrap(err, "failed to update profile")
	}

	return nil
}

// RequestRefund records a refund request for a finalized order of the user.
func (srv *orderService) RequestRefund(ctx context.Context, userID uuid.UUID, input *usecase.RefundInput) (*usecase.Result, error) {
	input.RefCode = strings.TrimSpace(input.RefCode)
	input.Email = strings.TrimSpace(input.Email)
	if err := srv.validate.Struct(input); err != nil {
		return usecase.Warning(msgRefundFormInvalid, usecase.RouteRefund), nil
	}

	result, err := executeForResult(ctx, srv.txManager, func(factory repository.RepositoryFactory) (*usecase.Result, error) {
		orderRepo := factory.NewOrderRepository()

		order, err := orderRepo.FindOrderByRefCode(ctx, userID, input.RefCode)
		if errors.Is(err, repository.ErrOrderNotFound) {
			return usecase.Info(msgOrderNotFound, usecase.RouteRefund), nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to find order")
		}
		if !order.Ordered {
			return usecase.Info(msgOrderNotPaid, usecase.RouteRefund), nil
		}
		if order.RefundRequested {
			return usecase.Info(msgRefundAlreadySent, usecase.RouteCatalog), nil
		}

		refund := &entity.Refund{
			OrderID:   order.ID,
			Reason:    input.Message,
			Email:     input.Email,
			CreatedAt: srv.now(),
		}
		if err := factory.NewRefundRepository().CreateRefund(ctx, refund); err != nil {
			return nil, errors.Wrap(err, "failed to create refund")
		}

		order.RefundRequested = true
		if err := orderRepo.UpdateOrder(ctx, order); err != nil {
			return nil, errors.Wrap(err, "failed to flag refund")
		}

		return usecase.Success(msgRefundRequested, usecase.RouteCatalog), nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to request refund", slog.Any("userID", userID), slog.String("refCode", input.RefCode), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to request refund")
	}

	return result, nil
}
