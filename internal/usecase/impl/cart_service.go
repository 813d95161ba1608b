package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	msgNoActiveOrder   = "You do not have an active order."
	msgQuantityUpdated = "This item quantity was updated."
	msgAddedToCart     = "This item was added to your cart."
	msgRemovedFromCart = "This item was removed from your cart."
	msgNotInCart       = "This item is not in your cart."
	msgCouponApplied   = "Coupon applied."
	msgCouponUnknown   = "This coupon does not exist."
)

// Cart operation labels for metrics.
const (
	opAdd       = "add"
	opRemove    = "remove"
	opDecrement = "decrement"
	opCoupon    = "coupon"
)

type cartService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	metrics   service.StorefrontMetrics
	logger    *slog.Logger
	now       func() time.Time
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Metrics   service.StorefrontMetrics
	Logger    *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		metrics:   params.Metrics,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddToCart increments the open line for the product, creating the order and line when missing.
func (srv *cartService) AddToCart(ctx context.Context, userID uuid.UUID, productID int64) (*usecase.Result, error) {
	result, err := executeForResult(ctx, srv.txManager, func(factory repository.RepositoryFactory) (*usecase.Result, error) {
		orderRepo := factory.NewOrderRepository()

		if _, err := factory.NewProductRepository().FindProductByID(ctx, productID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, domainerrors.ErrProductNotFound.WrapMessage("add to cart")
			}

			return nil, errors.Wrap(err, "failed to find product")
		}

		line, err := srv.findOrCreateLine(ctx, orderRepo, userID, productID)
		if err != nil {
			return nil, err
		}

		order, err := srv.findOrCreateOrder(ctx, orderRepo, userID)
		if err != nil {
			return nil, err
		}

		if order.LineFor(productID) != nil {
			if err := orderRepo.UpdateLineQuantity(ctx, line.ID, line.Quantity+1); err != nil {
				return nil, errors.Wrap(err, "failed to increment line")
			}

			return usecase.Success(msgQuantityUpdated, usecase.RedirectBack), nil
		}

		if err := orderRepo.AttachLine(ctx, line.ID, order.ID); err != nil {
			return nil, errors.Wrap(err, "failed to attach line")
		}

		return usecase.Success(msgAddedToCart, usecase.RedirectBack), nil
	})

	srv.record(opAdd, result, err)
	if err != nil {
		srv.log(ctx).Error("Failed to add to cart", slog.Any("userID", userID), slog.Int64("productID", productID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to add to cart")
	}

	return result, nil
}

// findOrCreateLine returns the open line for the product, creating one with quantity 1.
// A freshly created line is not attached to any order yet.
func (srv *cartService) findOrCreateLine(ctx context.Context, orderRepo repository.OrderRepository, userID uuid.UUID, productID int64) (*entity.OrderLine, error) {
	line, err := orderRepo.FindOpenLine(ctx, userID, productID)
	if err == nil {
		return line, nil
	}
	if !errors.Is(err, repository.ErrLineNotFound) {
		return nil, errors.Wrap(err, "failed to find open line")
	}

	line = &entity.OrderLine{
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
		CreatedAt: srv.now(),
	}
	if err := orderRepo.CreateLine(ctx, line); err != nil {
		return nil, errors.Wrap(err, "failed to create line")
	}

	return line, nil
}

func (srv *cartService) findOrCreateOrder(ctx context.Context, orderRepo repository.OrderRepository, userID uuid.UUID) (*entity.Order, error) {
	order, err := orderRepo.FindOpenOrder(ctx, userID)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, repository.ErrOrderNotFound) {
		return nil, errors.Wrap(err, "failed to find open order")
	}

	now := srv.now()
	order = &entity.Order{
		UserID:      userID,
		RefCode:     util.NewRefCode(),
		StartDate:   now,
		OrderedDate: now,
	}
	if err := orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}
	srv.log(ctx).Debug("Opened order", slog.Any("userID", userID), slog.String("refCode", order.RefCode))

	return order, nil
}

// RemoveFromCart deletes the product's line from the open order.
func (srv *cartService) RemoveFromCart(ctx context.Context, userID uuid.UUID, productID int64) (*usecase.Result, error) {
	result, err := executeForResult(ctx, srv.txManager, func(factory repository.RepositoryFactory) (*usecase.Result, error) {
		orderRepo := factory.NewOrderRepository()

		order, err := orderRepo.FindOpenOrder(ctx, userID)
		if errors.Is(err, repository.ErrOrderNotFound) {
			return usecase.Info(msgNoActiveOrder, usecase.RedirectBack), nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to find open order")
		}

		line := order.LineFor(productID)
		if line == nil {
			return usecase.Info(msgNotInCart, usecase.RedirectBack), nil
		}

		if err := orderRepo.DeleteLine(ctx, line.ID); err != nil {
			return nil, errors.Wrap(err, "failed to delete line")
		}

		return usecase.Success(msgRemovedFromCart, usecase.RedirectBack), nil
	})

	srv.record(opRemove, result, err)
	if err != nil {
		srv.log(ctx).Error("Failed to remove from cart", slog.Any("userID", userID), slog.Int64("productID", productID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to remove from cart")
	}

	return result, nil
}

// DecrementLine removes one unit. A line at quantity 1 is deleted.
func (srv *cartService) DecrementLine(ctx context.Context, userID uuid.UUID, productID int64) (*usecase.Result, error) {
	result, err := executeForResult(ctx, srv.txManager, func(factory repository.RepositoryFactory) (*usecase.Result, error) {
		orderRepo := factory.NewOrderRepository()

		order, err := orderRepo.FindOpenOrder(ctx, userID)
		if errors.Is(err, repository.ErrOrderNotFound) {
			return usecase.Info(msgNoActiveOrder, usecase.ProductRoute(productID)), nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to find open order")
		}

		line := order.LineFor(productID)
		if line == nil {
			return usecase.Info(msgNotInCart, usecase.RouteOrderSummary), nil
		}

		if line.Quantity > 1 {
			err = orderRepo.UpdateLineQuantity(ctx, line.ID, line.Quantity-1)
		} else {
			err = orderRepo.DeleteLine(ctx, line.ID)
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to decrement line")
		}

		return usecase.Success(msgQuantityUpdated, usecase.RouteOrderSummary), nil
	})

	srv.record(opDecrement, result, err)
	if err != nil {
		srv.log(ctx).Error("Failed to decrement line", slog.Any("userID", userID), slog.Int64("productID", productID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to decrement line")
	}

	return result, nil
}

// OrderSummary loads the open order with its lines.
func (srv *cartService) OrderSummary(ctx context.Context, userID uuid.UUID) (*entity.Order, *usecase.Result, error) {
	order, err := srv.orderRepo.FindOpenOrder(ctx, userID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, usecase.Warning(msgNoActiveOrder, usecase.RouteCatalog), nil
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load order summary")
	}

	return order, nil, nil
}

// ApplyCoupon attaches the coupon with the given code to the open order.
func (srv *cartService) ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*usecase.Result, error) {
	result, err := executeForResult(ctx, srv.txManager, func(factory repository.RepositoryFactory) (*usecase.Result, error) {
		orderRepo := factory.NewOrderRepository()

		order, err := orderRepo.FindOpenOrder(ctx, userID)
		if errors.Is(err, repository.ErrOrderNotFound) {
			return usecase.Info(msgNoActiveOrder, usecase.RouteOrderSummary), nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to find open order")
		}

		coupon, err := factory.NewCouponRepository().FindCouponByCode(ctx, code)
		if errors.Is(err, repository.ErrCouponNotFound) {
			return usecase.Info(msgCouponUnknown, usecase.RouteCheckout), nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to find coupon")
		}

		order.CouponID = &coupon.ID
		order.Coupon = coupon
		if err := orderRepo.UpdateOrder(ctx, order); err != nil {
			return nil, errors.Wrap(err, "failed to attach coupon")
		}

		return usecase.Success(msgCouponApplied, usecase.RouteCheckout), nil
	})

	srv.record(opCoupon, result, err)
	if err != nil {
		srv.log(ctx).Error("Failed to apply coupon", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to apply coupon")
	}

	return result, nil
}

func (srv *cartService) record(op string, result *usecase.Result, err error) {
	srv.metrics.CartMutation(op, outcomeOf(result, err))
}

func outcomeOf(result *usecase.Result, err error) string {
	if err != nil || result == nil {
		return string(usecase.StatusError)
	}

	return string(result.Status)
}
