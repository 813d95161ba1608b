package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

func (repo *orderRepository) withAssociations(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Lines.Product").
		Preload("Coupon").
		Preload("ShippingAddress").
		Preload("BillingAddress")
}

// FindOpenOrder returns the user's current cart.
func (repo *orderRepository) FindOpenOrder(ctx context.Context, userID uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.withAssociations(ctx).
		Where("user_id = ? AND ordered = ?", userID, false).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find open order")
	}

	return toOrderDomain(&orderM), nil
}

// FindOrderByRefCode returns one of the user's orders by reference code.
func (repo *orderRepository) FindOrderByRefCode(ctx context.Context, userID uuid.UUID, refCode string) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.withAssociations(ctx).
		Where("user_id = ? AND ref_code = ?", userID, refCode).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ref code")
	}

	return toOrderDomain(&orderM), nil
}

// CreateOrder inserts the order row only; lines are attached separately.
func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrOpenOrderExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid order reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID

	return nil
}

// UpdateOrder writes every scalar column and reference of the order.
func (repo *orderRepository) UpdateOrder(ctx context.Context, order *entity.Order) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"ref_code":            order.RefCode,
			"ordered_date":        order.OrderedDate,
			"ordered":             order.Ordered,
			"shipping_address_id": order.ShippingAddressID,
			"billing_address_id":  order.BillingAddressID,
			"payment_id":          order.PaymentID,
			"coupon_id":           order.CouponID,
			"being_delivered":     order.BeingDelivered,
			"received":            order.Received,
			"refund_requested":    order.RefundRequested,
			"refund_granted":      order.RefundGranted,
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrOpenOrderExists
		}
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid order reference")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// FindOpenLine returns the user's unsettled line for a product.
func (repo *orderRepository) FindOpenLine(ctx context.Context, userID uuid.UUID, productID int64) (*entity.OrderLine, error) {
	var lineM model.OrderLineModel

	if err := repo.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ? AND product_id = ? AND settled = ?", userID, productID, false).
		First(&lineM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLineNotFound
		}

		return nil, errors.Wrap(err, "failed to find open order line")
	}

	return toOrderLineDomain(&lineM), nil
}

// CreateLine inserts a new line.
func (repo *orderRepository) CreateLine(ctx context.Context, line *entity.OrderLine) error {
	lineM := fromOrderLineDomain(line)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(lineM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrOpenLineExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("quantity must be at least 1")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order line")
	}

	line.ID = lineM.ID
	line.CreatedAt = lineM.CreatedAt

	return nil
}

// AttachLine links a line to an order.
func (repo *orderRepository) AttachLine(ctx context.Context, lineID, orderID int64) error {
	return repo.updateLine(ctx, lineID, "order_id", orderID)
}

// UpdateLineQuantity sets the quantity of a line.
func (repo *orderRepository) UpdateLineQuantity(ctx context.Context, lineID int64, quantity int) error {
	return repo.updateLine(ctx, lineID, "quantity", quantity)
}

func (repo *orderRepository) updateLine(ctx context.Context, lineID int64, column string, value any) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderLineModel{}).
		Where("id = ?", lineID).
		Update(column, value)

	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("quantity must be at least 1")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order line")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLineNotFound
	}

	return nil
}

// DeleteLine removes a line.
func (repo *orderRepository) DeleteLine(ctx context.Context, lineID int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.OrderLineModel{}, lineID)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete order line")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLineNotFound
	}

	return nil
}

// SettleLines marks every line of the order as settled.
func (repo *orderRepository) SettleLines(ctx context.Context, orderID int64) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.OrderLineModel{}).
		Where("order_id = ?", orderID).
		Update("settled", true).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to settle order lines")
	}

	return nil
}

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	lines := make([]*entity.OrderLine, 0, len(data.Lines))
	for _, lineM := range data.Lines {
		lines = append(lines, toOrderLineDomain(lineM))
	}

	return &entity.Order{
		ID:                data.ID,
		UserID:            data.UserID,
		RefCode:           data.RefCode,
		StartDate:         data.StartDate,
		OrderedDate:       data.OrderedDate,
		Ordered:           data.Ordered,
		Lines:             lines,
		ShippingAddressID: data.ShippingAddressID,
		ShippingAddress:   toAddressDomain(data.ShippingAddress),
		BillingAddressID:  data.BillingAddressID,
		BillingAddress:    toAddressDomain(data.BillingAddress),
		PaymentID:         data.PaymentID,
		CouponID:          data.CouponID,
		Coupon:            toCouponDomain(data.Coupon),
		BeingDelivered:    data.BeingDelivered,
		Received:          data.Received,
		RefundRequested:   data.RefundRequested,
		RefundGranted:     data.RefundGranted,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	return &model.OrderModel{
		ID:                data.ID,
		UserID:            data.UserID,
		RefCode:           data.RefCode,
		StartDate:         data.StartDate,
		OrderedDate:       data.OrderedDate,
		Ordered:           data.Ordered,
		ShippingAddressID: data.ShippingAddressID,
		BillingAddressID:  data.BillingAddressID,
		PaymentID:         data.PaymentID,
		CouponID:          data.CouponID,
		BeingDelivered:    data.BeingDelivered,
		Received:          data.Received,
		RefundRequested:   data.RefundRequested,
		RefundGranted:     data.RefundGranted,
	}
}

func toOrderLineDomain(data *model.OrderLineModel) *entity.OrderLine {
	return &entity.OrderLine{
		ID:        data.ID,
		UserID:    data.UserID,
		ProductID: data.ProductID,
		Product:   toProductDomain(data.Product),
		Quantity:  data.Quantity,
		Settled:   data.Settled,
		OrderID:   data.OrderID,
		CreatedAt: data.CreatedAt,
	}
}

func fromOrderLineDomain(data *entity.OrderLine) *model.OrderLineModel {
	return &model.OrderLineModel{
		ID:        data.ID,
		UserID:    data.UserID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		Settled:   data.Settled,
		OrderID:   data.OrderID,
	}
}
