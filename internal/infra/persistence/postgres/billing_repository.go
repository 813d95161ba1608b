package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// billingRepository serves coupons, payments and refunds.
type billingRepository struct {
	db *gorm.DB
}

// NewCouponRepository is the constructor for the coupon lookup.
func NewCouponRepository(db *gorm.DB) repository.CouponRepository {
	return &billingRepository{db: db}
}

// NewPaymentRepository is the constructor for payment persistence.
func NewPaymentRepository(db *gorm.DB) repository.PaymentRepository {
	return &billingRepository{db: db}
}

// NewRefundRepository is the constructor for refund persistence.
func NewRefundRepository(db *gorm.DB) repository.RefundRepository {
	return &billingRepository{db: db}
}

// FindCouponByCode looks up a coupon by its exact code.
func (repo *billingRepository) FindCouponByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	var couponM model.CouponModel

	if err := repo.db.WithContext(ctx).
		Where("code = ?", code).
		First(&couponM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCouponNotFound
		}

		return nil, errors.Wrap(err, "failed to find coupon")
	}

	return toCouponDomain(&couponM), nil
}

// CreatePayment persists a captured payment.
func (repo *billingRepository) CreatePayment(ctx context.Context, payment *entity.Payment) error {
	paymentM := &model.PaymentModel{
		ChargeID:  payment.ChargeID,
		UserID:    payment.UserID,
		Amount:    payment.Amount,
		Timestamp: payment.Timestamp,
	}

	if err := repo.db.WithContext(ctx).Create(paymentM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create payment")
	}

	payment.ID = paymentM.ID

	return nil
}

// CreateRefund persists a refund request.
func (repo *billingRepository) CreateRefund(ctx context.Context, refund *entity.Refund) error {
	refundM := &model.RefundModel{
		OrderID:  refund.OrderID,
		Reason:   refund.Reason,
		Email:    refund.Email,
		Accepted: refund.Accepted,
	}

	if err := repo.db.WithContext(ctx).Omit("Order").Create(refundM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrOrderNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create refund")
	}

	refund.ID = refundM.ID
	refund.CreatedAt = refundM.CreatedAt

	return nil
}

func toCouponDomain(data *model.CouponModel) *entity.Coupon {
	if data == nil {
		return nil
	}

	return &entity.Coupon{
		ID:     data.ID,
		Code:   data.Code,
		Amount: data.Amount,
	}
}
