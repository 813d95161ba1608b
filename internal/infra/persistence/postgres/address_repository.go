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
)

// addressRepository implements the repository.AddressRepository interface using GORM.
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{
		db: db,
	}
}

// CreateAddress persists a new address.
func (repo *addressRepository) CreateAddress(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)

	if err := repo.db.WithContext(ctx).Create(addressM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDefaultAddressConflict
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required address information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create address")
	}

	address.ID = addressM.ID
	address.CreatedAt = addressM.CreatedAt

	return nil
}

// FindDefaultAddress returns the user's default address of the given type.
func (repo *addressRepository) FindDefaultAddress(ctx context.Context, userID uuid.UUID, addressType entity.AddressType) (*entity.Address, error) {
	var addressM model.AddressModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND address_type = ? AND is_default = ?", userID, string(addressType), true).
		First(&addressM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find default address")
	}

	return toAddressDomain(&addressM), nil
}

// ClearDefault unsets the default flag on all of the user's addresses of one type.
func (repo *addressRepository) ClearDefault(ctx context.Context, userID uuid.UUID, addressType entity.AddressType) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.AddressModel{}).
		Where("user_id = ? AND address_type = ? AND is_default = ?", userID, string(addressType), true).
		Update("is_default", false).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear default address")
	}

	return nil
}

// SetDefault marks one address as the default of its type.
// Callers clear the previous default first; a leftover default surfaces as ErrDefaultAddressConflict.
func (repo *addressRepository) SetDefault(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AddressModel{}).
		Where("id = ?", id).
		Update("is_default", true)

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDefaultAddressConflict
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to set default address")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAddressNotFound
	}

	return nil
}

func toAddressDomain(data *model.AddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	return &entity.Address{
		ID:        data.ID,
		UserID:    data.UserID,
		Street:    data.Street,
		Apartment: data.Apartment,
		Country:   data.Country,
		Zip:       data.Zip,
		Type:      entity.AddressType(data.AddressType),
		Default:   data.IsDefault,
		CreatedAt: data.CreatedAt,
	}
}

func fromAddressDomain(data *entity.Address) *model.AddressModel {
	return &model.AddressModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Street:      data.Street,
		Apartment:   data.Apartment,
		Country:     data.Country,
		Zip:         data.Zip,
		AddressType: string(data.Type),
		IsDefault:   data.Default,
	}
}
