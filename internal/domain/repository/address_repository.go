package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for address persistence.
var (
	// ErrAddressNotFound is returned when an address is not found.
	ErrAddressNotFound = errors.New("address not found")
	// ErrDefaultAddressConflict is returned when a second default address of the same type would be stored.
	ErrDefaultAddressConflict = errors.New("user already has a default address of this type")
)

// AddressRepository defines the interface for address-book operations.
type AddressRepository interface {
	// CreateAddress persists a new address.
	CreateAddress(ctx context.Context, address *entity.Address) error

	// FindDefaultAddress returns the user's default address of the given type.
	// Returns ErrAddressNotFound if none is set.
	FindDefaultAddress(ctx context.Context, userID uuid.UUID, addressType entity.AddressType) (*entity.Address, error)

	// ClearDefault unsets the default flag on the user's addresses of the given type.
	ClearDefault(ctx context.Context, userID uuid.UUID, addressType entity.AddressType) error

	// SetDefault marks one address as the default of its type.
	SetDefault(ctx context.Context, id int64) error
}
