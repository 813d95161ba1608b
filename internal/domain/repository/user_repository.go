// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is a domain-specific error returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when the unique username index rejects an insert.
	ErrUsernameTaken = errors.New("username already taken")
)

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByUsername retrieves a user by login name.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create persists a new user. Returns ErrUsernameTaken on a duplicate username.
	Create(ctx context.Context, user *entity.User) error

	// CreateProfile persists the user's profile row.
	CreateProfile(ctx context.Context, profile *entity.UserProfile) error

	// FindProfile retrieves the profile of a user.
	FindProfile(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error)

	// UpdateProfile stores the payment customer id and one-click flag.
	UpdateProfile(ctx context.Context, profile *entity.UserProfile) error
}
