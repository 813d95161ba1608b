// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a storefront account. Every user owns exactly one UserProfile.
type User struct {
	ID           uuid.UUID    // The Global Unique Identifier (GUID) for the user.
	Username     string       // Unique login name.
	Email        string       // Contact email, optional at registration.
	PasswordHash string       // bcrypt hash of the password.
	Profile      *UserProfile // Loaded on demand; nil when not joined.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfile holds per-user purchase preferences.
type UserProfile struct {
	UserID             uuid.UUID // Foreign Key that links this profile to a core User entity.
	PaymentCustomerID  string    // Customer id at the payment provider, empty until the first capture.
	OneClickPurchasing bool
	UpdatedAt          time.Time
}
