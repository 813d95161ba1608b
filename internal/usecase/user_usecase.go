package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// RegisterInput mirrors the registration form.
type RegisterInput struct {
	Username  string
	Email     string
	Password1 string
	Password2 string
}

// LoginInput mirrors the login form.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput carries the signed session token.
type LoginOutput struct {
	Token string
	User  *entity.User
}

// UserUsecase registers and authenticates storefront accounts.
// Validation failures are returned as *FormError.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
