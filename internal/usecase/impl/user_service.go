package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	defaultMinPasswordLength = 8
	// bcrypt only reads the first 72 bytes and rejects anything longer.
	maxPasswordLength = 72
	maxUsernameLength = 150
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	minPasswordLength int
	logger            *slog.Logger
	now               func() time.Time
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	minPasswordLength := defaultMinPasswordLength
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.MinPasswordLength > 0 {
		minPasswordLength = params.Config.Auth.MinPasswordLength
	}

	return &userService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		minPasswordLength: minPasswordLength,
		logger:            params.Logger,
		now:               time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates the account and its profile in one transaction.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, usecase.NewFormError("username", "This field is required.")
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return nil, usecase.NewFormError("username",
			fmt.Sprintf("Ensure this value has at most %d characters.", maxUsernameLength))
	}
	if input.Password1 != input.Password2 {
		return nil, usecase.NewFormError("password2", "The two password fields didn't match.")
	}
	if len(input.Password1) < srv.minPasswordLength {
		return nil, usecase.NewFormError("password1",
			fmt.Sprintf("This password is too short. It must contain at least %d characters.", srv.minPasswordLength))
	}
	if len(input.Password1) > maxPasswordLength {
		return nil, usecase.NewFormError("password1",
			fmt.Sprintf("This password is too long. It must contain at most %d bytes.", maxPasswordLength))
	}

	hash, err := srv.hasher.Hash(input.Password1)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("register")
	}

	now := srv.now()
	user := &entity.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		userRepo := factory.NewUserRepository()

		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}

		profile := &entity.UserProfile{UserID: user.ID, UpdatedAt: now}
		if err := userRepo.CreateProfile(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to create profile")
		}
		user.Profile = profile

		return nil
	})
	if errors.Is(err, repository.ErrUsernameTaken) {
		return nil, usecase.NewFormError("username", "A user with that username already exists.")
	}
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.log(ctx).Info("User registered", slog.Any("userID", user.ID), slog.String("username", username))

	return user, nil
}

// Login checks the credentials and issues a session token.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	username := strings.TrimSpace(input.Username)

	user, err := srv.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, usecase.NewFormError("username", fmt.Sprintf("User with login %s was not found.", username))
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Wrong password", slog.Any("userID", user.ID))

		return nil, usecase.NewFormError("password", "Wrong password.")
	}

	token, err := srv.tokenService.GenerateSessionToken(user.ID, user.Username)
	if err != nil {
		srv.log(ctx).Error("Failed to sign session token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate session token")
	}

	return &usecase.LoginOutput{Token: token, User: user}, nil
}
