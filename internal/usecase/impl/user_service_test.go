package impl

import (
	"strings"
	"testing"
	"time"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/persistence/model"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

func newUserTestConfig() *config.Config {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4, SessionTTL: time.Hour, MinPasswordLength: 8}}
	cfg.SecretKey.Session = "test-secret"

	return cfg
}

func (env *testEnv) users(t *testing.T, hasher service.PasswordHasher) (usecase.UserUsecase, service.TokenService) {
	t.Helper()

	cfg := newUserTestConfig()
	if hasher == nil {
		hasher = auth.NewBcryptHasher(cfg)
	}
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return NewUserService(UserServiceParams{
		TxManager:    env.txManager,
		UserRepo:     postgres.NewUserRepository(env.db),
		Hasher:       hasher,
		TokenService: tokens,
		Config:       cfg,
		Logger:       env.logger,
	}), tokens
}

func requireFormError(t *testing.T, err error, field string) *usecase.FormError {
	t.Helper()

	formErr, ok := errors.Find[*usecase.FormError](err)
	require.True(t, ok, "expected a form error, got %v", err)
	assert.Equal(t, field, formErr.Field)

	return formErr
}

func TestUserService_Register_Validation(t *testing.T) {
	env := newTestEnv(t)
	srv, _ := env.users(t, nil)

	tests := []struct {
		name  string
		input usecase.RegisterInput
		field string
	}{
		{"blank username", usecase.RegisterInput{Username: "  ", Password1: "longenough", Password2: "longenough"}, "username"},
		{"mismatch", usecase.RegisterInput{Username: "bob", Password1: "longenough", Password2: "different1"}, "password2"},
		{"too short", usecase.RegisterInput{Username: "bob", Password1: "short", Password2: "short"}, "password1"},
		{"taken", usecase.RegisterInput{Username: "alice", Password1: "longenough", Password2: "longenough"}, "username"},
		{"username too long", usecase.RegisterInput{Username: strings.Repeat("b", 151), Password1: "longenough", Password2: "longenough"}, "username"},
		{"password too long", usecase.RegisterInput{Username: "bob", Password1: strings.Repeat("p", 80), Password2: strings.Repeat("p", 80)}, "password1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.Register(env.ctx, &tt.input)
			requireFormError(t, err, tt.field)
		})
	}
}

func TestUserService_RegisterThenLogin(t *testing.T) {
	env := newTestEnv(t)
	srv, tokens := env.users(t, nil)

	user, err := srv.Register(env.ctx, &usecase.RegisterInput{
		Username:  "bob",
		Email:     "bob@example.com",
		Password1: "correct horse",
		Password2: "correct horse",
	})
	require.NoError(t, err)
	require.NotNil(t, user.Profile)

	var profiles int64
	require.NoError(t, env.db.Model(&model.UserProfileModel{}).Where("user_id = ?", user.ID).Count(&profiles).Error)
	assert.EqualValues(t, 1, profiles)

	_, err = srv.Login(env.ctx, &usecase.LoginInput{Username: "nobody", Password: "x"})
	formErr := requireFormError(t, err, "username")
	assert.Contains(t, formErr.Message, "nobody")

	_, err = srv.Login(env.ctx, &usecase.LoginInput{Username: "bob", Password: "wrong horse"})
	requireFormError(t, err, "password")

	out, err := srv.Login(env.ctx, &usecase.LoginInput{Username: "bob", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, out.User.ID)

	claims, err := tokens.ValidateToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "bob", claims.Username)
}

func TestUserService_Register_HashFailure(t *testing.T) {
	env := newTestEnv(t)
	hasher := new(mockPasswordHasher)
	hasher.On("Hash", "longenough").Return("", errors.New("boom")).Once()
	srv, _ := env.users(t, hasher)

	_, err := srv.Register(env.ctx, &usecase.RegisterInput{Username: "bob", Password1: "longenough", Password2: "longenough"})
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
	hasher.AssertExpectations(t)

	var users int64
	require.NoError(t, env.db.Model(&model.UserModel{}).Where("username = ?", "bob").Count(&users).Error)
	assert.Zero(t, users)
}
