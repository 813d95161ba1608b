package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/web/response"
	"storefront/internal/delivery/web/view"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTokenService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{Auth: &config.AuthConfig{SessionTTL: time.Hour}}
	cfg.SecretKey.Session = "test-secret"
	svc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestAuthMiddleware_RedirectsAnonymous(t *testing.T) {
	m := NewAuthMiddleware(newTokenService(t), discard)
	e := echo.New()

	called := false
	handler := m.Identify(m.RequireLogin(func(echo.Context) error {
		called = true

		return nil
	}))

	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(httptest.NewRequest(http.MethodGet, "/cart/order-sum/", nil), rec)))

	assert.False(t, called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login/?next=%2Fcart%2Forder-sum%2F", rec.Header().Get(echo.HeaderLocation))
}

func TestAuthMiddleware_InvalidCookieIsDropped(t *testing.T) {
	m := NewAuthMiddleware(newTokenService(t), discard)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/add-to-cart/1/", nil)
	req.AddCookie(&http.Cookie{Name: response.SessionCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()

	handler := m.Identify(m.RequireLogin(func(echo.Context) error {
		t.Fatal("handler must not run")

		return nil
	}))
	require.NoError(t, handler(e.NewContext(req, rec)))

	assert.Equal(t, "/login/", rec.Header().Get(echo.HeaderLocation))
	require.NotEmpty(t, rec.Result().Cookies())
	assert.Negative(t, rec.Result().Cookies()[0].MaxAge)
}

func TestAuthMiddleware_ValidSession(t *testing.T) {
	tokens := newTokenService(t)
	m := NewAuthMiddleware(tokens, discard)
	e := echo.New()

	userID := uuid.New()
	token, err := tokens.GenerateSessionToken(userID, "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: response.SessionCookieName, Value: token})
	rec := httptest.NewRecorder()

	handler := m.Identify(m.RequireLogin(func(c echo.Context) error {
		id, ok := deliverycontext.GetUserID(c)
		assert.True(t, ok)
		assert.Equal(t, userID, id)
		assert.Equal(t, "alice", deliverycontext.GetUsername(c))

		fromCtx, ok := deliverycontext.GetUserIDFromContext(c.Request().Context())
		assert.True(t, ok)
		assert.Equal(t, userID, fromCtx)

		return c.NoContent(http.StatusNoContent)
	}))
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestErrorMiddleware_RendersPages(t *testing.T) {
	renderer, err := view.New()
	require.NoError(t, err)

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"app error", domainerrors.ErrProductNotFound.WrapMessage("detail"), http.StatusNotFound, "product not found"},
		{"echo error", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "Method Not Allowed"},
		{"unknown error", errors.New("db exploded"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Renderer = renderer
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)

			NewErrorMiddleware(discard).HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
			assert.NotContains(t, rec.Body.String(), "db exploded")
		})
	}
}
