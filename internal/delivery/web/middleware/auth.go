// Package middleware contains the storefront's page middleware.
package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/web/response"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware resolves the session cookie into the current user.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Identify attaches the user when a valid session cookie is present and never blocks.
func (m *AuthMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(response.SessionCookieName)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		claims, err := m.tokenSvc.ValidateToken(cookie.Value)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Dropping invalid session cookie", slog.Any("error", err))
			response.ClearSession(c)

			return next(c)
		}

		deliverycontext.SetUser(c, claims.UserID, claims.Username)

		return next(c)
	}
}

// RequireLogin redirects anonymous requests to the login page. It must run after Identify.
func (m *AuthMiddleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := deliverycontext.GetUserID(c); ok {
			return next(c)
		}

		target := usecase.RouteLogin
		if c.Request().Method == http.MethodGet {
			target += "?next=" + url.QueryEscape(c.Request().URL.RequestURI())
		}

		return c.Redirect(http.StatusFound, target)
	}
}
