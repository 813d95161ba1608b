// Package handler contains the HTTP handlers for the storefront pages.
package handler

import (
	"net/http"
	"strconv"

	deliverycontext "storefront/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// currentUser returns the authenticated user. Routes using it sit behind RequireLogin.
func currentUser(c echo.Context) (uuid.UUID, error) {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return uuid.Nil, echo.ErrUnauthorized
	}

	return userID, nil
}

// productIDParam parses the :id path segment. Malformed IDs are a 404.
func productIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.ErrNotFound
	}

	return id, nil
}

// checked reads an HTML checkbox value.
func checked(value string) bool {
	switch value {
	case "on", "true", "1":
		return true
	default:
		return false
	}
}

// formView carries submitted values and per-field errors back into a form.
type formView struct {
	Values map[string]string
	Errors map[string]string
	Next   string
}
