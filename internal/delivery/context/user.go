package context

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// KeyUserID is the key for the authenticated user's ID.
	KeyUserID ContextKey = "user_id"

	// KeyUsername is the key for the authenticated user's login name.
	KeyUsername ContextKey = "username"
)

// SetUser stores the authenticated user on both the echo.Context and the request context.
func SetUser(c echo.Context, userID uuid.UUID, username string) {
	c.Set(string(KeyUserID), userID)
	c.Set(string(KeyUsername), username)

	ctx := context.WithValue(c.Request().Context(), KeyUserID, userID)
	c.SetRequest(c.Request().WithContext(ctx))
}

// GetUserID returns the authenticated user's ID, or false for anonymous requests.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(string(KeyUserID)).(uuid.UUID)

	return id, ok && id != uuid.Nil
}

// GetUsername returns the authenticated user's login name, or "".
func GetUsername(c echo.Context) string {
	name, _ := c.Get(string(KeyUsername)).(string)

	return name
}

// GetUserIDFromContext extracts the user ID from standard context.Context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(KeyUserID).(uuid.UUID)

	return id, ok
}
