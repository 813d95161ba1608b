package response

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// FlashCookieName carries one-shot messages across a redirect.
const FlashCookieName = "flash"

// Flash is one message shown on the next rendered page.
type Flash struct {
	Status  usecase.Status `json:"s"`
	Message string         `json:"m"`
}

// AddFlashes appends messages to the pending flash cookie.
func AddFlashes(c echo.Context, flashes ...Flash) {
	if len(flashes) == 0 {
		return
	}

	pending := append(readFlashes(c), flashes...)
	payload, err := json.Marshal(pending)
	if err != nil {
		return
	}

	value := base64.RawURLEncoding.EncodeToString(payload)
	c.SetCookie(&http.Cookie{
		Name:     FlashCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	// Later reads in the same request see the new value.
	c.Set(FlashCookieName, pending)
}

// ConsumeFlashes returns the pending messages and expires the cookie.
func ConsumeFlashes(c echo.Context) []Flash {
	flashes := readFlashes(c)
	if len(flashes) == 0 {
		return nil
	}

	c.SetCookie(&http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(FlashCookieName, []Flash(nil))

	return flashes
}

func readFlashes(c echo.Context) []Flash {
	if pending, ok := c.Get(FlashCookieName).([]Flash); ok {
		return pending
	}

	cookie, err := c.Cookie(FlashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	payload, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var flashes []Flash
	if err := json.Unmarshal(payload, &flashes); err != nil {
		return nil
	}

	return flashes
}
