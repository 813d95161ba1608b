// Package response turns usecase outcomes into rendered pages and redirects.
package response

import (
	"net/http"
	"net/url"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CSRFContextKey is where echo's CSRF middleware stores the form token.
const CSRFContextKey = "csrf"

// Page is the data every template receives.
type Page struct {
	Title     string
	Username  string
	CSRF      string
	Flashes   []Flash
	RequestID string
	Data      any
}

// Render writes a full page, consuming any pending flash messages.
func Render(c echo.Context, status int, name, title string, data any) error {
	csrf, _ := c.Get(CSRFContextKey).(string)

	return c.Render(status, name, &Page{
		Title:     title,
		Username:  deliverycontext.GetUsername(c),
		CSRF:      csrf,
		Flashes:   ConsumeFlashes(c),
		RequestID: deliverycontext.GetRequestID(c),
		Data:      data,
	})
}

// Redirect flashes the result's message and warnings, then redirects with 302.
func Redirect(c echo.Context, result *usecase.Result) error {
	flashes := make([]Flash, 0, 1+len(result.Warnings))
	for _, warning := range result.Warnings {
		flashes = append(flashes, Flash{Status: usecase.StatusWarning, Message: warning})
	}
	if result.Message != "" {
		flashes = append(flashes, Flash{Status: result.Status, Message: result.Message})
	}
	AddFlashes(c, flashes...)

	return c.Redirect(http.StatusFound, Target(c, result.Redirect))
}

// Target resolves a redirect target. The "back" target follows the Referer when it
// points at this host and falls back to the catalog otherwise.
func Target(c echo.Context, redirect string) string {
	if redirect != usecase.RedirectBack {
		return redirect
	}

	referer := c.Request().Referer()
	if referer == "" {
		return usecase.RouteCatalog
	}

	u, err := url.Parse(referer)
	if err != nil || (u.Host != "" && u.Host != c.Request().Host) || !strings.HasPrefix(u.Path, "/") {
		return usecase.RouteCatalog
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}

	return u.Path
}

// SafeNext returns next when it is a local path, otherwise the catalog.
// Browsers read a backslash as a slash and drop tabs, so "/\host" and "/<tab>/host" are off-site.
func SafeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.ContainsRune(next, '\\') {
		return usecase.RouteCatalog
	}

	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return usecase.RouteCatalog
	}

	return next
}
