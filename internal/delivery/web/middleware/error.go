package middleware

import (
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/web/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware renders failures as error pages.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
	requestID := deliverycontext.GetRequestID(c)

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.Error("Request failed", slog.Any("error", err), slog.String("path", c.Request().URL.Path))
		}
		m.render(c, logger, domainerrors.NewErrorPage(appErr, requestID))

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			message = msg
		}
		appErr := domainerrors.NewBaseError(httpErr.Code, "HTTP_ERROR", message, "")
		m.render(c, logger, domainerrors.NewErrorPage(appErr, requestID))

		return
	}

	// Internal details stay in the log.
	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
	m.render(c, logger, domainerrors.NewErrorPage(domainerrors.ErrInternalError, requestID))
}

func (m *ErrorMiddleware) render(c echo.Context, logger *slog.Logger, page *domainerrors.ErrorPage) {
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(page.Error.Status)

		return
	}

	if err := response.Render(c, page.Error.Status, "error", http.StatusText(page.Error.Status), page); err != nil {
		logger.Error("Failed to render error page", slog.Any("error", err))
		_ = c.String(page.Error.Status, page.Error.Message)
	}
}
