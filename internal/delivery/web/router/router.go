// Package router registers the storefront routes.
package router

import (
	"crypto/subtle"

	"storefront/config"
	"storefront/internal/delivery/web/middleware"
	"storefront/internal/delivery/web/router/handler"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	CatalogHandler  *handler.CatalogHandler
	CartHandler     *handler.CartHandler
	CheckoutHandler *handler.CheckoutHandler
	FavoriteHandler *handler.FavoriteHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Recorder        *metrics.Recorder
	Config          *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	catalogHandler  *handler.CatalogHandler
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
	favoriteHandler *handler.FavoriteHandler
	authMiddleware  *middleware.AuthMiddleware
	recorder        *metrics.Recorder
	config          *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		catalogHandler:  params.CatalogHandler,
		cartHandler:     params.CartHandler,
		checkoutHandler: params.CheckoutHandler,
		favoriteHandler: params.FavoriteHandler,
		authMiddleware:  params.AuthMiddleware,
		recorder:        params.Recorder,
		config:          params.Config,
	}
}

// RegisterRoutes sets up all the storefront routes.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	if r.config.Metrics != nil && r.config.Metrics.Enabled {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(r.recorder.Registry(), promhttp.HandlerOpts{})))
	}

	// Account pages
	throttle := r.authThrottle()
	e.GET("/login/", r.authHandler.LoginPage)
	e.POST("/login/", r.authHandler.Login, throttle...)
	e.GET("/register/", r.authHandler.RegisterPage)
	e.POST("/register/", r.authHandler.Register, throttle...)
	e.GET("/logout/", r.authHandler.Logout)

	shop := e.Group("", r.authMiddleware.RequireLogin)
	{
		shop.GET("/", r.catalogHandler.Index)
		shop.GET("/category-list/", r.catalogHandler.Categories)
		shop.GET("/product-detail-:id/", r.catalogHandler.ProductDetail)

		shop.POST("/add-to-cart/:id/", r.cartHandler.AddToCart)
		shop.POST("/remove-from-cart/:id/", r.cartHandler.RemoveFromCart)
		shop.POST("/remove-single/:id/", r.cartHandler.RemoveSingle)

		shop.GET("/favorites/", r.favoriteHandler.List)
		shop.POST("/favorites/add/:id/", r.favoriteHandler.Toggle)

		shop.GET("/refund/", r.checkoutHandler.RefundPage)
		shop.POST("/refund/", r.checkoutHandler.RequestRefund)
	}

	cart := shop.Group("/cart")
	{
		cart.GET("/order-sum/", r.cartHandler.OrderSummary)
		cart.POST("/coupon/", r.cartHandler.ApplyCoupon)
		cart.GET("/checkout/", r.checkoutHandler.CheckoutPage)
		cart.POST("/checkout/", r.checkoutHandler.SubmitCheckout)
		cart.GET("/payment-procedure/:option/", r.checkoutHandler.PaymentPage)
		cart.POST("/payment-procedure/:option/capture/", r.checkoutHandler.CapturePayment, r.captureGuard()...)
	}
}

// captureGuard requires the provider's capture key once one is configured.
func (r *router) captureGuard() []echo.MiddlewareFunc {
	if r.config.Payment.DemoCapture() {
		return nil
	}
	key := []byte(r.config.Payment.CaptureKey)

	return []echo.MiddlewareFunc{echomiddleware.KeyAuthWithConfig(echomiddleware.KeyAuthConfig{
		KeyLookup: "header:" + handler.HeaderCaptureKey,
		Validator: func(auth string, _ echo.Context) (bool, error) {
			return subtle.ConstantTimeCompare([]byte(auth), key) == 1, nil
		},
		ErrorHandler: func(_ error, _ echo.Context) error {
			return echo.ErrForbidden
		},
	})}
}

// authThrottle limits credential submissions per client IP. A zero rate disables it.
func (r *router) authThrottle() []echo.MiddlewareFunc {
	limit := r.config.HTTP.AuthRateLimit
	if limit <= 0 {
		return nil
	}

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:  rate.Limit(limit),
		Burst: int(limit) + 1,
	})

	return []echo.MiddlewareFunc{echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(_ echo.Context, identifier string, _ error) error {
			return domainerrors.ErrTooManyRequests.WrapMessage("auth throttle for " + identifier)
		},
	})}
}
