package web

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"storefront/config"
	webmiddleware "storefront/internal/delivery/web/middleware"
	"storefront/internal/delivery/web/response"
	"storefront/internal/delivery/web/router"
	"storefront/internal/delivery/web/router/handler"
	"storefront/internal/delivery/web/view"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/cache"
	"storefront/internal/infra/metrics"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/infra/persistence/sqlitetest"
	"storefront/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testCSRF = "0123456789abcdef0123456789abcdef"

type testServer struct {
	e       *echo.Echo
	db      *gorm.DB
	tokens  service.TokenService
	userID  uuid.UUID
	product int64
}

func newTestServer(t *testing.T, opts ...func(*config.Config)) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Auth:    &config.AuthConfig{BcryptCost: 4, SessionTTL: time.Hour, MinPasswordLength: 8},
		Metrics: &config.MetricsConfig{Enabled: true},
	}
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.SecretKey.Session = "test-secret"
	for _, opt := range opts {
		opt(cfg)
	}

	db := sqlitetest.New(t)
	subID := sqlitetest.SeedCategory(t, db, "shirts")

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	renderer, err := view.New()
	require.NoError(t, err)

	txManager := postgres.NewTransactionManager(db)
	recorder := metrics.New()
	orderRepo := postgres.NewOrderRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)
	userRepo := postgres.NewUserRepository(db)

	userUC := impl.NewUserService(impl.UserServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokens,
		Config:       cfg,
		Logger:       logger,
	})
	catalogUC := impl.NewCatalogService(impl.CatalogServiceParams{
		ProductRepo:  postgres.NewProductRepository(db),
		OrderRepo:    orderRepo,
		FavoriteRepo: favoriteRepo,
		Cache:        cache.NewNoopCatalogCache(),
		Metrics:      recorder,
		Logger:       logger,
	})
	cartUC := impl.NewCartService(impl.CartServiceParams{
		TxManager: txManager,
		OrderRepo: orderRepo,
		Metrics:   recorder,
		Logger:    logger,
	})
	checkoutUC := impl.NewCheckoutService(impl.CheckoutServiceParams{
		TxManager:   txManager,
		OrderRepo:   orderRepo,
		AddressRepo: postgres.NewAddressRepository(db),
		UserRepo:    userRepo,
		Metrics:     recorder,
		Logger:      logger,
	})
	orderUC := impl.NewOrderService(impl.OrderServiceParams{
		TxManager: txManager,
		Metrics:   recorder,
		Logger:    logger,
	})
	favoriteUC := impl.NewFavoriteService(impl.FavoriteServiceParams{
		TxManager:    txManager,
		FavoriteRepo: favoriteRepo,
		Logger:       logger,
	})

	authMiddleware := webmiddleware.NewAuthMiddleware(tokens, logger)
	e := newEcho(ServerParams{
		Cfg:            cfg,
		Logger:         logger,
		Renderer:       renderer,
		AuthMiddleware: authMiddleware,
		RouterParams: router.RouterParams{
			AuthHandler:     handler.NewAuthHandler(userUC, tokens),
			CatalogHandler:  handler.NewCatalogHandler(catalogUC),
			CartHandler:     handler.NewCartHandler(cartUC),
			CheckoutHandler: handler.NewCheckoutHandler(checkoutUC, orderUC, cfg),
			FavoriteHandler: handler.NewFavoriteHandler(favoriteUC),
			AuthMiddleware:  authMiddleware,
			Recorder:        recorder,
			Config:          cfg,
		},
	})

	return &testServer{
		e:       e,
		db:      db,
		tokens:  tokens,
		userID:  sqlitetest.SeedUser(t, db, "alice"),
		product: sqlitetest.SeedProduct(t, db, subID, "Linen shirt", "10", "7"),
	}
}

// do sends the request as alice when session is true. Form posts carry a valid CSRF pair.
func (ts *testServer) do(t *testing.T, method, target string, form url.Values, session bool) *httptest.ResponseRecorder {
	t.Helper()

	return ts.serve(ts.request(t, method, target, form, session))
}

func (ts *testServer) request(t *testing.T, method, target string, form url.Values, session bool) *http.Request {
	t.Helper()

	var req *http.Request
	if form != nil {
		form.Set("csrf", testCSRF)
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		req.AddCookie(&http.Cookie{Name: "csrftoken", Value: testCSRF})
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	if session {
		token, err := ts.tokens.GenerateSessionToken(ts.userID, "alice")
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: response.SessionCookieName, Value: token})
	}

	return req
}

func (ts *testServer) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)

	return rec
}

func TestServer_PublicRoutes(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/metrics", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")

	rec = ts.do(t, http.MethodGet, "/login/", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="csrf"`)
}

func TestServer_ProtectedRoutesRedirectToLogin(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/cart/order-sum/", nil, false)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login/?next=%2Fcart%2Forder-sum%2F", rec.Header().Get(echo.HeaderLocation))

	rec = ts.do(t, http.MethodPost, "/add-to-cart/"+strconv.FormatInt(ts.product, 10)+"/", url.Values{}, false)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login/", rec.Header().Get(echo.HeaderLocation))
}

func TestServer_PostWithoutCSRFIsRejected(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/add-to-cart/"+strconv.FormatInt(ts.product, 10)+"/", nil)
	token, err := ts.tokens.GenerateSessionToken(ts.userID, "alice")
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: response.SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_CatalogPages(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Linen shirt")

	rec = ts.do(t, http.MethodGet, "/category-list/", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "shirts")

	rec = ts.do(t, http.MethodGet, "/product-detail-"+strconv.FormatInt(ts.product, 10)+"/", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Linen shirt description")

	rec = ts.do(t, http.MethodGet, "/product-detail-9999/", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/product-detail-abc/", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CartToPaidOrder(t *testing.T) {
	ts := newTestServer(t)
	productPath := strconv.FormatInt(ts.product, 10)

	rec := ts.do(t, http.MethodPost, "/add-to-cart/"+productPath+"/", url.Values{}, true)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	rec = ts.do(t, http.MethodGet, "/cart/order-sum/", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Linen shirt")
	assert.Contains(t, rec.Body.String(), "Order total: 7")

	rec = ts.do(t, http.MethodPost, "/cart/checkout/", url.Values{
		"shipping_address": {"1 Main St"},
		"shipping_country": {"us"},
		"shipping_zip":     {"12345"},
		"payment_option":   {"X"},
	}, true)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/cart/checkout/", rec.Header().Get(echo.HeaderLocation))

	rec = ts.do(t, http.MethodPost, "/cart/checkout/", url.Values{
		"shipping_address":     {"1 Main St"},
		"shipping_country":     {"us"},
		"shipping_zip":         {"12345"},
		"same_billing_address": {"on"},
		"payment_option":       {"T"},
	}, true)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/cart/payment-procedure/Tinkoff_bank/", rec.Header().Get(echo.HeaderLocation))

	rec = ts.do(t, http.MethodGet, "/cart/payment-procedure/Tinkoff_bank/", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/cart/payment-procedure/Tinkoff_bank/capture/", url.Values{}, true)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	rec = ts.do(t, http.MethodGet, "/cart/order-sum/", nil, true)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	rec = ts.do(t, http.MethodPost, "/cart/payment-procedure/Nope/capture/", url.Values{}, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CaptureRequiresKeyWhenConfigured(t *testing.T) {
	ts := newTestServer(t, func(cfg *config.Config) {
		cfg.Payment = &config.PaymentConfig{CaptureKey: "provider-key"}
	})
	const capture = "/cart/payment-procedure/UMoney/capture/"

	rec := ts.do(t, http.MethodPost, "/add-to-cart/"+strconv.FormatInt(ts.product, 10)+"/", url.Values{}, true)
	require.Equal(t, http.StatusFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/cart/payment-procedure/UMoney/", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "capture/", "the shopper gets no settle form")

	rec = ts.do(t, http.MethodPost, capture, url.Values{}, true)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req := ts.request(t, http.MethodPost, capture, url.Values{"charge_id": {"ch_wrong"}}, true)
	req.Header.Set(handler.HeaderCaptureKey, "guess")
	assert.Equal(t, http.StatusForbidden, ts.serve(req).Code)

	rec = ts.do(t, http.MethodGet, "/cart/order-sum/", nil, true)
	require.Equal(t, http.StatusOK, rec.Code, "the order is still open")

	req = ts.request(t, http.MethodPost, capture, url.Values{"charge_id": {"ch_provider"}}, true)
	req.Header.Set(handler.HeaderCaptureKey, "provider-key")
	rec = ts.serve(req)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	var paid int64
	require.NoError(t, ts.db.Table("payments").Where("charge_id = ?", "ch_provider").Count(&paid).Error)
	assert.EqualValues(t, 1, paid)
}

func TestServer_RedirectCarriesFlash(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/remove-from-cart/"+strconv.FormatInt(ts.product, 10)+"/", url.Values{}, true)
	require.Equal(t, http.StatusFound, rec.Code)

	var flash *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "flash" {
			flash = cookie
		}
	}
	require.NotNil(t, flash)
	assert.NotEmpty(t, flash.Value)
}

func TestServer_Favorites(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/favorites/add/"+strconv.FormatInt(ts.product, 10)+"/", url.Values{}, true)
	require.Equal(t, http.StatusFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/favorites/", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Linen shirt")
}

func TestServer_RegisterStartsSession(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/register/", url.Values{
		"username":  {"bob"},
		"email":     {"bob@example.com"},
		"password1": {"correct-horse"},
		"password2": {"correct-horse"},
	}, false)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	var session *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == response.SessionCookieName {
			session = cookie
		}
	}
	require.NotNil(t, session)

	claims, err := ts.tokens.ValidateToken(session.Value)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Username)

	rec = ts.do(t, http.MethodPost, "/login/", url.Values{
		"username": {"bob"},
		"password": {"wrong-password"},
	}, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Wrong password.")
}

func TestServer_RegisterRejectsBadEmail(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/register/", url.Values{
		"username":  {"carol"},
		"email":     {"not-an-email"},
		"password1": {"correct-horse"},
		"password2": {"correct-horse"},
	}, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Enter a valid email.")
}
