package handler

import (
	"net/http"

	"storefront/config"
	"storefront/internal/delivery/web/response"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type checkoutForm struct {
	ShippingAddress    string `form:"shipping_address"`
	ShippingAddress2   string `form:"shipping_address2"`
	ShippingCountry    string `form:"shipping_country"`
	ShippingZip        string `form:"shipping_zip"`
	BillingAddress     string `form:"billing_address"`
	BillingAddress2    string `form:"billing_address2"`
	BillingCountry     string `form:"billing_country"`
	BillingZip         string `form:"billing_zip"`
	SameBillingAddress string `form:"same_billing_address"`
	SetDefaultShipping string `form:"set_default_shipping"`
	UseDefaultShipping string `form:"use_default_shipping"`
	SetDefaultBilling  string `form:"set_default_billing"`
	UseDefaultBilling  string `form:"use_default_billing"`
	PaymentOption      string `form:"payment_option"`
}

func (f *checkoutForm) toInput() *usecase.CheckoutInput {
	return &usecase.CheckoutInput{
		ShippingAddress:    f.ShippingAddress,
		ShippingAddress2:   f.ShippingAddress2,
		ShippingCountry:    f.ShippingCountry,
		ShippingZip:        f.ShippingZip,
		BillingAddress:     f.BillingAddress,
		BillingAddress2:    f.BillingAddress2,
		BillingCountry:     f.BillingCountry,
		BillingZip:         f.BillingZip,
		SameBillingAddress: checked(f.SameBillingAddress),
		SetDefaultShipping: checked(f.SetDefaultShipping),
		UseDefaultShipping: checked(f.UseDefaultShipping),
		SetDefaultBilling:  checked(f.SetDefaultBilling),
		UseDefaultBilling:  checked(f.UseDefaultBilling),
		PaymentOption:      f.PaymentOption,
	}
}

type captureForm struct {
	ChargeID string `form:"charge_id" validate:"omitempty,max=50"`
	SaveCard string `form:"save_card"`
}

type refundForm struct {
	RefCode string `form:"ref_code"`
	Message string `form:"message"`
	Email   string `form:"email"`
}

// HeaderCaptureKey carries the provider's shared capture key.
const HeaderCaptureKey = "X-Capture-Key"

// paymentView is the payment page model.
type paymentView struct {
	*usecase.PaymentOutput
	DemoCapture bool
}

// CheckoutHandler serves checkout, payment and refund pages.
type CheckoutHandler struct {
	checkoutUC  usecase.CheckoutUsecase
	orderUC     usecase.OrderUsecase
	demoCapture bool
}

// NewCheckoutHandler is the constructor for CheckoutHandler, injected by Fx.
func NewCheckoutHandler(checkoutUC usecase.CheckoutUsecase, orderUC usecase.OrderUsecase, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUC:  checkoutUC,
		orderUC:     orderUC,
		demoCapture: cfg.Payment.DemoCapture(),
	}
}

// CheckoutPage renders the checkout form.
func (h *CheckoutHandler) CheckoutPage(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	output, result, err := h.checkoutUC.CheckoutPage(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}
	if result != nil {
		return response.Redirect(c, result)
	}

	return response.Render(c, http.StatusOK, "checkout", "Checkout", output)
}

// SubmitCheckout processes the checkout form.
func (h *CheckoutHandler) SubmitCheckout(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var form checkoutForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}

	result, err := h.checkoutUC.SubmitCheckout(c.Request().Context(), userID, form.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Redirect(c, result)
}

// PaymentPage renders the provider landing page.
func (h *CheckoutHandler) PaymentPage(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	output, result, err := h.checkoutUC.PaymentPage(c.Request().Context(), userID, c.Param("option"))
	if err != nil {
		return errors.WithStack(err)
	}
	if result != nil {
		return response.Redirect(c, result)
	}

	return response.Render(c, http.StatusOK, "payment", "Payment", &paymentView{PaymentOutput: output, DemoCapture: h.demoCapture})
}

// CapturePayment is called back once the provider has captured the charge.
// In demo mode the payment page posts here itself and a missing charge id gets a local one.
func (h *CheckoutHandler) CapturePayment(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	provider := c.Param("option")
	if !usecase.IsPaymentProvider(provider) {
		return echo.ErrNotFound
	}

	var form captureForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}
	if err := c.Validate(&form); err != nil {
		return echo.ErrBadRequest
	}
	if form.ChargeID == "" {
		form.ChargeID = "ch_" + uuid.NewString()[:8]
	}

	result, err := h.orderUC.FinalizeOrder(c.Request().Context(), userID, &usecase.FinalizeInput{
		Provider: provider,
		ChargeID: form.ChargeID,
		SaveCard: checked(form.SaveCard),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Redirect(c, result)
}

// RefundPage renders the refund request form.
func (h *CheckoutHandler) RefundPage(c echo.Context) error {
	return response.Render(c, http.StatusOK, "refund", "Refund", nil)
}

// RequestRefund processes the refund request form.
func (h *CheckoutHandler) RequestRefund(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var form refundForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}

	result, err := h.orderUC.RequestRefund(c.Request().Context(), userID, &usecase.RefundInput{
		RefCode: form.RefCode,
		Message: form.Message,
		Email:   form.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Redirect(c, result)
}
