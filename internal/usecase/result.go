// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import "fmt"

// Status tells the presentation layer how to style an outcome message.
type Status string

const (
	StatusSuccess Status = "success"
	StatusInfo    Status = "info"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Named redirect targets.
const (
	// RedirectBack asks the presentation layer to return to the referring page.
	RedirectBack      = "back"
	RouteCatalog      = "/"
	RouteLogin        = "/login/"
	RouteOrderSummary = "/cart/order-sum/"
	RouteCheckout     = "/cart/checkout/"
	RouteRefund       = "/refund/"
)

// ProductRoute is the detail page of a product.
func ProductRoute(productID int64) string {
	return fmt.Sprintf("/product-detail-%d/", productID)
}

// PaymentRoute is the landing page of a payment provider.
func PaymentRoute(provider string) string {
	return fmt.Sprintf("/cart/payment-procedure/%s/", provider)
}

// Result is the outcome of a user action: a message to flash and where to go next.
// Infrastructure failures are returned as errors instead.
type Result struct {
	Status   Status
	Message  string
	Redirect string
	Warnings []string
}

func newResult(status Status, message, redirect string) *Result {
	return &Result{Status: status, Message: message, Redirect: redirect}
}

// Success builds a success result.
func Success(message, redirect string) *Result {
	return newResult(StatusSuccess, message, redirect)
}

// Info builds an informational result.
func Info(message, redirect string) *Result {
	return newResult(StatusInfo, message, redirect)
}

// Warning builds a warning result.
func Warning(message, redirect string) *Result {
	return newResult(StatusWarning, message, redirect)
}

// FormError is a validation failure tied to one form field.
type FormError struct {
	Field   string
	Message string
}

func (e *FormError) Error() string {
	return e.Field + ": " + e.Message
}

// NewFormError builds a FormError.
func NewFormError(field, message string) *FormError {
	return &FormError{Field: field, Message: message}
}
