package errors

// ErrorInfo is what the error page shows about a failed request.
type ErrorInfo struct {
	Status  int
	Code    string // Business error code, e.g. "PRODUCT_NOT_FOUND"
	Message string // User-friendly error message
	Details string
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string
}

// ErrorPage is the view model for the rendered error template.
type ErrorPage struct {
	Error *ErrorInfo
	Meta  *MetaInfo
}

// NewErrorPage builds the error page model from an AppError.
func NewErrorPage(appErr AppError, requestID string) *ErrorPage {
	return &ErrorPage{
		Error: &ErrorInfo{
			Status:  appErr.HTTPCode(),
			Code:    appErr.ErrorCode(),
			Message: appErr.Message(),
			Details: appErr.Details(),
		},
		Meta: &MetaInfo{RequestID: requestID},
	}
}
