package errors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error with an HTTP status code and a
// machine-readable reason for clients.
type Error struct {
	Code    int    `json:"-"`
	Reason  string `json:"reason"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// With returns a copy of the error wrapping the given cause. The
// predeclared taxonomy values below stay immutable.
func (e *Error) With(err error) *Error {
	clone := *e
	clone.Err = err
	return &clone
}

// New creates a new Error
func New(code int, reason, message string, err error) *Error {
	return &Error{
		Code:    code,
		Reason:  reason,
		Message: message,
		Err:     err,
	}
}

// Verification flow error types
var (
	ErrValidation        = New(http.StatusBadRequest, "invalid_request", "orderRef and orderId are required", nil)
	ErrUpstreamAuth      = New(http.StatusInternalServerError, "paypal_auth_failed", "Payment provider authentication failed", nil)
	ErrUpstreamData      = New(http.StatusInternalServerError, "paypal_order_unreadable", "Payment provider returned an unexpected order payload", nil)
	ErrPaymentIncomplete = New(http.StatusBadRequest, "payment_incomplete", "Payment has not been completed", nil)
	ErrTampering         = New(http.StatusBadRequest, "order_reference_mismatch", "Order reference does not match the payment record", nil)
	ErrCredential        = New(http.StatusInternalServerError, "sheets_credential_invalid", "Record store credentials are invalid", nil)
	ErrOrderNotFound     = New(http.StatusNotFound, "order_not_found", "No delivery record found for this order reference", nil)
	ErrStoreRead         = New(http.StatusInternalServerError, "sheets_read_failed", "Failed to read the delivery record store", nil)
	ErrUpdate            = New(http.StatusInternalServerError, "delivery_update_failed", "Failed to mark the order as delivered", nil)
	ErrInternalServer    = New(http.StatusInternalServerError, "internal_error", "Internal server error", nil)
)

// Respond writes err as a JSON error response and aborts the request.
// Non-application errors are masked as a generic internal error.
func Respond(c *gin.Context, err error) {
	appErr, ok := err.(*Error)
	if !ok {
		appErr = ErrInternalServer.With(err)
	}
	c.AbortWithStatusJSON(appErr.Code, appErr)
}
