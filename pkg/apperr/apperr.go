// Package apperr carries the business error taxonomy shared by all handlers.
package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies a business failure.
type Kind int

const (
	// Validation is bad or missing input.
	Validation Kind = iota
	// NotFound means a referenced entity is absent.
	NotFound
	// Conflict means current state forbids the operation.
	Conflict
	// InsufficientStock means the requested quantity exceeds availability.
	InsufficientStock
	// Internal is an unexpected error; details stay out of responses.
	Internal
)

// Stable machine codes for each failure reason.
const (
	CodeEmptyOrder              = "EMPTY_ORDER"
	CodeMissingCustomer         = "MISSING_CUSTOMER"
	CodeInvalidTerm             = "INVALID_TERM"
	CodeInvalidInstallmentPlan  = "INVALID_INSTALLMENT_PLAN"
	CodeProductNotFound         = "PRODUCT_NOT_FOUND"
	CodeInsufficientStock       = "INSUFFICIENT_STOCK"
	CodePaymentExceedsBalance   = "PAYMENT_EXCEEDS_BALANCE"
	CodeInvalidAmount           = "INVALID_AMOUNT"
	CodeNotFound                = "NOT_FOUND"
	CodeAlreadyVoided           = "ALREADY_VOIDED"
	CodeVoidedSale              = "VOIDED_SALE"
	CodeNotCreditSale           = "NOT_CREDIT_SALE"
	CodeInstallmentLimitReached = "INSTALLMENT_LIMIT_REACHED"
	CodeDuplicate               = "DUPLICATE"
	CodeHasSales                = "HAS_SALES"
	CodeInvalidInput            = "INVALID_INPUT"
	CodeInternal                = "INTERNAL"
)

// Error is a tagged business error with a stable code and a human message.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the kind to its HTTP status.
func (e *Error) Status() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict, InsufficientStock:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap hides an unexpected error behind a generic internal failure.
func Wrap(err error) *Error {
	return &Error{Kind: Internal, Code: CodeInternal, Message: "Error interno", Err: err}
}

// From normalizes any error into an *Error.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err)
}

// Respond writes the error as {success:false, message, code} with its status.
func Respond(c *gin.Context, err error) {
	appErr := From(err)
	c.JSON(appErr.Status(), gin.H{
		"success": false,
		"message": appErr.Message,
		"code":    appErr.Code,
	})
}
