// Package errors maps domain errors onto transport-facing application
// errors. Domain packages know nothing about HTTP; the translation from
// sentinel errors to codes and status lives here.
package errors

import (
	"errors"
	"net/http"

	"commerce/domain/order"
	"commerce/domain/payment"
	"commerce/domain/product"
	"commerce/domain/shared"
	"commerce/domain/shipping"
)

// ErrorCode is the machine-readable error identifier in API responses.
type ErrorCode string

const (
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	CodeOrderNotFound      ErrorCode = "ORDER_NOT_FOUND"
	CodeProductNotFound    ErrorCode = "PRODUCT_NOT_FOUND"
	CodePaymentNotFound    ErrorCode = "PAYMENT_NOT_FOUND"
	CodeShippingNotFound   ErrorCode = "SHIPPING_NOT_FOUND"
	CodeCouponNotFound     ErrorCode = "COUPON_NOT_FOUND"
	CodeInvalidState       ErrorCode = "INVALID_STATE"
	CodeInsufficientStock  ErrorCode = "INSUFFICIENT_STOCK"
	CodeCouponNotUsable    ErrorCode = "COUPON_NOT_APPLICABLE"
	CodeDiscountTooLarge   ErrorCode = "DISCOUNT_EXCEEDS_TOTAL"
	CodeRefundTooLarge     ErrorCode = "REFUND_EXCEEDS_AMOUNT"
	CodeConcurrentConflict ErrorCode = "CONCURRENT_MODIFICATION"
)

// AppError is the application-level error carried up to the API layer.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return string(e.Code) + ": " + e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HTTPStatusCode maps the error code onto an HTTP status.
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound, CodeOrderNotFound, CodeProductNotFound,
		CodePaymentNotFound, CodeShippingNotFound, CodeCouponNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeConcurrentConflict:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeInvalidState, CodeInsufficientStock, CodeCouponNotUsable,
		CodeDiscountTooLarge, CodeRefundTooLarge:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// New creates an AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap creates an AppError keeping the cause for logs.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError      { return New(CodeBadRequest, message) }
func NotFound(message string) *AppError        { return New(CodeNotFound, message) }
func Internal(message string) *AppError        { return New(CodeInternal, message) }
func Conflict(message string) *AppError        { return New(CodeConflict, message) }
func TooManyRequests(message string) *AppError { return New(CodeTooManyRequest, message) }
func Validation(message string) *AppError      { return New(CodeValidation, message) }

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// notFoundMappings pairs each aggregate's not-found sentinel with its code.
var notFoundMappings = []struct {
	sentinel error
	code     ErrorCode
}{
	{order.ErrOrderNotFound, CodeOrderNotFound},
	{order.ErrCouponNotFound, CodeCouponNotFound},
	{product.ErrProductNotFound, CodeProductNotFound},
	{payment.ErrPaymentNotFound, CodePaymentNotFound},
	{shipping.ErrShippingNotFound, CodeShippingNotFound},
}

// conflictSentinels are the per-aggregate optimistic lock sentinels.
var conflictSentinels = []error{
	order.ErrConcurrentModification,
	product.ErrConcurrentModification,
	payment.ErrConcurrentModification,
	shipping.ErrConcurrentModification,
}

// MapDomainError translates a domain error into an AppError using sentinel
// classification. Unknown errors become internal errors so no raw message
// leaks to clients.
func MapDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, m := range notFoundMappings {
		if errors.Is(err, m.sentinel) {
			return Wrap(err, m.code, err.Error())
		}
	}
	for _, sentinel := range conflictSentinels {
		if errors.Is(err, sentinel) {
			return Wrap(err, CodeConcurrentConflict, err.Error())
		}
	}

	switch {
	case errors.Is(err, product.ErrInsufficientStock):
		return Wrap(err, CodeInsufficientStock, err.Error())
	case errors.Is(err, order.ErrCouponNotApplicable):
		return Wrap(err, CodeCouponNotUsable, err.Error())
	case errors.Is(err, order.ErrDiscountExceedsTotal):
		return Wrap(err, CodeDiscountTooLarge, err.Error())
	case errors.Is(err, payment.ErrRefundExceedsAmount):
		return Wrap(err, CodeRefundTooLarge, err.Error())
	case errors.Is(err, shared.ErrInvalidTransition),
		errors.Is(err, order.ErrOrderNotPending),
		errors.Is(err, order.ErrEmptyOrderItems),
		errors.Is(err, product.ErrProductInactive):
		return Wrap(err, CodeInvalidState, err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, shared.ErrDomainRule), errors.Is(err, order.ErrNegativeTotal),
		errors.Is(err, order.ErrItemNotFound), errors.Is(err, order.ErrProductUnavailable):
		return Wrap(err, CodeBadRequest, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, shared.ErrConflict), errors.Is(err, payment.ErrPaymentAlreadyExists):
		return Wrap(err, CodeConflict, err.Error())
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}
