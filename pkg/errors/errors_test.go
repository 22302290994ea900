package errors

import (
	"errors"
	"net/http"
	"testing"

	"commerce/domain/order"
	"commerce/domain/payment"
	"commerce/domain/product"
	"commerce/domain/shared"

	"github.com/stretchr/testify/assert"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   ErrorCode
		status int
	}{
		{"order not found", order.NewOrderNotFoundError("o1"), CodeOrderNotFound, http.StatusNotFound},
		{"product not found", product.NewProductNotFoundError("p1"), CodeProductNotFound, http.StatusNotFound},
		{"coupon not found", order.NewCouponNotFoundError("X"), CodeCouponNotFound, http.StatusNotFound},
		{"optimistic conflict", order.NewConcurrentModificationError("o1"), CodeConcurrentConflict, http.StatusConflict},
		{"insufficient stock", product.NewInsufficientStockError("p1", 5, 2), CodeInsufficientStock, http.StatusUnprocessableEntity},
		{"coupon unusable", order.NewCouponNotApplicableError("c1", "expired"), CodeCouponNotUsable, http.StatusUnprocessableEntity},
		{"discount too large", order.ErrDiscountExceedsTotal, CodeDiscountTooLarge, http.StatusUnprocessableEntity},
		{"refund too large", payment.ErrRefundExceedsAmount, CodeRefundTooLarge, http.StatusUnprocessableEntity},
		{"invalid transition", shared.NewInvalidTransitionError("order", "SHIPPED", "CANCELLED"), CodeInvalidState, http.StatusUnprocessableEntity},
		{"not pending", order.NewNotPendingError(order.StatusShipped), CodeInvalidState, http.StatusUnprocessableEntity},
		{"validation", shared.NewValidationError("order", "quantity", "must be positive"), CodeValidation, http.StatusBadRequest},
		{"negative total", order.NewNegativeTotalError("o1"), CodeBadRequest, http.StatusBadRequest},
		{"unknown", errors.New("boom"), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := MapDomainError(tt.err)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, appErr.HTTPStatusCode())
		})
	}
}

func TestMapDomainErrorPassthrough(t *testing.T) {
	assert.Nil(t, MapDomainError(nil))

	original := BadRequest("bad input")
	assert.Same(t, original, MapDomainError(original))
}

func TestUnknownErrorHidesMessage(t *testing.T) {
	appErr := MapDomainError(errors.New("sql: connection refused to db host 10.0.0.3"))
	assert.Equal(t, "internal server error", appErr.Message)
}

func TestIs(t *testing.T) {
	err := MapDomainError(order.NewOrderNotFoundError("o1"))
	assert.True(t, Is(err, CodeOrderNotFound))
	assert.False(t, Is(err, CodePaymentNotFound))
	assert.False(t, Is(errors.New("plain"), CodeInternal))
}
