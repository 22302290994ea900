package specification

import (
	"testing"
	"time"

	"commerce/domain/order"
	"commerce/domain/shared"

	"github.com/stretchr/testify/assert"
)

func TestTranslateConcreteSpecifications(t *testing.T) {
	tr := NewOrderTranslator()

	assert.NotNil(t, tr.Translate(order.NewByUserIDSpecification("user-1")))
	assert.NotNil(t, tr.Translate(order.NewByStatusSpecification(order.StatusPending)))
	assert.NotNil(t, tr.Translate(order.NewByDateRangeSpecification(time.Now().Add(-time.Hour), time.Now())))
}

func TestTranslateAnd(t *testing.T) {
	tr := NewOrderTranslator()

	both := shared.And(
		order.NewByUserIDSpecification("user-1"),
		order.NewByStatusSpecification(order.StatusDelivered),
	)
	assert.NotNil(t, tr.Translate(both))
}

func TestTranslateUnsupportedReturnsNil(t *testing.T) {
	tr := NewOrderTranslator()

	assert.Nil(t, tr.Translate(nil))
	assert.Nil(t, tr.Translate(shared.Not(order.NewByUserIDSpecification("user-1"))))
	assert.Nil(t, tr.Translate(shared.Or(
		order.NewByUserIDSpecification("user-1"),
		order.NewByStatusSpecification(order.StatusPending),
	)))

	// AND with an untranslatable side falls back entirely.
	assert.Nil(t, tr.Translate(shared.And(
		order.NewByUserIDSpecification("user-1"),
		shared.Not(order.NewByStatusSpecification(order.StatusPending)),
	)))
}
