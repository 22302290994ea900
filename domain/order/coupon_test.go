package order

import (
	"testing"
	"time"

	"commerce/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validWindow() (time.Time, time.Time) {
	now := time.Now()
	return now.Add(-time.Hour), now.Add(24 * time.Hour)
}

func TestNewCoupon(t *testing.T) {
	from, until := validWindow()

	c, err := NewCoupon("WELCOME10", usd(t, "10"), from, until, 100)
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID())
	assert.True(t, c.IsActive())
	assert.True(t, c.Discount().Equals(usd(t, "10")))
	assert.Equal(t, 0, c.UsedCount())

	_, err = NewCoupon("", usd(t, "10"), from, until, 0)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = NewCoupon("FREE", shared.ZeroMoney(shared.DefaultCurrency), from, until, 0)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = NewCoupon("BAD", usd(t, "10"), until, from, 0)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestCouponIsValidAt(t *testing.T) {
	from, until := validWindow()
	c, err := NewCoupon("WELCOME10", usd(t, "10"), from, until, 2)
	require.NoError(t, err)

	assert.True(t, c.IsValidAt(time.Now()))
	assert.False(t, c.IsValidAt(from.Add(-time.Minute)), "before window")
	assert.False(t, c.IsValidAt(until.Add(time.Minute)), "after window")

	require.NoError(t, c.IncrementUsage())
	require.NoError(t, c.IncrementUsage())
	assert.False(t, c.IsValidAt(time.Now()), "usage limit reached")
	assert.ErrorIs(t, c.IncrementUsage(), ErrCouponNotApplicable)

	c2, err := NewCoupon("DEACTIVATED", usd(t, "10"), from, until, 0)
	require.NoError(t, err)
	c2.Deactivate()
	assert.False(t, c2.IsValidAt(time.Now()))
}

func TestCouponUnlimitedUsage(t *testing.T) {
	from, until := validWindow()
	c, err := NewCoupon("FOREVER", usd(t, "10"), from, until, 0)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		require.NoError(t, c.IncrementUsage())
	}
	assert.True(t, c.IsValidAt(time.Now()))
}

func TestCouponMeetsMinimum(t *testing.T) {
	from, until := validWindow()
	c, err := NewCoupon("BIGSPEND", usd(t, "20"), from, until, 0)
	require.NoError(t, err)

	// no minimum set: any subtotal qualifies
	assert.True(t, c.MeetsMinimum(shared.ZeroMoney(shared.DefaultCurrency)))

	require.NoError(t, c.SetMinimumPurchase(usd(t, "50")))
	assert.False(t, c.MeetsMinimum(usd(t, "49.99")))
	assert.True(t, c.MeetsMinimum(usd(t, "50")))
	assert.True(t, c.MeetsMinimum(usd(t, "120")))
}
