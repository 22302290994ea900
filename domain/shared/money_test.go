package shared

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount string, currency string) Money {
	t.Helper()
	d, err := decimal.NewFromString(amount)
	require.NoError(t, err)
	m, err := NewMoney(d, currency)
	require.NoError(t, err)
	return m
}

func TestNewMoney(t *testing.T) {
	m := mustMoney(t, "19.99", "USD")
	assert.Equal(t, "USD", m.Currency())
	assert.True(t, m.Amount().Equal(decimal.RequireFromString("19.99")))
}

func TestNewMoneyRejectsEmptyCurrency(t *testing.T) {
	_, err := NewMoney(decimal.NewFromInt(10), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewMoneyRoundsToScale(t *testing.T) {
	m, err := NewMoney(decimal.RequireFromString("10.005"), "USD")
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.RequireFromString("10.01")), "got %s", m.Amount())
}

func TestMoneyAdd(t *testing.T) {
	a := mustMoney(t, "10.50", "USD")
	b := mustMoney(t, "4.25", "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equals(mustMoney(t, "14.75", "USD")))

	// operands unchanged
	assert.True(t, a.Equals(mustMoney(t, "10.50", "USD")))
}

func TestMoneyAddCurrencyMismatch(t *testing.T) {
	a := mustMoney(t, "10", "USD")
	b := mustMoney(t, "10", "EUR")

	_, err := a.Add(b)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDomainRule)
}

func TestMoneySubtractMayGoNegative(t *testing.T) {
	a := mustMoney(t, "5", "USD")
	b := mustMoney(t, "8", "USD")

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.IsNegative())
}

func TestMoneyMultiplyInt(t *testing.T) {
	m := mustMoney(t, "19.99", "USD")
	assert.True(t, m.MultiplyInt(3).Equals(mustMoney(t, "59.97", "USD")))
	assert.True(t, m.MultiplyInt(0).IsZero())
}

func TestMoneyComparisons(t *testing.T) {
	a := mustMoney(t, "10", "USD")
	b := mustMoney(t, "20", "USD")

	assert.True(t, b.GreaterThan(a))
	assert.True(t, b.GreaterThanOrEqual(b))
	assert.True(t, a.LessThan(b))
	assert.False(t, a.GreaterThan(b))
}

func TestMoneyEqualsByValue(t *testing.T) {
	a := mustMoney(t, "10.00", "USD")
	b := mustMoney(t, "10", "USD")
	c := mustMoney(t, "10", "EUR")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestZeroMoney(t *testing.T) {
	z := ZeroMoney("USD")
	assert.True(t, z.IsZero())
	assert.False(t, z.IsNegative())
	assert.False(t, z.IsPositive())
}
