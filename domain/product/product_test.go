package product

import (
	"testing"

	"commerce/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, amount string) shared.Money {
	t.Helper()
	m, err := shared.NewMoney(decimal.RequireFromString(amount), shared.DefaultCurrency)
	require.NoError(t, err)
	return m
}

func newTestProduct(t *testing.T, price string, stock int) *Product {
	t.Helper()
	p, err := NewProduct("Mechanical Keyboard", "SKU-KB-01", money(t, price), stock)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	p := newTestProduct(t, "100", 10)

	assert.NotEmpty(t, p.ID())
	assert.True(t, p.IsActive())
	assert.Equal(t, 10, p.Stock())
	assert.Equal(t, 0, p.Version())
	assert.True(t, p.IsNew())
}

func TestNewProductValidation(t *testing.T) {
	_, err := NewProduct("", "SKU", money(t, "10"), 1)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = NewProduct("Name", "", money(t, "10"), 1)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = NewProduct("Name", "SKU", shared.ZeroMoney(shared.DefaultCurrency), 1)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = NewProduct("Name", "SKU", money(t, "10"), -1)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestReduceStock(t *testing.T) {
	p := newTestProduct(t, "100", 10)

	require.NoError(t, p.ReduceStock(4))
	assert.Equal(t, 6, p.Stock())

	err := p.ReduceStock(7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 6, p.Stock(), "stock unchanged after failed reduction")

	assert.ErrorIs(t, p.ReduceStock(0), shared.ErrInvalidInput)
	assert.ErrorIs(t, p.ReduceStock(-1), shared.ErrInvalidInput)
}

func TestIncreaseStock(t *testing.T) {
	p := newTestProduct(t, "100", 2)

	require.NoError(t, p.IncreaseStock(3))
	assert.Equal(t, 5, p.Stock())
	assert.ErrorIs(t, p.IncreaseStock(0), shared.ErrInvalidInput)
}

func TestCurrentPrice(t *testing.T) {
	p := newTestProduct(t, "100", 10)
	assert.True(t, p.CurrentPrice().Equals(money(t, "100")))

	// discount below base applies
	require.NoError(t, p.SetDiscountPrice(money(t, "80")))
	assert.True(t, p.CurrentPrice().Equals(money(t, "80")))

	// discount above base is ignored
	require.NoError(t, p.SetDiscountPrice(money(t, "120")))
	assert.True(t, p.CurrentPrice().Equals(money(t, "100")))

	p.ClearDiscountPrice()
	assert.True(t, p.CurrentPrice().Equals(money(t, "100")))
}

func TestIsAvailable(t *testing.T) {
	p := newTestProduct(t, "100", 5)

	assert.True(t, p.IsAvailable(5))
	assert.False(t, p.IsAvailable(6))
	assert.False(t, p.IsAvailable(0))

	p.Deactivate()
	assert.False(t, p.IsAvailable(1))

	p.Activate()
	assert.True(t, p.IsAvailable(1))
}

func TestRebuildFromDTO(t *testing.T) {
	discount := money(t, "80")
	p := RebuildFromDTO(ReconstructionDTO{
		ID:            "prod-1",
		Name:          "Keyboard",
		SKU:           "SKU-1",
		BasePrice:     money(t, "100"),
		DiscountPrice: &discount,
		Stock:         3,
		Active:        true,
		Version:       7,
	})

	assert.Equal(t, "prod-1", p.ID())
	assert.Equal(t, 7, p.Version())
	assert.False(t, p.IsNew())
	assert.True(t, p.CurrentPrice().Equals(discount))
}
