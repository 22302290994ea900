package shared

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the single operating currency of the platform.
// Aggregates reject money in any other currency at the point of combination.
const DefaultCurrency = "USD"

// moneyScale is the number of decimal places every stored amount is rounded to.
const moneyScale = 2

// Money is an immutable amount plus currency. Two Money values are only
// combinable when their currencies match; all arithmetic returns a new value.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates a Money value. The amount is rounded half-up to two
// decimal places; the currency must be a non-empty code.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if currency == "" {
		return Money{}, NewValidationError("money", "currency", "currency is required")
	}
	return Money{
		amount:   amount.Round(moneyScale),
		currency: currency,
	}, nil
}

// NewMoneyFromFloat creates a Money value from a float amount.
// Intended for DTO boundaries; domain code should pass decimals through.
func NewMoneyFromFloat(amount float64, currency string) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency string) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal { return m.amount }

// Currency returns the currency code.
func (m Money) Currency() string { return m.currency }

// Add returns m + other. Fails when currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns m - other. Fails when currencies differ. The result may
// be negative; consumers enforce their own sign rules.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// MultiplyInt returns m * n rounded to the money scale.
func (m Money) MultiplyInt(n int) Money {
	return Money{
		amount:   m.amount.Mul(decimal.NewFromInt(int64(n))).Round(moneyScale),
		currency: m.currency,
	}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.amount.IsZero() }

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool { return m.amount.IsPositive() }

// GreaterThan reports m > other, comparing amounts only.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// GreaterThanOrEqual reports m >= other, comparing amounts only.
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// LessThan reports m < other, comparing amounts only.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// Equals compares by value: amounts equal and currencies identical.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(moneyScale), m.currency)
}

func (m Money) assertSameCurrency(other Money) error {
	if m.currency != other.currency {
		return NewDomainRuleError("money",
			fmt.Sprintf("currency mismatch: %s vs %s", m.currency, other.currency))
	}
	return nil
}
