package po

import (
	"commerce/domain/shared"

	"github.com/shopspring/decimal"
)

// toMoney rebuilds a Money from its column pair. Currency columns are
// NOT NULL, so construction cannot fail on reads.
func toMoney(amount decimal.Decimal, currency string) shared.Money {
	m, _ := shared.NewMoney(amount, currency)
	return m
}
