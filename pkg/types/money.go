package types

import (
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the uniform fallback applied when a cart has no lines to
// take a currency from.
const DefaultCurrency = "USD"

// Money carries an amount as a decimal string alongside its currency code,
// matching the upstream API's wire shape. Amounts are never negative and no
// currency conversion is performed.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{Amount: "0", CurrencyCode: currency}
}

// MoneyFromDecimal stringifies a decimal amount into a Money value.
func MoneyFromDecimal(d decimal.Decimal, currency string) Money {
	return Money{Amount: d.String(), CurrencyCode: currency}
}

// AmountDecimal parses the amount; malformed amounts parse as zero.
func (m Money) AmountDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// IsZero reports whether the amount parses to zero.
func (m Money) IsZero() bool {
	return m.AmountDecimal().IsZero()
}
