package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Money is an exact amount in a currency. Prices are stored and summed at
// full precision and rounded to two places only when displayed or submitted.
type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

var ringgit = currency.MustParseISO("MYR")

// MYR wraps an amount in Malaysian ringgit.
func MYR(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: ringgit}
}

var displaySymbols = map[currency.Unit]string{
	ringgit: "RM",
}

// String renders the amount the way the app shows it, e.g. "RM 12.50".
func (m Money) String() string {
	symbol, ok := displaySymbols[m.Currency]
	if !ok {
		symbol = m.Currency.String()
	}
	return symbol + " " + m.Amount.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
		Display  string `json:"display"`
	}{
		Amount:   m.Amount.StringFixed(2),
		Currency: m.Currency.String(),
		Display:  m.String(),
	})
}
