package utils

import (
	"github.com/shopspring/decimal"

	"github.com/masoo/money/internal/core/domain"
)

// FormatWithCurrencyExponent rounds an amount to the decimal precision a
// currency displays, derived from its subunit ratio.
// Example: 12.3456 with USD (exponent 2) returns "12.35"
// Example: 12.3456 with JPY (exponent 0) returns "12"
func FormatWithCurrencyExponent(amount decimal.Decimal, currency domain.Currency) string {
	return amount.Round(int32(currency.Exponent())).String()
}

// SmallestDenominationValue returns the value of a currency's smallest
// physical denomination expressed in whole units, e.g. 0.01 for USD (one
// cent) or 0.05 for CHF (five rappen). Currencies without a recorded
// smallest denomination report false.
func SmallestDenominationValue(currency domain.Currency) (decimal.Decimal, bool) {
	sd, err := currency.SmallestDenomination()
	if err != nil {
		return decimal.Zero, false
	}
	return decimal.New(int64(sd), 0).Div(decimal.New(int64(currency.SubunitToUnit()), 0)), true
}
