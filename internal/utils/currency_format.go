package utils

import (
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MinorUnits is the number of decimal places every supported currency uses.
const MinorUnits = 2

// CentsToDecimal converts an amount in minor units to major units.
// Example: 125000 returns 1250.00
func CentsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -MinorUnits)
}

// FormatCents renders minor units with the currency code.
// Example: -5000 with EUR returns "-50.00 EUR"
func FormatCents(cents int64, currency domain.Currency) string {
	return CentsToDecimal(cents).StringFixed(MinorUnits) + " " + string(currency)
}
