package renderer

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats v as an amount of currency, rounded to its minor unit (e.g. £1,234.50).
//
// Unknown currencies fall back to two decimals followed by the code.
func Money(v decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return v.StringFixed(2) + " " + currency
	}
	dec := v.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// SignedMoney is Money with an explicit + for positive amounts, and "-" for zero.
func SignedMoney(v decimal.Decimal, currency string) string {
	if v.IsZero() {
		return "-"
	}
	if v.IsPositive() {
		return "+" + Money(v, currency)
	}
	return Money(v, currency)
}

// Percent formats p with two decimals and a sign (e.g. +1.25%).
func Percent(p decimal.Decimal) string {
	return fmt.Sprintf("%+.2f%%", p.InexactFloat64())
}

// Points formats an index level with two decimals.
func Points(v decimal.Decimal) string { return v.StringFixed(2) }
