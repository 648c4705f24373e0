package tracker

import (
	"errors"
	"fmt"

	"github.com/etnz/tracker/date"
	"github.com/shopspring/decimal"
)

// ErrMissingRate is returned when a currency series has no rate for a date of the converted series.
var ErrMissingRate = errors.New("missing exchange rate")

// Convert returns the series s expressed in another currency.
//
// Each value is multiplied by the rate of fx on the exact same date. A date
// of s absent from fx is a data-integrity fault, there is no fallback on a
// previous rate.
func Convert(s, fx Series) (Series, error) {
	var out Series
	for day, v := range s.Values() {
		rate, ok := fx.Get(day)
		if !ok {
			return Series{}, fmt.Errorf("cannot convert value on %s: %w", day, ErrMissingRate)
		}
		out.Append(day, v.Mul(rate))
	}
	return out, nil
}

// CleanForex keeps only the rates usable for conversion: on a weekday and not before floor.
func CleanForex(fx Series, floor date.Date) Series {
	return fx.Filter(func(day date.Date, _ decimal.Decimal) bool {
		return !day.Before(floor) && !day.IsWeekend()
	})
}
