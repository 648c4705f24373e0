package tracker

import (
	"github.com/shopspring/decimal"
)

// Value returns the value of a holding of quantity over time.
//
// When minor is positive, prices are expressed in minor units (e.g. pence)
// and are shifted by that many digits into major units before scaling.
func Value(prices Series, quantity decimal.Decimal, minor int32) Series {
	var out Series
	for day, price := range prices.Values() {
		if minor > 0 {
			price = price.Shift(-minor)
		}
		out.Append(day, price.Mul(quantity))
	}
	return out
}

// Aggregate sums series date by date.
//
// The result has exactly the dates of first. A later series missing one of
// those dates simply does not contribute to it, and its dates unknown to first
// are ignored.
func Aggregate(first Series, rest ...Series) Series {
	total := first.Clone()
	for _, s := range rest {
		for day, sum := range total.Values() {
			v, ok := s.Get(day)
			if !ok {
				continue
			}
			total.Set(day, sum.Add(v))
		}
	}
	return total
}
