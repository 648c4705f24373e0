package tracker

import (
	"fmt"

	"github.com/etnz/tracker/date"
	"github.com/shopspring/decimal"
)

// Performance holds the first and last value of a series.
type Performance struct {
	Name       string
	From, To   date.Date
	Start, End decimal.Decimal
}

// NewPerformance returns the performance of s between its first and last entry.
func NewPerformance(name string, s Series) Performance {
	p := Performance{Name: name}
	p.From, p.Start = s.First()
	p.To, p.End = s.Latest()
	return p
}

// Change returns End - Start.
func (p Performance) Change() decimal.Decimal { return p.End.Sub(p.Start) }

// Return returns the change in percent of Start, zero when Start is zero.
func (p Performance) Return() decimal.Decimal {
	if p.Start.IsZero() {
		return decimal.Zero
	}
	return p.Change().Mul(decimal.NewFromInt(100)).Div(p.Start)
}

// Summary is an at-a-glance overview of the processed portfolio and its benchmarks.
type Summary struct {
	ReportingCurrency string
	Portfolio         Performance
	Holdings          []Performance
	Benchmarks        []Performance
}

// Summarize reads the stored series and computes their Summary.
//
// It must run after the pipeline: the stock series are expected to hold
// values in the reporting currency.
func Summarize(cfg *Config, store *Store) (*Summary, error) {
	processed, err := store.Get(ProcessedKey)
	if err != nil {
		return nil, err
	}
	if processed.Len() == 0 {
		return nil, fmt.Errorf("processed series is empty")
	}
	s := &Summary{
		ReportingCurrency: cfg.ReportingCurrency,
		Portfolio:         NewPerformance("Portfolio", processed),
	}
	for _, st := range cfg.Stocks {
		v, err := store.Get(StockKey(st.Symbol))
		if err != nil {
			return nil, err
		}
		s.Holdings = append(s.Holdings, NewPerformance(st.Symbol, v))
	}
	for _, b := range cfg.Benchmarks {
		v, err := store.Get(BenchmarkKey(b.Symbol))
		if err != nil {
			return nil, err
		}
		s.Benchmarks = append(s.Benchmarks, NewPerformance(b.Symbol, v))
	}
	return s, nil
}
