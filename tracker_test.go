package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/etnz/tracker/date"
	"github.com/shopspring/decimal"
)

// fakeProvider serves canned series and records the requested ranges.
type fakeProvider struct {
	prices map[string]Series
	rates  map[string]Series
	ranges map[string]date.Range
}

func (p *fakeProvider) History(_ context.Context, symbol string, r date.Range) (Series, error) {
	p.ranges[symbol] = r
	s, ok := p.prices[symbol]
	if !ok {
		return Series{}, errors.New("unknown symbol " + symbol)
	}
	return s.Clone(), nil
}

func (p *fakeProvider) ForexHistory(_ context.Context, base, convertTo string, r date.Range) (Series, error) {
	p.ranges[base+convertTo] = r
	s, ok := p.rates[base+convertTo]
	if !ok {
		return Series{}, errors.New("unknown pair " + base + convertTo)
	}
	return s.Clone(), nil
}

func newTestTracker(t *testing.T) (*Tracker, *fakeProvider) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.APIKey = "key"
	cfg.JSONDir = t.TempDir()
	cfg.Currencies = []string{"USD"}
	cfg.Benchmarks = []Instrument{{"^FTSE", "GBP"}, {"^GSPC", "USD"}}
	cfg.Stocks = []Stock{
		{Instrument: Instrument{"VOD.L", "GBP"}, Amount: 10, Date: "2020-01-02"},
		{Instrument: Instrument{"AAPL", "USD"}, Amount: 4, Date: "2020-01-02"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error %v", err)
	}

	p := &fakeProvider{
		prices: map[string]Series{
			"^FTSE": S(t, map[string]string{"2020-01-02": "7604.30", "2020-01-03": "7622.40"}),
			"^GSPC": S(t, map[string]string{"2020-01-02": "3257.85", "2020-01-03": "3234.85"}),
			"VOD.L": S(t, map[string]string{"2020-01-02": "1000", "2020-01-03": "1010", "2020-01-06": "1020"}),
			"AAPL":  S(t, map[string]string{"2020-01-02": "10", "2020-01-03": "12.5"}),
		},
		rates: map[string]Series{
			"USDGBP": S(t, map[string]string{
				"2017-12-29": "0.74",
				"2020-01-02": "0.5",
				"2020-01-03": "0.4",
				"2020-01-04": "0.4", // Saturday
			}),
		},
		ranges: make(map[string]date.Range),
	}
	tr := New(cfg, p, NewSilentLogger())
	tr.today = date.New(2020, 1, 6)
	return tr, p
}

func TestRun(t *testing.T) {
	tr, p := newTestTracker(t)
	if err := tr.Run(context.Background()); err != nil {
		t.Fatalf("Run() unexpected error %v", err)
	}

	wantRanges := map[string]string{
		"^FTSE":  "2018-06-29..2020-01-06",
		"VOD.L":  "2020-01-02..2020-01-06",
		"USDGBP": "2018-01-01..2020-01-06",
	}
	for k, want := range wantRanges {
		if got := p.ranges[k].String(); got != want {
			t.Errorf("requested range for %s = %s want %s", k, got, want)
		}
	}

	store := tr.Store()
	get := func(k Key) Series {
		s, err := store.Get(k)
		if err != nil {
			t.Fatalf("Get(%v) unexpected error %v", k, err)
		}
		return s
	}

	assertSeries(t, "USDGBP", get(CurrencyKey("USD", "GBP")), map[string]string{
		"2020-01-02": "0.5",
		"2020-01-03": "0.4",
	})
	// reporting currency benchmarks are untouched, others converted.
	assertSeries(t, "^FTSE", get(BenchmarkKey("^FTSE")), map[string]string{
		"2020-01-02": "7604.3",
		"2020-01-03": "7622.4",
	})
	assertSeries(t, "^GSPC", get(BenchmarkKey("^GSPC")), map[string]string{
		"2020-01-02": "1628.925",
		"2020-01-03": "1293.94",
	})
	// pence to pounds, times 10.
	assertSeries(t, "VOD.L", get(StockKey("VOD.L")), map[string]string{
		"2020-01-02": "100.0",
		"2020-01-03": "101.0",
		"2020-01-06": "102.0",
	})
	// converted then times 4.
	assertSeries(t, "AAPL", get(StockKey("AAPL")), map[string]string{
		"2020-01-02": "20.0",
		"2020-01-03": "20.0",
	})
	assertSeries(t, "processed", get(ProcessedKey), map[string]string{
		"2020-01-02": "120.0",
		"2020-01-03": "121.0",
		"2020-01-06": "102.0",
	})
}

func TestRunMissingRate(t *testing.T) {
	tr, p := newTestTracker(t)
	// AAPL traded on a day without rate.
	aapl := p.prices["AAPL"].Clone()
	aapl.Append(date.New(2020, 1, 6), decimal.NewFromInt(13))
	p.prices["AAPL"] = aapl
	if err := tr.Run(context.Background()); !errors.Is(err, ErrMissingRate) {
		t.Errorf("Run() error = %v want ErrMissingRate", err)
	}
}

func TestRunFetchError(t *testing.T) {
	tr, p := newTestTracker(t)
	delete(p.prices, "AAPL")
	if err := tr.Run(context.Background()); err == nil {
		t.Error("Run() expected an error when a fetch fails")
	}
	// nothing was aggregated.
	if _, err := tr.Store().Get(ProcessedKey); err == nil {
		t.Error("processed series exists after a failed run")
	}
}
