package tracker

import (
	"context"
	"fmt"

	"github.com/etnz/tracker/date"
	"github.com/rs/zerolog"
)

// Provider retrieves historical series from a remote data source.
type Provider interface {
	// History returns the daily close prices of symbol within r.
	History(ctx context.Context, symbol string, r date.Range) (Series, error)
	// ForexHistory returns the daily rates converting base into convertTo within r.
	ForexHistory(ctx context.Context, base, convertTo string, r date.Range) (Series, error)
}

// Tracker runs the valuation pipeline stages against a Store.
//
// Stages are meant to run in order: Fetch, Convert, Value, Aggregate. Each
// stage reads what the previous one wrote in the Store, so a stage can be
// rerun on its own as long as its inputs are there.
type Tracker struct {
	cfg      *Config
	store    *Store
	provider Provider
	logger   zerolog.Logger
	today    date.Date
}

// New returns a Tracker storing its series in the configured JSON directory.
func New(cfg *Config, provider Provider, logger zerolog.Logger) *Tracker {
	return &Tracker{
		cfg:      cfg,
		store:    NewStore(cfg.JSONDir),
		provider: provider,
		logger:   logger,
		today:    date.Today(),
	}
}

// Store returns the store holding the series.
func (t *Tracker) Store() *Store { return t.store }

// Run executes all the stages in order, stopping at the first error.
func (t *Tracker) Run(ctx context.Context) error {
	if err := t.Fetch(ctx); err != nil {
		return err
	}
	if err := t.Convert(); err != nil {
		return err
	}
	if err := t.Value(); err != nil {
		return err
	}
	return t.Aggregate()
}

// Fetch downloads every benchmark, stock and currency series up to today and stores them.
//
// Currency series are cleaned from weekends and from dates before the configured floor.
func (t *Tracker) Fetch(ctx context.Context) error {
	for _, b := range t.cfg.Benchmarks {
		r := date.Range{From: t.cfg.BenchmarkStart(), To: t.today}
		prices, err := t.provider.History(ctx, b.Symbol, r)
		if err != nil {
			return fmt.Errorf("cannot fetch benchmark %s: %w", b.Symbol, err)
		}
		if err := t.store.Put(BenchmarkKey(b.Symbol), prices); err != nil {
			return err
		}
	}

	for _, s := range t.cfg.Stocks {
		r := date.Range{From: s.From(), To: t.today}
		prices, err := t.provider.History(ctx, s.Symbol, r)
		if err != nil {
			return fmt.Errorf("cannot fetch stock %s: %w", s.Symbol, err)
		}
		if err := t.store.Put(StockKey(s.Symbol), prices); err != nil {
			return err
		}
	}

	reporting := t.cfg.ReportingCurrency
	for _, cur := range t.cfg.Currencies {
		r := date.Range{From: t.cfg.Floor(), To: t.today}
		rates, err := t.provider.ForexHistory(ctx, cur, reporting, r)
		if err != nil {
			return fmt.Errorf("cannot fetch currency %s%s: %w", cur, reporting, err)
		}
		cleaned := CleanForex(rates, t.cfg.Floor())
		t.logger.Debug().
			Str("pair", cur+reporting).
			Int("dropped", rates.Len()-cleaned.Len()).
			Msg("cleaned forex history")
		if err := t.store.Put(CurrencyKey(cur, reporting), cleaned); err != nil {
			return err
		}
	}
	t.logger.Info().
		Int("benchmarks", len(t.cfg.Benchmarks)).
		Int("stocks", len(t.cfg.Stocks)).
		Int("currencies", len(t.cfg.Currencies)).
		Msg("fetch done")
	return nil
}

// Convert rewrites every benchmark and stock series not denominated in the
// reporting currency into the reporting currency.
func (t *Tracker) Convert() error {
	for _, b := range t.cfg.Benchmarks {
		if err := t.convert(BenchmarkKey(b.Symbol), b.Currency); err != nil {
			return err
		}
	}
	for _, s := range t.cfg.Stocks {
		if err := t.convert(StockKey(s.Symbol), s.Currency); err != nil {
			return err
		}
	}
	t.logger.Info().Str("currency", t.cfg.ReportingCurrency).Msg("convert done")
	return nil
}

// convert rewrites the series under k from currency into the reporting currency.
func (t *Tracker) convert(k Key, currency string) error {
	reporting := t.cfg.ReportingCurrency
	if currency == reporting {
		return nil
	}
	fx, err := t.store.Get(CurrencyKey(currency, reporting))
	if err != nil {
		return err
	}
	err = t.store.Update(k, func(s Series) (Series, error) { return Convert(s, fx) })
	if err != nil {
		return err
	}
	t.logger.Debug().Str("series", k.String()).Str("from", currency).Msg("converted")
	return nil
}

// Value rewrites every stock series from prices into the value of the holding.
func (t *Tracker) Value() error {
	for _, s := range t.cfg.Stocks {
		minor := t.cfg.minorUnitsOf(s.Currency)
		err := t.store.Update(StockKey(s.Symbol), func(prices Series) (Series, error) {
			return Value(prices, s.Quantity(), minor), nil
		})
		if err != nil {
			return err
		}
	}
	t.logger.Info().Int("stocks", len(t.cfg.Stocks)).Msg("value done")
	return nil
}

// Aggregate sums all stock values into the processed series.
//
// Stocks are summed in configuration order, the first one defines the dates of the result.
func (t *Tracker) Aggregate() error {
	if len(t.cfg.Stocks) == 0 {
		return fmt.Errorf("no stocks to aggregate")
	}
	values := make([]Series, 0, len(t.cfg.Stocks))
	for _, s := range t.cfg.Stocks {
		v, err := t.store.Get(StockKey(s.Symbol))
		if err != nil {
			return err
		}
		values = append(values, v)
	}
	total := Aggregate(values[0], values[1:]...)
	if err := t.store.Put(ProcessedKey, total); err != nil {
		return err
	}
	day, v := total.Latest()
	t.logger.Info().Int("days", total.Len()).Str("latest", day.String()).Str("value", FormatValue(v)).Msg("aggregate done")
	return nil
}
