package tracker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/tracker/date"
	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

// envPrefix is the prefix of environment variables overriding the configuration file.
const envPrefix = "TRACKER"

// Config holds everything a run needs. It is loaded once before the pipeline starts
// and must not be modified afterwards.
type Config struct {
	APIKey            string `toml:"api_key" yaml:"api_key" envconfig:"API_KEY"`
	BaseURL           string `toml:"base_url" yaml:"base_url" envconfig:"BASE_URL"`
	ReportingCurrency string `toml:"reporting_currency" yaml:"reporting_currency" envconfig:"REPORTING_CURRENCY"`
	BenchmarkFrom     string `toml:"benchmark_from" yaml:"benchmark_from" envconfig:"BENCHMARK_FROM"` // first day fetched for benchmarks
	CurrencyFloor     string `toml:"currency_floor" yaml:"currency_floor" envconfig:"CURRENCY_FLOOR"` // rates before that day are dropped
	JSONDir           string `toml:"json_dir" yaml:"json_dir" envconfig:"JSON_DIR"`
	CSVDir            string `toml:"csv_dir" yaml:"csv_dir" envconfig:"CSV_DIR"`
	LogLevel          string `toml:"log_level" yaml:"log_level" envconfig:"LOG_LEVEL"`

	Benchmarks []Instrument `toml:"benchmarks" yaml:"benchmarks" ignored:"true"`
	Stocks     []Stock      `toml:"stocks" yaml:"stocks" ignored:"true"`
	Currencies []string     `toml:"currencies" yaml:"currencies" ignored:"true"`

	Reports ReportsConfig `toml:"reports" yaml:"reports" envconfig:"REPORTS"`

	benchmarkFrom date.Date
	currencyFloor date.Date
}

// Instrument identifies a tradable symbol and its denomination currency.
type Instrument struct {
	Symbol   string `toml:"symbol" yaml:"symbol"`
	Currency string `toml:"currency" yaml:"currency"`
}

// Stock is an Instrument held in the portfolio.
type Stock struct {
	Instrument `yaml:",inline"`
	Amount     float64 `toml:"amount" yaml:"amount"` // held quantity
	Date       string  `toml:"date" yaml:"date"`     // first day to fetch

	from date.Date
}

// Quantity returns the held quantity.
func (s Stock) Quantity() decimal.Decimal { return decimal.NewFromFloat(s.Amount) }

// From returns the first day to fetch for that stock.
func (s Stock) From() date.Date { return s.from }

// ReportsConfig selects the optional outputs written next to the CSV files.
type ReportsConfig struct {
	Chart    bool   `toml:"chart" yaml:"chart" envconfig:"CHART"`
	Workbook bool   `toml:"workbook" yaml:"workbook" envconfig:"WORKBOOK"`
	Summary  bool   `toml:"summary" yaml:"summary" envconfig:"SUMMARY"`
	Model    string `toml:"model" yaml:"model" envconfig:"MODEL"` // Gemini model used for commentary
}

// DefaultConfig returns a Config with the reference defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:           "https://api.worldtradingdata.com/api/v1/",
		ReportingCurrency: "GBP",
		BenchmarkFrom:     "2018-06-29",
		CurrencyFloor:     "2018-01-01",
		JSONDir:           "json",
		CSVDir:            "csv",
		LogLevel:          "info",
		Reports: ReportsConfig{
			Chart:    true,
			Workbook: true,
			Summary:  true,
			Model:    "gemini-2.5-flash",
		},
	}
}

// LoadConfig reads the configuration file, applies environment overrides and validates the result.
//
// Files ending in .yaml or .yml are read as YAML, anything else as TOML.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read configuration: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse configuration %q: %w", path, err)
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("cannot read configuration from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration and resolves its dates.
func (c *Config) Validate() error {
	var errs error
	if c.APIKey == "" {
		errs = errors.Join(errs, fmt.Errorf("api_key is not set, use the configuration file or %s_API_KEY", envPrefix))
	}
	if money.GetCurrency(c.ReportingCurrency) == nil {
		errs = errors.Join(errs, fmt.Errorf("unknown reporting currency %q", c.ReportingCurrency))
	}

	var err error
	if c.benchmarkFrom, err = date.Parse(c.BenchmarkFrom); err != nil {
		errs = errors.Join(errs, fmt.Errorf("benchmark_from: %w", err))
	}
	if c.currencyFloor, err = date.Parse(c.CurrencyFloor); err != nil {
		errs = errors.Join(errs, fmt.Errorf("currency_floor: %w", err))
	}

	for _, cur := range c.Currencies {
		if money.GetCurrency(cur) == nil {
			errs = errors.Join(errs, fmt.Errorf("unknown currency %q", cur))
		}
	}

	if len(c.Stocks) == 0 {
		errs = errors.Join(errs, errors.New("no stocks configured"))
	}
	for i := range c.Stocks {
		s := &c.Stocks[i]
		if err := c.validateInstrument(s.Instrument); err != nil {
			errs = errors.Join(errs, fmt.Errorf("stock %q: %w", s.Symbol, err))
		}
		if s.Amount <= 0 {
			errs = errors.Join(errs, fmt.Errorf("stock %q: amount must be positive, got %v", s.Symbol, s.Amount))
		}
		if s.from, err = date.Parse(s.Date); err != nil {
			errs = errors.Join(errs, fmt.Errorf("stock %q: %w", s.Symbol, err))
		}
	}
	for _, b := range c.Benchmarks {
		if err := c.validateInstrument(b); err != nil {
			errs = errors.Join(errs, fmt.Errorf("benchmark %q: %w", b.Symbol, err))
		}
	}
	return errs
}

// validateInstrument checks that ins can be valued in the reporting currency.
func (c *Config) validateInstrument(ins Instrument) error {
	if ins.Symbol == "" {
		return errors.New("missing symbol")
	}
	if money.GetCurrency(ins.Currency) == nil {
		return fmt.Errorf("unknown currency %q", ins.Currency)
	}
	if ins.Currency != c.ReportingCurrency && !slices.Contains(c.Currencies, ins.Currency) {
		return fmt.Errorf("currency %s is not listed in currencies, it cannot be converted to %s", ins.Currency, c.ReportingCurrency)
	}
	return nil
}

// BenchmarkStart returns the first day fetched for benchmarks.
func (c *Config) BenchmarkStart() date.Date { return c.benchmarkFrom }

// Floor returns the first day kept in currency series.
func (c *Config) Floor() date.Date { return c.currencyFloor }

// MinorUnits returns the number of minor-unit digits of the reporting currency (2 for GBP).
func (c *Config) MinorUnits() int32 {
	cur := money.GetCurrency(c.ReportingCurrency)
	if cur == nil {
		return 0
	}
	return int32(cur.Fraction)
}

// minorUnitsOf returns the digits to shift prices of an instrument denominated in currency.
//
// Only reporting currency prices are quoted in minor units.
func (c *Config) minorUnitsOf(currency string) int32 {
	if currency != c.ReportingCurrency {
		return 0
	}
	return c.MinorUnits()
}
