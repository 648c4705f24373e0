package tracker

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Kind is the family a series belongs to in the Store.
type Kind string

const (
	Benchmarks Kind = "benchmarks"
	Stocks     Kind = "stocks"
	Currencies Kind = "currencies"
	Processed  Kind = "processed"
)

// Key identifies a series in the Store.
type Key struct {
	Kind Kind
	Name string
}

func (k Key) String() string {
	if k.Kind == Processed {
		return string(Processed)
	}
	return string(k.Kind) + "/" + k.Name
}

// BenchmarkKey returns the key of a benchmark series.
func BenchmarkKey(symbol string) Key { return Key{Benchmarks, symbol} }

// StockKey returns the key of a stock series.
func StockKey(symbol string) Key { return Key{Stocks, symbol} }

// CurrencyKey returns the key of the series converting from into to (e.g. USDGBP).
func CurrencyKey(from, to string) Key { return Key{Currencies, from + to} }

// ProcessedKey is the key of the aggregated portfolio series.
var ProcessedKey = Key{Kind: Processed}

// Store persists series as flat JSON objects in a directory.
//
//	<root>/benchmarks/<symbol>.json
//	<root>/stocks/<symbol>.json
//	<root>/currencies/<FROM><TO>.json
//	<root>/processed.json
type Store struct {
	root string
}

// NewStore returns a Store rooted in dir. The directory is created on first write.
func NewStore(dir string) *Store { return &Store{root: dir} }

// Path returns the file holding the series for k.
func (s *Store) Path(k Key) string {
	if k.Kind == Processed {
		return filepath.Join(s.root, "processed.json")
	}
	return filepath.Join(s.root, string(k.Kind), k.Name+".json")
}

// Get reads the series stored under k.
func (s *Store) Get(k Key) (Series, error) {
	var series Series
	content, err := os.ReadFile(s.Path(k))
	if err != nil {
		return series, fmt.Errorf("cannot read %s: %w", k, err)
	}
	if err := json.Unmarshal(content, &series); err != nil {
		return series, fmt.Errorf("cannot decode %s: %w", k, err)
	}
	return series, nil
}

// Put replaces the series stored under k.
func (s *Store) Put(k Key, series Series) error {
	file := s.Path(k)
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("cannot create directory for %s: %w", k, err)
	}
	content, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("cannot encode %s: %w", k, err)
	}
	if err := os.WriteFile(file, content, 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", k, err)
	}
	return nil
}

// Update rewrites in place the series stored under k with the result of transform.
//
// The file is read, transformed and written back through a single handle,
// which is released whatever happens. The file is left untouched if transform fails.
func (s *Store) Update(k Key, transform func(Series) (Series, error)) (err error) {
	f, err := os.OpenFile(s.Path(k), os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", k, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cannot close %s: %w", k, cerr)
		}
	}()

	content, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", k, err)
	}
	var series Series
	if err := json.Unmarshal(content, &series); err != nil {
		return fmt.Errorf("cannot decode %s: %w", k, err)
	}

	series, err = transform(series)
	if err != nil {
		return fmt.Errorf("cannot update %s: %w", k, err)
	}

	content, err = json.Marshal(series)
	if err != nil {
		return fmt.Errorf("cannot encode %s: %w", k, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("cannot rewind %s: %w", k, err)
	}
	if _, err := f.Write(content); err != nil {
		return fmt.Errorf("cannot write %s: %w", k, err)
	}
	if err := f.Truncate(int64(len(content))); err != nil {
		return fmt.Errorf("cannot truncate %s: %w", k, err)
	}
	return nil
}
