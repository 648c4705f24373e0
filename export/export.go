package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/tracker"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Exporter writes the stored series and the reports into the configured CSV directory.
type Exporter struct {
	cfg    *tracker.Config
	store  *tracker.Store
	logger zerolog.Logger
}

// New returns an Exporter reading series from store.
func New(cfg *tracker.Config, store *tracker.Store, logger zerolog.Logger) *Exporter {
	return &Exporter{cfg: cfg, store: store, logger: logger}
}

// Export writes processed.csv and one CSV per benchmark, then the chart and
// the workbook when enabled.
func (e *Exporter) Export() error {
	dir := e.cfg.CSVDir
	processed, err := e.store.Get(tracker.ProcessedKey)
	if err != nil {
		return err
	}
	if err := CSVFile(dir, "processed", Headers, processed); err != nil {
		return err
	}
	lines := []Line{{Name: "Portfolio", Series: processed}}

	for _, b := range e.cfg.Benchmarks {
		s, err := e.store.Get(tracker.BenchmarkKey(b.Symbol))
		if err != nil {
			return err
		}
		if err := CSVFile(dir, b.Symbol, Headers, s); err != nil {
			return err
		}
		lines = append(lines, Line{Name: b.Symbol, Series: s})
	}
	e.logger.Info().Str("dir", dir).Int("files", len(lines)).Msg("csv export done")

	if e.cfg.Reports.Chart {
		if err := e.chart(filepath.Join(dir, "chart.png"), lines); err != nil {
			return err
		}
	}
	if e.cfg.Reports.Workbook {
		sheets := make([]Sheet, len(lines))
		for i, l := range lines {
			sheets[i] = Sheet{Name: l.Name, Series: l.Series}
		}
		path := filepath.Join(dir, "tracker.xlsx")
		if err := Workbook(path, Headers, sheets); err != nil {
			return err
		}
		e.logger.Info().Str("file", path).Int("sheets", len(sheets)).Msg("workbook written")
	}
	return nil
}

func (e *Exporter) chart(path string, lines []Line) error {
	var buf bytes.Buffer
	err := Chart(&buf, fmt.Sprintf("Portfolio vs benchmarks (%s, base 100)", e.cfg.ReportingCurrency), lines)
	if errors.Is(err, ErrNotEnoughData) {
		e.logger.Warn().Msg("chart skipped, not enough data")
		return nil
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("cannot write chart: %w", err)
	}
	e.logger.Info().Str("file", path).Msg("chart written")
	return nil
}

// WriteSummary saves the summary markdown as summary.md and its HTML rendering as summary.html.
func (e *Exporter) WriteSummary(markdown string) error {
	dir := e.cfg.CSVDir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "summary.md"), []byte(markdown), 0644); err != nil {
		return fmt.Errorf("cannot write summary: %w", err)
	}
	html, err := HTML(markdown)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "summary.html"), html, 0644); err != nil {
		return fmt.Errorf("cannot write summary: %w", err)
	}
	e.logger.Info().Str("dir", dir).Msg("summary written")
	return nil
}

// HTML converts GitHub flavored markdown into a standalone HTML page.
func HTML(markdown string) ([]byte, error) {
	var body bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("cannot convert summary to html: %w", err)
	}
	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>Portfolio summary</title></head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
