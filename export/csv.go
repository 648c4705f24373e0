package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/etnz/tracker"
)

// Headers is the header row of every exported series.
var Headers = []string{"date", "value"}

// WriteCSV writes headers then one row per entry of s, in chronological order.
func WriteCSV(w io.Writer, headers []string, s tracker.Series) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for day, v := range s.Values() {
		if err := writer.Write([]string{day.String(), tracker.FormatValue(v)}); err != nil {
			return fmt.Errorf("failed to write record %s: %w", day, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// CSVFile writes s into <dir>/<name>.csv, overwriting any previous content.
func CSVFile(dir, name string, headers []string, s tracker.Series) (err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	path := filepath.Join(dir, name+".csv")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	if err := WriteCSV(file, headers, s); err != nil {
		return fmt.Errorf("cannot export %s: %w", path, err)
	}
	return nil
}
