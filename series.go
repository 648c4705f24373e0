package tracker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/etnz/tracker/date"
	"github.com/shopspring/decimal"
)

// Series is a chronological date to value mapping.
//
// Keys are unique, iteration follows the chronological order and lookups are by date.
type Series struct {
	date.History[decimal.Decimal]
}

// NewSeries returns a Series from a map of date strings to numeric strings.
//
// It is mostly convenient in tests.
func NewSeries(values map[string]string) (Series, error) {
	var s Series
	for k, v := range values {
		day, err := date.Parse(k)
		if err != nil {
			return s, err
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return s, fmt.Errorf("invalid value %q on %s: %w", v, k, err)
		}
		s.Append(day, d)
	}
	return s, nil
}

// Clone returns a deep copy of s.
func (s Series) Clone() Series {
	var c Series
	for day, v := range s.Values() {
		c.Append(day, v)
	}
	return c
}

// Filter returns a copy of s with only the entries accepted by keep.
func (s Series) Filter(keep func(date.Date, decimal.Decimal) bool) Series {
	var c Series
	for day, v := range s.Values() {
		if keep(day, v) {
			c.Append(day, v)
		}
	}
	return c
}

// FormatValue returns the numeric string used to persist and export a value.
//
// Integral values keep one decimal ("50.0"), others use their exact
// shortest form ("10.5", "0.1234").
func FormatValue(v decimal.Decimal) string {
	if v.Equal(v.Truncate(0)) {
		return v.StringFixed(1)
	}
	return v.String()
}

// ParseValue reads a decimal from a decoded JSON value.
//
// Remote APIs and files carry numbers either as JSON numbers or as numeric strings.
func ParseValue(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case string:
		return decimal.NewFromString(strings.TrimSpace(t))
	case json.Number:
		return decimal.NewFromString(t.String())
	case float64:
		return decimal.NewFromFloat(t), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("not a numeric value: %v (%T)", v, v)
	}
}

// MarshalJSON writes the series as a flat JSON object of numeric strings, in chronological order.
func (s Series) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for day, v := range s.Values() {
		w.Append(day.String(), FormatValue(v))
	}
	return w.MarshalJSON()
}

// UnmarshalJSON reads a flat JSON object of date keys and numeric values.
func (s *Series) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	s.Clear()
	for k, v := range raw {
		day, err := date.Parse(k)
		if err != nil {
			return err
		}
		d, err := ParseValue(v)
		if err != nil {
			return fmt.Errorf("invalid value on %s: %w", k, err)
		}
		s.Append(day, d)
	}
	return nil
}

// jsonObjectWriter helps construct a JSON object with a specific field order.
// Its zero value is ready to use.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// Append adds a new key-value pair to the JSON object. The value is marshaled
// to JSON using `json.Marshal`.
func (w *jsonObjectWriter) Append(key string, value interface{}) *jsonObjectWriter {
	if w.err != nil {
		return w
	}

	valBytes, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		return w
	}

	w.WriteString(fmt.Sprintf("%q:", key))
	w.Write(valBytes)
	w.WriteString(",")
	return w
}

// MarshalJSON finalizes the JSON object construction, wraps the content in
// braces, and returns the complete JSON byte slice.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}

	content := bytes.TrimSuffix(w.Bytes(), []byte(","))
	final := make([]byte, 0, len(content)+2)
	final = append(final, '{')
	final = append(final, content...)
	final = append(final, '}')

	return final, nil
}
