package tracker

import (
	"testing"

	"github.com/etnz/tracker/date"
)

// S is a helper for test to create a Series from const.
func S(t *testing.T, values map[string]string) Series {
	t.Helper()
	s, err := NewSeries(values)
	if err != nil {
		t.Fatalf("NewSeries(%v) unexpected error %v", values, err)
	}
	return s
}

// assertSeries checks that got holds exactly want, values compared in their persisted form.
func assertSeries(t *testing.T, name string, got Series, want map[string]string) {
	t.Helper()
	if got.Len() != len(want) {
		t.Errorf("%s.Len() = %d want %d (%v)", name, got.Len(), len(want), got.Days())
	}
	for day, v := range want {
		value, ok := got.Get(date.MustParse(day))
		if !ok {
			t.Errorf("%s[%s] is missing, want %s", name, day, v)
			continue
		}
		if FormatValue(value) != v {
			t.Errorf("%s[%s] = %s want %s", name, day, FormatValue(value), v)
		}
	}
}
