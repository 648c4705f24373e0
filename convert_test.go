package tracker

import (
	"errors"
	"testing"

	"github.com/etnz/tracker/date"
)

func TestConvert(t *testing.T) {
	s := S(t, map[string]string{"2020-01-01": "100"})
	fx := S(t, map[string]string{"2020-01-01": "0.5"})

	got, err := Convert(s, fx)
	if err != nil {
		t.Fatalf("Convert() unexpected error %v", err)
	}
	assertSeries(t, "Convert()", got, map[string]string{"2020-01-01": "50.0"})
}

func TestConvertIsProduct(t *testing.T) {
	s := S(t, map[string]string{"2020-01-02": "1234.5", "2020-01-03": "1200", "2020-01-06": "0.01"})
	fx := S(t, map[string]string{"2020-01-02": "0.7570", "2020-01-03": "0.7612", "2020-01-06": "0.8", "2020-01-07": "0.9"})

	got, err := Convert(s, fx)
	if err != nil {
		t.Fatalf("Convert() unexpected error %v", err)
	}
	if got.Len() != s.Len() {
		t.Errorf("Convert().Len() = %d want %d", got.Len(), s.Len())
	}
	for day, v := range s.Values() {
		rate, _ := fx.Get(day)
		c, _ := got.Get(day)
		if !c.Equal(v.Mul(rate)) {
			t.Errorf("Convert()[%v] = %v want %v", day, c, v.Mul(rate))
		}
	}
}

func TestConvertMissingRate(t *testing.T) {
	s := S(t, map[string]string{"2020-01-01": "100", "2020-01-02": "101"})
	fx := S(t, map[string]string{"2020-01-01": "0.5"})

	if _, err := Convert(s, fx); !errors.Is(err, ErrMissingRate) {
		t.Errorf("Convert() error = %v want ErrMissingRate", err)
	}
}

func TestCleanForex(t *testing.T) {
	fx := S(t, map[string]string{
		"2017-12-29": "0.74", // before the floor
		"2018-01-01": "0.74",
		"2018-01-05": "0.73",
		"2018-01-06": "0.73", // Saturday
		"2018-01-07": "0.73", // Sunday
		"2018-01-08": "0.72",
	})

	got := CleanForex(fx, date.New(2018, 1, 1))
	assertSeries(t, "CleanForex()", got, map[string]string{
		"2018-01-01": "0.74",
		"2018-01-05": "0.73",
		"2018-01-08": "0.72",
	})
	for day := range got.Values() {
		if day.IsWeekend() || day.Before(date.New(2018, 1, 1)) {
			t.Errorf("CleanForex() kept %v", day)
		}
	}
	// the input is not modified.
	if fx.Len() != 6 {
		t.Errorf("CleanForex() modified its input, Len() = %d want 6", fx.Len())
	}
}
