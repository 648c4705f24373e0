package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("NewFromString(%q) unexpected error %v", s, err)
	}
	return d
}

func TestMoney(t *testing.T) {
	tests := []struct {
		value, currency, want string
	}{
		{"102", "GBP", "£102.00"},
		{"12345.5", "GBP", "£12,345.50"},
		{"-18", "GBP", "-£18.00"},
		{"0.125", "GBP", "£0.13"},
		{"10", "XXX", "10.00 XXX"},
	}
	for _, tt := range tests {
		if got := Money(dec(t, tt.value), tt.currency); got != tt.want {
			t.Errorf("Money(%s, %s) = %q want %q", tt.value, tt.currency, got, tt.want)
		}
	}
}

func TestSignedMoney(t *testing.T) {
	tests := []struct{ value, want string }{
		{"1", "+£1.00"},
		{"0", "-"},
		{"-1", "-£1.00"},
	}
	for _, tt := range tests {
		if got := SignedMoney(dec(t, tt.value), "GBP"); got != tt.want {
			t.Errorf("SignedMoney(%s) = %q want %q", tt.value, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct{ value, want string }{
		{"-15", "-15.00%"},
		{"1.256", "+1.26%"},
		{"0", "+0.00%"},
	}
	for _, tt := range tests {
		if got := Percent(dec(t, tt.value)); got != tt.want {
			t.Errorf("Percent(%s) = %q want %q", tt.value, got, tt.want)
		}
	}
}

func TestSummaryMarkdown(t *testing.T) {
	d1, d2 := date.New(2020, 1, 2), date.New(2020, 1, 6)
	s := &tracker.Summary{
		ReportingCurrency: "GBP",
		Portfolio:         tracker.Performance{Name: "Portfolio", From: d1, To: d2, Start: dec(t, "120"), End: dec(t, "102")},
		Holdings: []tracker.Performance{
			{Name: "VOD.L", From: d1, To: d2, Start: dec(t, "100"), End: dec(t, "102")},
			{Name: "AAPL", From: d1, To: date.New(2020, 1, 3), Start: dec(t, "20"), End: dec(t, "20")},
		},
		Benchmarks: []tracker.Performance{
			{Name: "^FTSE", From: d1, To: d2, Start: dec(t, "7604.3"), End: dec(t, "7622.4")},
		},
	}
	got := SummaryMarkdown(s)
	for _, want := range []string{
		"# Portfolio Summary on 2020-01-06",
		"Total Market Value: **£102.00**",
		"Since 2020-01-02: -£18.00 (-15.00%)",
		"## Holdings",
		"VOD.L",
		"+£2.00",
		"## Benchmarks",
		"7622.40",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("SummaryMarkdown() does not contain %q:\n%s", want, got)
		}
	}
}

func TestSummaryMarkdownWithoutBenchmarks(t *testing.T) {
	s := &tracker.Summary{ReportingCurrency: "GBP"}
	if got := SummaryMarkdown(s); strings.Contains(got, "Benchmarks") || strings.Contains(got, "Holdings") {
		t.Errorf("SummaryMarkdown() rendered empty sections:\n%s", got)
	}
}

func TestCommentaryMarkdown(t *testing.T) {
	got := CommentaryMarkdown("Steady week.")
	if !strings.Contains(got, "## Commentary") || !strings.Contains(got, "Steady week.") {
		t.Errorf("CommentaryMarkdown() = %q", got)
	}
}
