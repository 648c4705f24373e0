package export

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/etnz/tracker"
	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNotEnoughData is returned when no line has at least two points to draw.
var ErrNotEnoughData = errors.New("not enough data to draw a chart")

// Line is a named series drawn on a chart.
type Line struct {
	Name   string
	Series tracker.Series
}

var palette = []drawing.Color{
	drawing.ColorFromHex("2563eb"), // blue-600
	drawing.ColorFromHex("dc2626"), // red-600
	drawing.ColorFromHex("16a34a"), // green-600
	drawing.ColorFromHex("9333ea"), // purple-600
	drawing.ColorFromHex("ea580c"), // orange-600
	drawing.ColorFromHex("6b7280"), // gray-500
}

// Rebase returns s scaled so that its first value is 100.
// It returns false when s is empty or starts at zero.
func Rebase(s tracker.Series) (tracker.Series, bool) {
	var out tracker.Series
	_, first := s.First()
	if s.Len() == 0 || first.IsZero() {
		return out, false
	}
	hundred := decimal.NewFromInt(100)
	for day, v := range s.Values() {
		out.Append(day, v.Mul(hundred).Div(first))
	}
	return out, true
}

// Chart renders lines rebased to 100 as a PNG into w.
//
// Lines that cannot be rebased or have less than two points are skipped.
func Chart(w io.Writer, title string, lines []Line) error {
	var series []chart.Series
	for _, l := range lines {
		rebased, ok := Rebase(l.Series)
		if !ok || rebased.Len() < 2 {
			continue
		}
		xValues := make([]time.Time, 0, rebased.Len())
		yValues := make([]float64, 0, rebased.Len())
		for day, v := range rebased.Values() {
			xValues = append(xValues, day.Time())
			yValues = append(yValues, v.InexactFloat64())
		}
		width := 1.5
		if len(series) == 0 {
			width = 2.5
		}
		series = append(series, chart.TimeSeries{
			Name: l.Name,
			Style: chart.Style{
				StrokeColor: palette[len(series)%len(palette)],
				StrokeWidth: width,
			},
			XValues: xValues,
			YValues: yValues,
		})
	}
	if len(series) == 0 {
		return ErrNotEnoughData
	}

	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("chart render failed: %w", err)
	}
	return nil
}
