package charts

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"

	"github.com/aristath/stockchart/internal/domain"
)

// ErrNotEnoughData is returned when a static export needs at least two
// distinct dates to build its time axis
var ErrNotEnoughData = errors.New("not enough data to export")

var steelBlue = drawing.ColorFromHex("4682b4")

// ExportPNG draws the records as a PNG line chart
func ExportPNG(w io.Writer, records []domain.Record, opts Options, period int, title string) error {
	if len(records) < 2 {
		return ErrNotEnoughData
	}

	xs := make([]time.Time, len(records))
	ys := make([]float64, len(records))
	distinct := false
	for i, r := range records {
		xs[i] = r.Date
		ys[i] = r.PriceFloat()
		if !r.Date.Equal(records[0].Date) {
			distinct = true
		}
	}
	if !distinct {
		return ErrNotEnoughData
	}

	maxPrice := floats.Max(ys)
	if maxPrice <= 0 {
		maxPrice = 1
	}

	prices := chart.TimeSeries{
		Name:    "price",
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: steelBlue,
			StrokeWidth: 1.5,
			DotColor:    steelBlue,
			DotWidth:    3,
		},
	}
	series := []chart.Series{prices}
	if period >= 2 && period <= len(records) {
		series = append(series, &chart.SMASeries{
			Name:        fmt.Sprintf("SMA %d", period),
			InnerSeries: prices,
			Period:      period,
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("ff8c00"),
				StrokeDashArray: []float64{4, 3},
			},
		})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    opts.Margin.Top,
				Right:  opts.Margin.Right,
				Bottom: opts.Margin.Bottom,
				Left:   opts.Margin.Left,
			},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxPrice},
		},
		Series: series,
	}
	if len(series) > 1 {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render png: %w", err)
	}
	return nil
}
