// Package charts turns filtered price records into chart scenes.
package charts

import (
	"strconv"
	"strings"
	"time"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/floats"

	"github.com/aristath/stockchart/internal/domain"
)

const (
	lineColor   = "steelblue"
	overlayDash = "4 3"
	emptyLabel  = "No matching records"

	// tooltipDateLayout matches the en-US short date (1/2/2006)
	tooltipDateLayout = "1/2/2006"
)

// Options controls chart geometry
type Options struct {
	Width        int
	Height       int
	Margin       Margin
	MarkerRadius float64
	TickCount    int
}

// DefaultOptions returns the 600×600 layout
func DefaultOptions() Options {
	return Options{
		Width:        600,
		Height:       600,
		Margin:       Margin{Top: 20, Right: 30, Bottom: 30, Left: 40},
		MarkerRadius: 5,
		TickCount:    10,
	}
}

// Renderer computes scales, axes, the line and markers for a record sequence
type Renderer struct {
	opts Options
}

// NewRenderer creates a renderer; zero fields fall back to the defaults
func NewRenderer(opts Options) *Renderer {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.Margin == (Margin{}) {
		opts.Margin = def.Margin
	}
	if opts.MarkerRadius <= 0 {
		opts.MarkerRadius = def.MarkerRadius
	}
	if opts.TickCount <= 0 {
		opts.TickCount = def.TickCount
	}
	return &Renderer{opts: opts}
}

// Options returns the effective options
func (r *Renderer) Options() Options {
	return r.opts
}

// Render builds the scene for records in input order
func (r *Renderer) Render(records []domain.Record) *Scene {
	return r.RenderWithAverage(records, 0)
}

// RenderWithAverage builds the scene and overlays a simple moving average of
// period records when 2 <= period <= len(records).
func (r *Renderer) RenderWithAverage(records []domain.Record, period int) *Scene {
	innerW := float64(r.opts.Width - r.opts.Margin.Left - r.opts.Margin.Right)
	innerH := float64(r.opts.Height - r.opts.Margin.Top - r.opts.Margin.Bottom)

	scene := &Scene{
		Width:       r.opts.Width,
		Height:      r.opts.Height,
		Margin:      r.opts.Margin,
		InnerWidth:  innerW,
		InnerHeight: innerH,
		Markers:     []Marker{},
	}

	if len(records) == 0 {
		// Placeholder domains: no time ticks, value axis over [0, 1]
		y := LinearScale{D0: 0, D1: 1, R0: innerH, R1: 0}
		scene.XAxis = Axis{Orient: OrientBottom, Domain: bottomDomain(innerW), Ticks: []Tick{}}
		scene.YAxis = r.valueAxis(y, innerH)
		scene.Caption = emptyLabel
		return scene
	}

	xs := make([]float64, len(records))
	prices := make([]float64, len(records))
	for i, rec := range records {
		xs[i] = float64(rec.Date.UnixMilli())
		prices[i] = rec.PriceFloat()
	}

	x := TimeScale{
		D0: time.UnixMilli(int64(floats.Min(xs))).UTC(),
		D1: time.UnixMilli(int64(floats.Max(xs))).UTC(),
		R0: 0,
		R1: innerW,
	}
	y := LinearScale{D0: 0, D1: floats.Max(prices), R0: innerH, R1: 0}

	scene.XAxis = r.timeAxis(x, innerW)
	scene.YAxis = r.valueAxis(y, innerH)

	points := make([][2]float64, len(records))
	for i, rec := range records {
		points[i] = [2]float64{x.Map(rec.Date), y.Map(prices[i])}
		scene.Markers = append(scene.Markers, Marker{
			CX:    points[i][0],
			CY:    points[i][1],
			R:     r.opts.MarkerRadius,
			Fill:  lineColor,
			Stock: rec.Stock,
			Date:  rec.Date.Format(tooltipDateLayout),
			Price: rec.Price.String(),
		})
	}

	scene.Line = &Path{Class: "line", D: linePath(points), Stroke: lineColor, StrokeWidth: 1.5}

	if period >= 2 && period <= len(records) {
		sma := talib.Sma(prices, period)
		avg := make([][2]float64, 0, len(records)-period+1)
		for i := period - 1; i < len(records); i++ {
			avg = append(avg, [2]float64{points[i][0], y.Map(sma[i])})
		}
		scene.Overlay = &Path{
			Class:       "average",
			D:           linePath(avg),
			Stroke:      "darkorange",
			StrokeWidth: 1,
			Dash:        overlayDash,
		}
	}

	return scene
}

func (r *Renderer) timeAxis(x TimeScale, innerW float64) Axis {
	ticks := []Tick{}
	for _, t := range x.Ticks(r.opts.TickCount) {
		ticks = append(ticks, Tick{Pos: x.Map(t), Label: formatTimeTick(t)})
	}
	return Axis{Orient: OrientBottom, Domain: bottomDomain(innerW), Ticks: ticks}
}

func (r *Renderer) valueAxis(y LinearScale, innerH float64) Axis {
	format := y.TickFormat(r.opts.TickCount)
	ticks := []Tick{}
	for _, v := range y.Ticks(r.opts.TickCount) {
		ticks = append(ticks, Tick{Pos: y.Map(v), Label: format(v)})
	}
	return Axis{Orient: OrientLeft, Domain: leftDomain(innerH), Ticks: ticks}
}

// Outer tick size of the axis line ends
const tickSizeOuter = 6

// crisp offsets one-pixel lines onto pixel centres
const crisp = 0.5

func bottomDomain(width float64) string {
	return "M" + num(crisp) + "," + num(tickSizeOuter) +
		"V" + num(crisp) +
		"H" + num(width+crisp) +
		"V" + num(tickSizeOuter)
}

func leftDomain(height float64) string {
	return "M" + num(-tickSizeOuter) + "," + num(height+crisp) +
		"H" + num(crisp) +
		"V" + num(crisp) +
		"H" + num(-tickSizeOuter)
}

// linePath joins points with straight segments
func linePath(points [][2]float64) string {
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteByte('L')
		}
		b.WriteString(num(p[0]))
		b.WriteByte(',')
		b.WriteString(num(p[1]))
	}
	return b.String()
}

// num prints a coordinate with at most two decimals
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
