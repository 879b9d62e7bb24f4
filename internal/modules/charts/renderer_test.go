package charts

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/stockchart/internal/domain"
)

func rec(date time.Time, stock string, price int64) domain.Record {
	return domain.Record{Date: date, Stock: stock, Price: decimal.NewFromInt(price)}
}

func threeDays() []domain.Record {
	return []domain.Record{
		rec(utcDay(2024, 1, 1), "AAPL", 100),
		rec(utcDay(2024, 1, 2), "AAPL", 110),
		rec(utcDay(2024, 1, 3), "AAPL", 105),
	}
}

func TestRenderer_Geometry(t *testing.T) {
	scene := NewRenderer(DefaultOptions()).Render(threeDays())

	assert.Equal(t, 600, scene.Width)
	assert.Equal(t, 600, scene.Height)
	assert.Equal(t, Margin{Top: 20, Right: 30, Bottom: 30, Left: 40}, scene.Margin)
	assert.Equal(t, 530.0, scene.InnerWidth)
	assert.Equal(t, 550.0, scene.InnerHeight)
	assert.Equal(t, "M0.5,6V0.5H530.5V6", scene.XAxis.Domain)
	assert.Equal(t, "M-6,550.5H0.5V0.5H-6", scene.YAxis.Domain)
}

func TestRenderer_MarkersFollowInputOrder(t *testing.T) {
	scene := NewRenderer(DefaultOptions()).Render(threeDays())

	require.Len(t, scene.Markers, 3)
	expected := []struct{ cx, cy float64 }{{0, 50}, {265, 0}, {530, 25}}
	for i, m := range scene.Markers {
		assert.InDelta(t, expected[i].cx, m.CX, 1e-6)
		assert.InDelta(t, expected[i].cy, m.CY, 1e-6)
		assert.Equal(t, 5.0, m.R)
		assert.Equal(t, "steelblue", m.Fill)
		assert.Equal(t, "AAPL", m.Stock)
	}
	assert.Equal(t, "1/1/2024", scene.Markers[0].Date)
	assert.Equal(t, "100", scene.Markers[0].Price)

	require.NotNil(t, scene.Line)
	assert.Equal(t, "M0,50L265,0L530,25", scene.Line.D)
	assert.Equal(t, "steelblue", scene.Line.Stroke)
	assert.Equal(t, 1.5, scene.Line.StrokeWidth)
	assert.Nil(t, scene.Overlay)
	assert.Empty(t, scene.Caption)
}

func TestRenderer_ValueAxisStartsAtZero(t *testing.T) {
	scene := NewRenderer(DefaultOptions()).Render(threeDays())

	ticks := scene.YAxis.Ticks
	require.NotEmpty(t, ticks)
	assert.Equal(t, "0", ticks[0].Label)
	assert.InDelta(t, 550, ticks[0].Pos, 1e-6)
	assert.Equal(t, "110", ticks[len(ticks)-1].Label)
	assert.InDelta(t, 0, ticks[len(ticks)-1].Pos, 1e-6)
}

func TestRenderer_UnorderedInputKeepsPathOrder(t *testing.T) {
	records := []domain.Record{
		rec(utcDay(2024, 1, 3), "AAPL", 105),
		rec(utcDay(2024, 1, 1), "AAPL", 100),
	}
	scene := NewRenderer(DefaultOptions()).Render(records)

	require.Len(t, scene.Markers, 2)
	assert.InDelta(t, 530, scene.Markers[0].CX, 1e-6)
	assert.InDelta(t, 0, scene.Markers[1].CX, 1e-6)
	assert.Equal(t, "M530,0L0,26.19", scene.Line.D)
}

func TestRenderer_SingleRecord(t *testing.T) {
	scene := NewRenderer(DefaultOptions()).Render([]domain.Record{rec(utcDay(2024, 1, 1), "AAPL", 100)})

	require.Len(t, scene.Markers, 1)
	assert.Equal(t, 265.0, scene.Markers[0].CX)
	assert.InDelta(t, 0, scene.Markers[0].CY, 1e-6)
	require.Len(t, scene.XAxis.Ticks, 1)
}

func TestRenderer_ZeroPrices(t *testing.T) {
	records := []domain.Record{
		rec(utcDay(2024, 1, 1), "AAPL", 0),
		rec(utcDay(2024, 1, 2), "AAPL", 0),
	}
	scene := NewRenderer(DefaultOptions()).Render(records)

	for _, m := range scene.Markers {
		assert.Equal(t, 275.0, m.CY)
	}
}

func TestRenderer_Empty(t *testing.T) {
	scene := NewRenderer(DefaultOptions()).Render(nil)

	assert.True(t, scene.Empty())
	assert.NotNil(t, scene.Markers)
	assert.Nil(t, scene.Line)
	assert.Equal(t, "No matching records", scene.Caption)
	assert.Empty(t, scene.XAxis.Ticks)
	require.Len(t, scene.YAxis.Ticks, 11)
	assert.Equal(t, "0.0", scene.YAxis.Ticks[0].Label)
	assert.Equal(t, "1.0", scene.YAxis.Ticks[10].Label)
}

func TestRenderer_MovingAverage(t *testing.T) {
	r := NewRenderer(DefaultOptions())

	scene := r.RenderWithAverage(threeDays(), 2)
	require.NotNil(t, scene.Overlay)
	// (100+110)/2 = 105 -> y 25, (110+105)/2 = 107.5 -> y 12.5
	assert.Equal(t, "M265,25L530,12.5", scene.Overlay.D)
	assert.Equal(t, "average", scene.Overlay.Class)

	assert.Nil(t, r.RenderWithAverage(threeDays(), 1).Overlay)
	assert.Nil(t, r.RenderWithAverage(threeDays(), 4).Overlay)
}

func TestNewRenderer_Defaults(t *testing.T) {
	r := NewRenderer(Options{Width: 800})
	assert.Equal(t, 800, r.Options().Width)
	assert.Equal(t, 600, r.Options().Height)
	assert.Equal(t, 10, r.Options().TickCount)
}

func TestNum(t *testing.T) {
	assert.Equal(t, "0", num(0))
	assert.Equal(t, "0", num(-0.001))
	assert.Equal(t, "100", num(100))
	assert.Equal(t, "12.5", num(12.5))
	assert.Equal(t, "1.23", num(1.234))
	assert.Equal(t, "-6", num(-6))
}
