package charts

import (
	"math"
	"time"
)

// LinearScale maps a numeric domain onto a pixel range
type LinearScale struct {
	D0, D1 float64 // domain
	R0, R1 float64 // range
}

// Map projects v into the range. A degenerate domain maps to the range
// midpoint.
func (s LinearScale) Map(v float64) float64 {
	span := s.D1 - s.D0
	if span == 0 || math.IsNaN(span) {
		return (s.R0 + s.R1) / 2
	}
	return s.R0 + (v-s.D0)/span*(s.R1-s.R0)
}

// Ticks returns roughly count human-friendly values inside the domain
func (s LinearScale) Ticks(count int) []float64 {
	return linearTicks(s.D0, s.D1, count)
}

// TickFormat returns a formatter matching the tick step for count ticks
func (s LinearScale) TickFormat(count int) func(float64) string {
	step := math.Abs(tickStep(s.D0, s.D1, count))
	decimals := 0
	if step > 0 && step < 1 {
		decimals = int(math.Max(0, math.Ceil(-math.Log10(step)-1e-9)))
	}
	return func(v float64) string { return formatNumber(v, decimals) }
}

// TimeScale maps a time domain onto a pixel range
type TimeScale struct {
	D0, D1 time.Time
	R0, R1 float64
}

// Map projects t into the range. A degenerate domain maps to the range
// midpoint.
func (s TimeScale) Map(t time.Time) float64 {
	lin := LinearScale{
		D0: float64(s.D0.UnixMilli()),
		D1: float64(s.D1.UnixMilli()),
		R0: s.R0,
		R1: s.R1,
	}
	return lin.Map(float64(t.UnixMilli()))
}

// Ticks returns calendar-aligned tick times inside the domain
func (s TimeScale) Ticks(count int) []time.Time {
	return timeTicks(s.D0, s.D1, count)
}
