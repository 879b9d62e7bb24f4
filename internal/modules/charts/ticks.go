package charts

import (
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickSpec picks a 1/2/5×10^k increment and the integer bounds i1..i2 of
// the ticks it produces. A negative inc means the step is 1/-inc.
func tickSpec(start, stop float64, count int) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, float64(count))
	power := math.Floor(math.Log10(step))
	err := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case err >= e10:
		factor = 10
	case err >= e5:
		factor = 5
	case err >= e2:
		factor = 2
	}

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}

	if i2 < i1 && count == 1 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

// linearTicks returns evenly spaced round values covering [start, stop]
func linearTicks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}

	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	i1, i2, inc := tickSpec(start, stop, count)
	if !(i2 >= i1) {
		return nil
	}

	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := 0; i < n; i++ {
		if inc < 0 {
			ticks[i] = (i1 + float64(i)) / -inc
		} else {
			ticks[i] = (i1 + float64(i)) * inc
		}
	}

	if reverse {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// tickStep returns the signed step linearTicks would use
func tickStep(start, stop float64, count int) float64 {
	if start == stop || count <= 0 {
		return 0
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	_, _, inc := tickSpec(start, stop, count)
	step := inc
	if inc < 0 {
		step = 1 / -inc
	}
	if reverse {
		return -step
	}
	return step
}

// formatNumber renders v with fixed decimals and comma thousands grouping
func formatNumber(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}

	out := b.String()
	if neg && strings.Trim(out, "0.,") != "" {
		out = "-" + out
	}
	return out
}

type timeUnit int

const (
	unitHour timeUnit = iota
	unitDay
	unitWeek
	unitMonth
	unitYear
)

const (
	durationDay   = 24 * time.Hour
	durationWeek  = 7 * durationDay
	durationMonth = 30 * durationDay
	durationYear  = 365 * durationDay
)

type timeInterval struct {
	unit   timeUnit
	step   int
	approx time.Duration
}

// tickIntervals are ordered by approximate duration
var tickIntervals = []timeInterval{
	{unitHour, 1, time.Hour},
	{unitHour, 3, 3 * time.Hour},
	{unitHour, 6, 6 * time.Hour},
	{unitHour, 12, 12 * time.Hour},
	{unitDay, 1, durationDay},
	{unitDay, 2, 2 * durationDay},
	{unitWeek, 1, durationWeek},
	{unitMonth, 1, durationMonth},
	{unitMonth, 3, 3 * durationMonth},
	{unitYear, 1, durationYear},
}

// chooseInterval picks the interval whose duration is closest to span/count
func chooseInterval(start, stop time.Time, count int) timeInterval {
	target := float64(stop.Sub(start)) / float64(count)

	i := 0
	for i < len(tickIntervals) && float64(tickIntervals[i].approx) <= target {
		i++
	}

	switch {
	case i == len(tickIntervals):
		years := tickStep(
			float64(start.UnixMilli())/float64(durationYear.Milliseconds()),
			float64(stop.UnixMilli())/float64(durationYear.Milliseconds()),
			count,
		)
		return timeInterval{unit: unitYear, step: int(math.Max(1, math.Round(years))), approx: durationYear}
	case i == 0:
		return tickIntervals[0]
	}

	lo, hi := tickIntervals[i-1], tickIntervals[i]
	if target/float64(lo.approx) < float64(hi.approx)/target {
		return lo
	}
	return hi
}

func (iv timeInterval) floor(t time.Time) time.Time {
	t = t.UTC()
	switch iv.unit {
	case unitHour:
		return t.Truncate(time.Hour)
	case unitDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case unitWeek:
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return d.AddDate(0, 0, -int(d.Weekday()))
	case unitMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	}
}

func (iv timeInterval) next(t time.Time) time.Time {
	switch iv.unit {
	case unitHour:
		return t.Add(time.Hour)
	case unitDay:
		return t.AddDate(0, 0, 1)
	case unitWeek:
		return t.AddDate(0, 0, 7)
	case unitMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(1, 0, 0)
	}
}

// keep applies the every-N filter of the interval
func (iv timeInterval) keep(t time.Time) bool {
	if iv.step <= 1 {
		return true
	}
	switch iv.unit {
	case unitHour:
		return t.Hour()%iv.step == 0
	case unitDay:
		return (t.Day()-1)%iv.step == 0
	case unitMonth:
		return int(t.Month()-1)%iv.step == 0
	case unitYear:
		return t.Year()%iv.step == 0
	}
	return true
}

// maxTimeTicks bounds the generator walk
const maxTimeTicks = 10000

// timeTicks returns calendar-aligned times in [start, stop]
func timeTicks(start, stop time.Time, count int) []time.Time {
	if count <= 0 || start.IsZero() || stop.IsZero() {
		return nil
	}
	if stop.Before(start) {
		start, stop = stop, start
	}
	if !stop.After(start) {
		return []time.Time{start.UTC()}
	}

	iv := chooseInterval(start, stop, count)
	t := iv.floor(start)
	if t.Before(start) {
		t = iv.next(t)
	}

	var ticks []time.Time
	for steps := 0; !t.After(stop) && steps < maxTimeTicks; steps++ {
		if iv.keep(t) {
			ticks = append(ticks, t)
		}
		t = iv.next(t)
	}
	return ticks
}

// formatTimeTick labels a tick by the coarsest calendar boundary it sits on
func formatTimeTick(t time.Time) string {
	t = t.UTC()
	switch {
	case t.Hour() != 0 || t.Minute() != 0:
		return t.Format("03 PM")
	case t.Day() != 1:
		if t.Weekday() != time.Sunday {
			return t.Format("Mon 02")
		}
		return t.Format("Jan 02")
	case t.Month() != time.January:
		return t.Format("January")
	default:
		return t.Format("2006")
	}
}
