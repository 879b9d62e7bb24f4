package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := Summarize(threeDays())

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, []string{"AAPL"}, s.Symbols)
	assert.Equal(t, utcDay(2024, 1, 1), s.Start)
	assert.Equal(t, utcDay(2024, 1, 3), s.End)
	assert.Equal(t, 100.0, s.First)
	assert.Equal(t, 105.0, s.Last)
	assert.Equal(t, 100.0, s.Min)
	assert.Equal(t, 110.0, s.Max)
	assert.InDelta(t, 105, s.Mean, 1e-9)
	assert.InDelta(t, 5, s.StdDev, 1e-9)
	assert.InDelta(t, 5, s.ChangePct, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Count)
	assert.NotNil(t, s.Symbols)
	assert.True(t, s.Start.IsZero())
}

func TestSummarize_SingleRecord(t *testing.T) {
	s := Summarize(threeDays()[:1])
	assert.Equal(t, 1, s.Count)
	assert.Zero(t, s.StdDev)
	assert.Zero(t, s.ChangePct)
}
