package charts

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/stockchart/internal/domain"
)

func newTestService() *Service {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	return NewService(NewRenderer(DefaultOptions()), log)
}

func TestService_Render(t *testing.T) {
	svc := newTestService()

	scene := svc.Render(threeDays(), 0)
	assert.Len(t, scene.Markers, 3)
	assert.Nil(t, scene.Overlay)

	assert.NotNil(t, svc.Render(threeDays(), 2).Overlay)
}

func TestService_ExportPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestService().ExportPNG(&buf, threeDays(), 0, "AAPL"))
	assert.NotZero(t, buf.Len())
}

func TestService_SeriesWeekly(t *testing.T) {
	records := []domain.Record{
		rec(utcDay(2024, 1, 1), "AAPL", 100), // 2024-W01
		rec(utcDay(2024, 1, 2), "AAPL", 110), // 2024-W01
		rec(utcDay(2024, 1, 8), "AAPL", 120), // 2024-W02
		rec(utcDay(2024, 1, 1), "MSFT", 200),
	}

	series := newTestService().Series(records, GroupByWeek)

	require.Len(t, series, 2)
	assert.Equal(t, []ChartDataPoint{
		{Time: "2024-W01", Value: 105},
		{Time: "2024-W02", Value: 120},
	}, series["AAPL"])
	assert.Equal(t, []ChartDataPoint{{Time: "2024-W01", Value: 200}}, series["MSFT"])
}

func TestService_SeriesMonthlyAndDaily(t *testing.T) {
	records := []domain.Record{
		rec(utcDay(2024, 2, 1), "AAPL", 120),
		rec(utcDay(2024, 1, 1), "AAPL", 100),
		rec(utcDay(2024, 1, 31), "AAPL", 110),
	}
	svc := newTestService()

	assert.Equal(t, []ChartDataPoint{
		{Time: "2024-01", Value: 105},
		{Time: "2024-02", Value: 120},
	}, svc.Series(records, GroupByMonth)["AAPL"])

	daily := svc.Series(records, GroupByDay)["AAPL"]
	require.Len(t, daily, 3)
	assert.Equal(t, "2024-01-01", daily[0].Time)
	assert.Equal(t, "2024-02-01", daily[2].Time)

	assert.Empty(t, svc.Series(nil, GroupByDay))
}

func TestParseGroupBy(t *testing.T) {
	tests := []struct {
		in       string
		expected GroupBy
		wantErr  bool
	}{
		{"", GroupByDay, false},
		{"day", GroupByDay, false},
		{"week", GroupByWeek, false},
		{"month", GroupByMonth, false},
		{"year", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGroupBy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
