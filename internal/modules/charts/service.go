package charts

import (
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog"

	"github.com/aristath/stockchart/internal/domain"
)

// ChartDataPoint represents a single aggregated point of a series
type ChartDataPoint struct {
	Time  string  `json:"time"`  // YYYY-MM-DD, YYYY-W## or YYYY-MM
	Value float64 `json:"value"` // Average price over the period
}

// GroupBy selects the aggregation period for Series
type GroupBy string

const (
	GroupByDay   GroupBy = "day"
	GroupByWeek  GroupBy = "week"
	GroupByMonth GroupBy = "month"
)

// ParseGroupBy validates a grouping name; empty means day
func ParseGroupBy(s string) (GroupBy, error) {
	switch GroupBy(s) {
	case "", GroupByDay:
		return GroupByDay, nil
	case GroupByWeek, GroupByMonth:
		return GroupBy(s), nil
	default:
		return "", fmt.Errorf("invalid group: %s (must be day, week or month)", s)
	}
}

// Service provides chart operations over record views
type Service struct {
	renderer *Renderer
	log      zerolog.Logger
}

// NewService creates a new charts service
func NewService(renderer *Renderer, log zerolog.Logger) *Service {
	return &Service{
		renderer: renderer,
		log:      log.With().Str("service", "charts").Logger(),
	}
}

// Options returns the renderer geometry
func (s *Service) Options() Options {
	return s.renderer.Options()
}

// Render builds the scene for a view, with an optional moving average
func (s *Service) Render(records []domain.Record, smaPeriod int) *Scene {
	scene := s.renderer.RenderWithAverage(records, smaPeriod)
	s.log.Debug().
		Int("records", len(records)).
		Int("sma", smaPeriod).
		Int("x_ticks", len(scene.XAxis.Ticks)).
		Int("y_ticks", len(scene.YAxis.Ticks)).
		Msg("Chart rendered")
	return scene
}

// ExportPNG writes a static PNG of the view
func (s *Service) ExportPNG(w io.Writer, records []domain.Record, smaPeriod int, title string) error {
	return ExportPNG(w, records, s.renderer.Options(), smaPeriod, title)
}

// Summarize computes statistics for the view
func (s *Service) Summarize(records []domain.Record) Summary {
	return Summarize(records)
}

// Series returns one aggregated series per stock. Periods are averaged and
// sorted ascending.
func (s *Service) Series(records []domain.Record, groupBy GroupBy) map[string][]ChartDataPoint {
	// stock -> period -> prices
	aggregated := make(map[string]map[string][]float64)

	for _, r := range records {
		var period string
		switch groupBy {
		case GroupByWeek:
			year, week := r.Date.ISOWeek()
			period = fmt.Sprintf("%d-W%02d", year, week)
		case GroupByMonth:
			period = r.Date.Format("2006-01")
		default:
			period = r.Date.Format(domain.DateLayout)
		}

		if aggregated[r.Stock] == nil {
			aggregated[r.Stock] = make(map[string][]float64)
		}
		aggregated[r.Stock][period] = append(aggregated[r.Stock][period], r.PriceFloat())
	}

	result := make(map[string][]ChartDataPoint, len(aggregated))
	for stock, byPeriod := range aggregated {
		periods := make([]string, 0, len(byPeriod))
		for period := range byPeriod {
			periods = append(periods, period)
		}
		sort.Strings(periods)

		points := make([]ChartDataPoint, 0, len(periods))
		for _, period := range periods {
			values := byPeriod[period]
			var sum float64
			for _, v := range values {
				sum += v
			}
			points = append(points, ChartDataPoint{
				Time:  period,
				Value: sum / float64(len(values)),
			})
		}
		result[stock] = points
	}

	return result
}
