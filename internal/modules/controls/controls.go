// Package controls turns raw control values into filtered, rendered views.
package controls

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/stockchart/internal/domain"
	"github.com/aristath/stockchart/internal/modules/charts"
	"github.com/aristath/stockchart/internal/modules/dataset"
	"github.com/aristath/stockchart/internal/modules/filter"
)

// AllStocks is the value of the "All" option in the stock selector
const AllStocks = "all"

// Inputs are the raw control values as the page sends them
type Inputs struct {
	Stock     string `json:"stock" msgpack:"stock"`
	StartDate string `json:"start" msgpack:"start"`
	EndDate   string `json:"end" msgpack:"end"`
	Range     string `json:"range,omitempty" msgpack:"range,omitempty"` // 1M, 3M, 6M, 1Y, 5Y, 10Y or all
	SMA       int    `json:"sma,omitempty" msgpack:"sma,omitempty"`
}

// InputsFromQuery reads the control values from URL query parameters
// (stock, start, end, range, sma). Dates are left raw; only a malformed or
// negative sma is an error.
func InputsFromQuery(q url.Values) (Inputs, error) {
	in := Inputs{
		Stock:     q.Get("stock"),
		StartDate: q.Get("start"),
		EndDate:   q.Get("end"),
		Range:     q.Get("range"),
	}

	if raw := q.Get("sma"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return in, fmt.Errorf("invalid sma: %q", raw)
		}
		in.SMA = n
	}
	return in, nil
}

// ParseCriterion converts raw inputs into a criterion. The "All" option and
// blank or unparseable dates leave that dimension unconstrained.
func ParseCriterion(in Inputs) domain.FilterCriterion {
	var c domain.FilterCriterion

	if s := in.Stock; s != "" && s != AllStocks {
		c.Stock = s
	}
	if t, err := domain.ParseDate(in.StartDate); err == nil {
		c.Start = t
	}
	if t, err := domain.ParseDate(in.EndDate); err == nil {
		c.End = t
	}
	return c
}

// rangeStart converts a range preset to a start date counted back from latest.
// Unknown presets and "all" return the zero time.
func rangeStart(preset string, latest time.Time) time.Time {
	switch strings.ToUpper(strings.TrimSpace(preset)) {
	case "1M":
		return latest.AddDate(0, -1, 0)
	case "3M":
		return latest.AddDate(0, -3, 0)
	case "6M":
		return latest.AddDate(0, -6, 0)
	case "1Y":
		return latest.AddDate(-1, 0, 0)
	case "5Y":
		return latest.AddDate(-5, 0, 0)
	case "10Y":
		return latest.AddDate(-10, 0, 0)
	default:
		return time.Time{}
	}
}

// View is one filtered, rendered state of the chart
type View struct {
	DatasetID string                 `json:"dataset_id"`
	Criterion domain.FilterCriterion `json:"criterion"`
	Records   []domain.Record        `json:"records"`
	Scene     *charts.Scene          `json:"-"`
}

// Count returns the number of records in the view
func (v *View) Count() int {
	return len(v.Records)
}

// Surface holds the application state shared by the page, the HTTP handlers
// and the live channel
type Surface struct {
	store  *dataset.Store
	charts *charts.Service
	log    zerolog.Logger
}

// NewSurface creates a control surface over the dataset store
func NewSurface(store *dataset.Store, chartsService *charts.Service, log zerolog.Logger) *Surface {
	return &Surface{
		store:  store,
		charts: chartsService,
		log:    log.With().Str("service", "controls").Logger(),
	}
}

// Charts returns the chart service used for rendering
func (s *Surface) Charts() *charts.Service {
	return s.charts
}

// Dataset returns the dataset currently live
func (s *Surface) Dataset() (*domain.Dataset, error) {
	return s.store.Current()
}

// Symbols returns the options of the stock selector
func (s *Surface) Symbols() ([]string, error) {
	ds, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	return ds.Symbols(), nil
}

// Initial renders the full dataset with no constraints
func (s *Surface) Initial() (*View, error) {
	return s.Change(Inputs{})
}

// Filter applies the inputs to the live dataset without rendering
func (s *Surface) Filter(in Inputs) (*View, error) {
	ds, err := s.store.Current()
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}

	records := ds.Records()
	c := ParseCriterion(in)
	if c.Start.IsZero() && in.Range != "" {
		c.Start = rangeStart(in.Range, latestDate(records))
	}

	return &View{
		DatasetID: ds.ID(),
		Criterion: c,
		Records:   filter.Apply(records, c),
	}, nil
}

// Change runs filter then render for one control change
func (s *Surface) Change(in Inputs) (*View, error) {
	view, err := s.Filter(in)
	if err != nil {
		return nil, err
	}
	view.Scene = s.charts.Render(view.Records, in.SMA)

	s.log.Debug().
		Str("stock", view.Criterion.Stock).
		Int("records", view.Count()).
		Msg("Control change rendered")

	return view, nil
}

func latestDate(records []domain.Record) time.Time {
	var latest time.Time
	for _, r := range records {
		if r.Date.After(latest) {
			latest = r.Date
		}
	}
	return latest
}
