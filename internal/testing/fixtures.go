package testing

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/stockchart/internal/domain"
	"github.com/aristath/stockchart/internal/modules/charts"
	"github.com/aristath/stockchart/internal/modules/controls"
	"github.com/aristath/stockchart/internal/modules/dataset"
)

// SampleCSV is a small dataset with two stocks over three days
const SampleCSV = `Date,Stock,Price
2024-01-01,AAPL,100
2024-01-02,AAPL,110
2024-01-03,AAPL,105
2024-01-01,MSFT,200
2024-01-02,MSFT,190
2024-01-03,MSFT,210
`

// NewRecordFixtures returns the records of SampleCSV
func NewRecordFixtures() []domain.Record {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	return []domain.Record{
		{Date: day(1), Stock: "AAPL", Price: decimal.NewFromInt(100)},
		{Date: day(2), Stock: "AAPL", Price: decimal.NewFromInt(110)},
		{Date: day(3), Stock: "AAPL", Price: decimal.NewFromInt(105)},
		{Date: day(1), Stock: "MSFT", Price: decimal.NewFromInt(200)},
		{Date: day(2), Stock: "MSFT", Price: decimal.NewFromInt(190)},
		{Date: day(3), Stock: "MSFT", Price: decimal.NewFromInt(210)},
	}
}

// NopLogger returns a disabled logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.New(nil).Level(zerolog.Disabled)
}

// WriteCSV writes content to a temporary CSV file and returns its path
func WriteCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write CSV fixture: %v", err)
	}
	return path
}

// NewStore returns a file-backed dataset store. When load is true the store
// is reloaded once before returning.
func NewStore(t *testing.T, content string, load bool) *dataset.Store {
	t.Helper()

	log := NopLogger()
	loader := dataset.NewLoader(dataset.RowPolicyStrict, log)
	loader.Register("file", dataset.NewFileSource(log))

	store := dataset.NewStore(loader, WriteCSV(t, content), log)
	if load {
		if _, err := store.Reload(context.Background()); err != nil {
			t.Fatalf("Failed to load CSV fixture: %v", err)
		}
	}
	return store
}

// NewSurface returns a control surface over a loaded SampleCSV store
func NewSurface(t *testing.T) *controls.Surface {
	t.Helper()
	return NewSurfaceFor(t, NewStore(t, SampleCSV, true))
}

// NewSurfaceFor returns a control surface over store with default chart options
func NewSurfaceFor(t *testing.T, store *dataset.Store) *controls.Surface {
	t.Helper()
	log := NopLogger()
	svc := charts.NewService(charts.NewRenderer(charts.DefaultOptions()), log)
	return controls.NewSurface(store, svc, log)
}
