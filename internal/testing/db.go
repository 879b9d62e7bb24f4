// Package testing provides testing utilities and helpers for the stockchart project.
package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aristath/stockchart/internal/database"
	"github.com/aristath/stockchart/internal/domain"
)

// HistorySchema is the table the SQLite source reads from
const HistorySchema = `CREATE TABLE daily_prices (date TEXT, symbol TEXT, price REAL)`

// NewHistoryDB creates a SQLite history file holding records in order and
// returns its path. The file lives in a temporary directory removed by the
// test cleanup.
func NewHistoryDB(t *testing.T, records []domain.Record) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "history.db")

	db, err := database.New(database.Config{
		Path:    path,
		Profile: database.ProfileStandard,
		Name:    "history",
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: Failed to close test database: %v", err)
		}
	}()

	if _, err := db.Conn().Exec(HistorySchema); err != nil {
		t.Fatalf("Failed to create daily_prices: %v", err)
	}

	for _, r := range records {
		_, err := db.Conn().Exec(
			`INSERT INTO daily_prices (date, symbol, price) VALUES (?, ?, ?)`,
			r.Date.Format(domain.DateLayout), r.Stock, r.PriceFloat(),
		)
		if err != nil {
			t.Fatalf("Failed to insert fixture row: %v", err)
		}
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Test database missing after creation: %v", err)
	}
	return path
}
