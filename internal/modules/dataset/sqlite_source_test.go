package dataset

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestHistoryDB writes a daily_prices fixture to a temp file
func setupTestHistoryDB(t *testing.T, rows [][3]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE daily_prices (
			date TEXT,
			symbol TEXT,
			price REAL
		)
	`)
	require.NoError(t, err)

	for _, r := range rows {
		_, err = db.Exec(`INSERT INTO daily_prices (date, symbol, price) VALUES (?, ?, ?)`, r[0], r[1], r[2])
		require.NoError(t, err)
	}
	return path
}

func TestSQLiteSource_Load(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	path := setupTestHistoryDB(t, [][3]interface{}{
		{"2024-01-02", "AAPL", 110.0},
		{"2024-01-01", "AAPL", 100.25},
		{"2024-01-01", "MSFT", 200.0},
	})

	loader := NewLoader(RowPolicyStrict, log)
	loader.Register("sqlite", NewSQLiteSource(log))

	ds, err := loader.Load(context.Background(), "sqlite://"+path)
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())

	// Insertion order is kept, not date order
	records := ds.Records()
	assert.Equal(t, "110", records[0].Price.String())
	assert.Equal(t, "100.25", records[1].Price.String())
	assert.Equal(t, []string{"AAPL", "MSFT"}, ds.Symbols())
}

func TestSQLiteSource_NullPrice(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	path := setupTestHistoryDB(t, [][3]interface{}{
		{"2024-01-01", "AAPL", 100.0},
		{"2024-01-02", "AAPL", nil},
	})

	strict := NewLoader(RowPolicyStrict, log)
	strict.Register("sqlite", NewSQLiteSource(log))

	_, err := strict.Load(context.Background(), "sqlite://"+path)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Row)
	assert.Equal(t, ColumnPrice, pe.Column)

	skip := NewLoader(RowPolicySkip, log)
	skip.Register("sqlite", NewSQLiteSource(log))

	ds, err := skip.Load(context.Background(), "sqlite://"+path)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
}

func TestSQLiteSource_MissingFile(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	loader := NewLoader(RowPolicyStrict, log)
	loader.Register("sqlite", NewSQLiteSource(log))

	_, err := loader.Load(context.Background(), "sqlite://"+filepath.Join(t.TempDir(), "missing.db"))
	var le *LoadError
	assert.True(t, errors.As(err, &le))
}
