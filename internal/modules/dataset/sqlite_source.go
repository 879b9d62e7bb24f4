package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/stockchart/internal/database"
)

// historyQuery reads a price history table in insertion order
const historyQuery = `
	SELECT date, symbol, price
	FROM daily_prices
	ORDER BY rowid ASC
`

type sqliteSource struct {
	log zerolog.Logger
}

// NewSQLiteSource reads records from the daily_prices table of a SQLite
// history file addressed as sqlite://path/to/history.db
func NewSQLiteSource(log zerolog.Logger) Source {
	return &sqliteSource{log: log.With().Str("source", "sqlite").Logger()}
}

func (s *sqliteSource) Load(ctx context.Context, locator string, policy RowPolicy) (Result, error) {
	path := strings.TrimPrefix(locator, "sqlite://")
	if path == "" {
		return Result{}, fmt.Errorf("invalid sqlite locator %q", locator)
	}

	db, err := database.New(database.Config{
		Path:    path,
		Profile: database.ProfileReadOnly,
		Name:    "history",
	})
	if err != nil {
		return Result{}, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, historyQuery)
	if err != nil {
		return Result{}, fmt.Errorf("failed to query daily prices: %w", err)
	}
	defer rows.Close()

	collector := newRowCollector(policy, s.log.With().Str("locator", locator).Logger())
	row := 0
	for rows.Next() {
		row++
		// REAL prices scan as their shortest text form
		var date, symbol, price sql.NullString
		if err := rows.Scan(&date, &symbol, &price); err != nil {
			return Result{}, fmt.Errorf("failed to scan row %d: %w", row, err)
		}

		if err := collector.add(row, date.String, symbol.String, price.String); err != nil {
			return Result{}, err
		}
	}
	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("error iterating prices: %w", err)
	}

	records, err := collector.result()
	if err != nil {
		return Result{}, err
	}
	return Result{Records: records, Skipped: collector.skipped}, nil
}
