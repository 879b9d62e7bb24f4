package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/aristath/stockchart/internal/domain"
	"github.com/rs/zerolog"
)

// ParseCSV reads Date/Stock/Price rows from tabular text. Columns are located
// by header name; other columns are ignored. Row order is preserved.
func ParseCSV(r io.Reader, policy RowPolicy, log zerolog.Logger) ([]domain.Record, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, fmt.Errorf("%w: empty resource", ErrNoRows)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}

	idx, err := columnIndexes(header)
	if err != nil {
		return nil, 0, err
	}

	collector := newRowCollector(policy, log)
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, collector.skipped, fmt.Errorf("failed to read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if isBlank(fields) {
			continue
		}

		date, okD := field(fields, idx[ColumnDate])
		stock, okS := field(fields, idx[ColumnStock])
		price, okP := field(fields, idx[ColumnPrice])
		if !okD || !okS || !okP {
			missing := ColumnPrice
			switch {
			case !okD:
				missing = ColumnDate
			case !okS:
				missing = ColumnStock
			}
			perr := &ParseError{Row: line, Column: missing, Err: ErrMissingColumn}
			if err := collector.reject(perr); err != nil {
				return nil, collector.skipped, err
			}
			continue
		}

		if err := collector.add(line, date, stock, price); err != nil {
			return nil, collector.skipped, err
		}
	}

	records, err := collector.result()
	return records, collector.skipped, err
}

func columnIndexes(header []string) (map[string]int, error) {
	idx := map[string]int{}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		for _, want := range []string{ColumnDate, ColumnStock, ColumnPrice} {
			if _, seen := idx[want]; !seen && strings.EqualFold(name, want) {
				idx[want] = i
			}
		}
	}
	for _, want := range []string{ColumnDate, ColumnStock, ColumnPrice} {
		if _, ok := idx[want]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, want)
		}
	}
	return idx, nil
}

func field(fields []string, i int) (string, bool) {
	if i >= len(fields) {
		return "", false
	}
	return fields[i], true
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
