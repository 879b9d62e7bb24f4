package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/stockchart/internal/domain"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestExportPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportPNG(&buf, threeDays(), DefaultOptions(), 0, "AAPL"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestExportPNG_WithAverage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportPNG(&buf, threeDays(), DefaultOptions(), 2, ""))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestExportPNG_NotEnoughData(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.Record
	}{
		{"empty", nil},
		{"single record", threeDays()[:1]},
		{"same date", []domain.Record{
			rec(utcDay(2024, 1, 1), "AAPL", 100),
			rec(utcDay(2024, 1, 1), "MSFT", 200),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := ExportPNG(&buf, tt.records, DefaultOptions(), 0, "")
			assert.ErrorIs(t, err, ErrNotEnoughData)
			assert.Zero(t, buf.Len())
		})
	}
}
