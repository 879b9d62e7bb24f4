package embedded

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	static, err := Static()
	require.NoError(t, err)

	for _, name := range []string{"chart.js", "chart.css"} {
		data, err := fs.ReadFile(static, name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data)
	}
}

func TestPageTemplate(t *testing.T) {
	tmpl, err := PageTemplate()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "index.html", map[string]interface{}{
		"Title":     "Stock Prices",
		"DatasetID": "id-1",
		"Symbols":   []string{"AAPL", "MSFT"},
		"Selected":  map[string]interface{}{"Stock": "MSFT", "Start": "", "End": "", "SMA": 0},
		"Count":     3,
		"Chart":     "",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `<select id="stock-select"`)
	assert.Contains(t, out, `<option value="MSFT" selected>MSFT</option>`)
	assert.Contains(t, out, `<option value="AAPL">AAPL</option>`)
	assert.Contains(t, out, `id="start-date"`)
	assert.Contains(t, out, `id="end-date"`)
}
