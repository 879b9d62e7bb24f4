package charts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/stockchart/internal/domain"
)

func TestWriteSVG(t *testing.T) {
	scene := NewRenderer(DefaultOptions()).Render(threeDays())

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, scene))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" class="chart" width="600" height="600"`))
	assert.True(t, strings.HasSuffix(out, `</g></svg>`))
	assert.Contains(t, out, `<g transform="translate(40,20)">`)
	assert.Contains(t, out, `<g class="axis x-axis" transform="translate(0,550)"`)
	assert.Contains(t, out, `d="M0.5,6V0.5H530.5V6"`)
	assert.Contains(t, out, `d="M-6,550.5H0.5V0.5H-6"`)
	assert.Contains(t, out, `<path class="line" fill="none" stroke="steelblue" stroke-width="1.5" d="M0,50L265,0L530,25"></path>`)
	assert.Equal(t, 3, strings.Count(out, `<circle class="dot"`))
	assert.Contains(t, out, `data-stock="AAPL" data-date="1/1/2024" data-price="100"`)
	assert.Contains(t, out, `<g class="tick" opacity="1" transform="translate(0.5,0)">`)
	assert.NotContains(t, out, `class="caption"`)
	assert.Equal(t, out, scene.SVG())
}

func TestWriteSVG_EscapesText(t *testing.T) {
	scene := NewRenderer(DefaultOptions()).Render([]domain.Record{rec(utcDay(2024, 1, 1), `A&"B"`, 1)})

	out := scene.SVG()
	assert.Contains(t, out, `data-stock="A&amp;&#34;B&#34;"`)
}

func TestWriteSVG_Empty(t *testing.T) {
	out := NewRenderer(DefaultOptions()).Render(nil).SVG()

	assert.Contains(t, out, `class="caption"`)
	assert.Contains(t, out, "No matching records")
	assert.NotContains(t, out, "<circle")
	assert.NotContains(t, out, `class="line"`)
	// Both axes still drawn
	assert.Contains(t, out, "x-axis")
	assert.Contains(t, out, "y-axis")
}

func TestWriteSVG_Overlay(t *testing.T) {
	out := NewRenderer(DefaultOptions()).RenderWithAverage(threeDays(), 2).SVG()
	assert.Contains(t, out, `stroke-dasharray="4 3"`)
	assert.Contains(t, out, `class="average"`)
}
