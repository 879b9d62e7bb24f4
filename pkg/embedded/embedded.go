// Package embedded provides embedded static assets for the application.
package embedded

import (
	"embed"
	"html/template"
	"io/fs"
)

// Files contains all files embedded in the Go binary:
//   - static/ - page script and stylesheet, served under /static/
//   - templates/ - the chart page template
//
//go:embed static templates
var Files embed.FS

// Static returns the static asset tree rooted at static/
func Static() (fs.FS, error) {
	return fs.Sub(Files, "static")
}

// PageTemplate parses the chart page template
func PageTemplate() (*template.Template, error) {
	return template.ParseFS(Files, "templates/index.html")
}
