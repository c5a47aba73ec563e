// Package web holds the embedded HTML templates.
package web

import (
	"embed"
	"html/template"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded templates with the page helpers installed
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"bytes": func(size int64) string {
			if size < 0 {
				return ""
			}
			return humanize.IBytes(uint64(size))
		},
	}).ParseFS(templateFS, "templates/*.html")
}
