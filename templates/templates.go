package templates

import (
	"embed"
	"html/template"
	"strings"
	"time"
)

//go:embed *.html
var pages embed.FS

var funcs = template.FuncMap{
	"lower": strings.ToLower,
	"join": func(values []string, sep string) string {
		return strings.Join(values, sep)
	},
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}

		return t.UTC().Format("2006-01-02 15:04:05 MST")
	},
}

// Parse loads every embedded page. Pages are named after their file.
func Parse() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(pages, "*.html")
}
