// Package web embeds the HTML views rendered by the handlers.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/url"
	"strings"

	"marketing-template/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcMap = template.FuncMap{
	"itemCode": func(p catalog.Product) string {
		code, _ := p.ItemCode()
		return code
	},
	"pathEscape": url.PathEscape,
	"title": func(s string) string {
		return strings.ReplaceAll(s, "_", " ")
	},
}

// Templates parses every embedded view. Views are addressed by file name,
// e.g. "listing.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
}

// Names lists the embedded view file names.
func Names() ([]string, error) {
	return fs.Glob(templateFS, "templates/*.html")
}
