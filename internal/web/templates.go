package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFiles embed.FS

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"score": func(v float64) string {
		s := fmt.Sprintf("%.1f", v)
		return strings.TrimSuffix(s, ".0")
	},
	"action": ActionPath,
	"upper":  strings.ToUpper,
}

// Templates parses the embedded view templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
}

// MustTemplates is Templates for wiring code where a parse failure is a build defect.
func MustTemplates() *template.Template {
	t, err := Templates()
	if err != nil {
		panic(err)
	}
	return t
}
