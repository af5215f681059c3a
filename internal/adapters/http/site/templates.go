package site

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	pageHome     = "home"
	pageSquads   = "squads"
	pageNotFound = "not_found"
	pageError    = "error"
)

var funcs = template.FuncMap{
	"rating": func(v float64) string { return fmt.Sprintf("%g", v) },
	"average": func(v *float64) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprintf("%.2f", *v)
	},
	"inc": func(i int) int { return i + 1 },
}

// parsePages builds one template set per page, each sharing the layout.
func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{pageHome, pageSquads, pageNotFound, pageError} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTemplate, name, err)
		}
		pages[name] = t
	}
	return pages, nil
}
