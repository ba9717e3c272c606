// Package render turns typed view models into HTML pages. Each page
// template is compiled against the shared layout at startup; handlers
// pass a per-route view-model struct, never a loose map.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"path"
)

//go:embed templates
var templateFS embed.FS

type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page template against the layout. A malformed
// template is a startup error, not a request-time one.
func New() (*Renderer, error) {
	entries, err := fs.ReadDir(templateFS, "templates/pages")
	if err != nil {
		return nil, fmt.Errorf("render: read templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		tmpl, err := template.ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/partials/*.html",
			path.Join("templates/pages", name),
		)
		if err != nil {
			return nil, fmt.Errorf("render: parse %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// HTML renders the named page. The template executes into a buffer
// first so a mid-render failure becomes a clean 500 instead of a
// half-written page.
func (r *Renderer) HTML(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := r.pages[page]
	if !ok {
		log.Printf("render: unknown template %q", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		log.Printf("render: execute %q: %v", page, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
