package httpx

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
)

// TemplateRenderer renders HTML pages. Each page template is parsed
// together with the shared layout, so pages can override the layout's
// blocks without the page names colliding.
type TemplateRenderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// NewTemplateRenderer parses layout.tmpl plus every pages/*.tmpl from the
// given filesystem.
func NewTemplateRenderer(fsys fs.FS, logger *slog.Logger) (*TemplateRenderer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	names, err := fs.Glob(fsys, "pages/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("list page templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t, err := template.ParseFS(fsys, "layout.tmpl", name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		base := path.Base(name)
		pages[base[:len(base)-len(".tmpl")]] = t
	}

	return &TemplateRenderer{pages: pages, logger: logger}, nil
}

// Render writes the named page. The template executes into a buffer first
// so a mid-render failure never produces a half-written 200 response.
func (r *TemplateRenderer) Render(w http.ResponseWriter, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page template %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.logger.Error("template execution failed",
			slog.String("page", page),
			slog.Any("error", err),
		)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		return err
	}
	return nil
}

// renderOr500 renders a page and falls back to a plain 500 on failure.
func (r *TemplateRenderer) renderOr500(w http.ResponseWriter, page string, data any) {
	if err := r.Render(w, page, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
