package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/mknox/bookshelf/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// templateData carries everything a page can render.
type templateData struct {
	Title       string
	CurrentUser *models.Identity
	FormError   string
	FormData    map[string]string
	Review      *models.Review
	Reviews     []models.Review
	SortField   string
	SortOrder   string
}

// newTemplateCache parses each page template against the base layout.
func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages, err := fs.Glob(templateFS, "templates/*.page.html")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)

		ts, err := template.New(name).ParseFS(templateFS, "templates/base.html", page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}

		cache[name] = ts
	}

	return cache, nil
}

// render writes a page through a buffer so a template failure yields a
// clean 500 instead of a half-written body.
func (a *App) render(w http.ResponseWriter, r *http.Request, status int, page string, data *templateData) {
	ts, ok := a.templates[page]
	if !ok {
		a.serverError(w, fmt.Errorf("template %s does not exist", page))
		return
	}

	if data == nil {
		data = &templateData{}
	}
	if data.CurrentUser == nil {
		data.CurrentUser = a.currentIdentity(r)
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		a.serverError(w, err)
		return
	}

	w.WriteHeader(status)
	buf.WriteTo(w)
}
