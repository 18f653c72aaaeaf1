// Package web maps the HTTP surface onto the service layer: routing,
// session cookies, templates, and request middleware.
package web

import (
	"html/template"
	"log/slog"

	"github.com/mknox/bookshelf/internal/service"
	"github.com/mknox/bookshelf/internal/session"
	"github.com/mknox/bookshelf/internal/storage"
)

// App bundles the handlers' dependencies.
type App struct {
	logger    *slog.Logger
	store     storage.Store
	accounts  *service.AccountService
	reviews   *service.ReviewService
	sessions  *session.Manager
	templates map[string]*template.Template
}

// New wires an App. It parses the embedded templates once at startup.
func New(logger *slog.Logger, store storage.Store, accounts *service.AccountService, reviews *service.ReviewService, sessions *session.Manager) (*App, error) {
	cache, err := newTemplateCache()
	if err != nil {
		return nil, err
	}

	return &App{
		logger:    logger,
		store:     store,
		accounts:  accounts,
		reviews:   reviews,
		sessions:  sessions,
		templates: cache,
	}, nil
}
