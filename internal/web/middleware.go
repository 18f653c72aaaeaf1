package web

import (
	"context"
	"net/http"
	"time"

	"github.com/mknox/bookshelf/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const identityKey contextKey = "identity"

// currentIdentity resolves the caller's identity from the request context
// (set by requireAuth) or, failing that, from the session cookie. Returns
// nil for anonymous callers.
func (a *App) currentIdentity(r *http.Request) *models.Identity {
	if identity, ok := r.Context().Value(identityKey).(*models.Identity); ok {
		return identity
	}

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}

	identity, err := a.sessions.Resolve(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}
	return identity
}

// requireAuth redirects anonymous callers to the login form and adds the
// resolved identity to the request context for the wrapped handler.
func (a *App) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Authenticated pages must not be served from cache.
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")

		identity := a.currentIdentity(r)
		if identity == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next(w, r.WithContext(ctx))
	}
}

// requestLogging logs every request with its duration.
func (a *App) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		a.logger.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
