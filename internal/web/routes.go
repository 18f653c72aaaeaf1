package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the full request mux, wrapped in logging and metrics
// middleware.
func (a *App) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", a.home)
	mux.HandleFunc("GET /review/{id}", a.showReview)
	mux.HandleFunc("GET /login", a.loginForm)
	mux.HandleFunc("GET /register", a.registerForm)
	mux.HandleFunc("GET /profile", a.requireAuth(a.profile))
	mux.HandleFunc("GET /edit/{id}", a.requireAuth(a.editForm))

	mux.HandleFunc("POST /register", a.register)
	mux.HandleFunc("POST /login", a.login)
	mux.HandleFunc("POST /logout", a.requireAuth(a.logout))
	mux.HandleFunc("POST /changePassword", a.requireAuth(a.changePassword))
	mux.HandleFunc("POST /deleteAccount", a.requireAuth(a.deleteAccount))
	mux.HandleFunc("POST /addReview", a.requireAuth(a.addReview))
	mux.HandleFunc("POST /sort", a.sortReviews)
	mux.HandleFunc("POST /delete/{id}", a.requireAuth(a.deleteReview))
	mux.HandleFunc("POST /edit/{id}", a.requireAuth(a.editReview))

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", a.healthz)

	return a.requestMetrics(a.requestLogging(mux))
}
