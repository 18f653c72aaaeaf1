package web

import "net/http"

// serverError logs the failure and answers with a generic 500. Driver and
// query detail never reach the response.
func (a *App) serverError(w http.ResponseWriter, err error) {
	a.logger.Error("internal error", "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func (a *App) clientError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

func (a *App) notFound(w http.ResponseWriter) {
	a.clientError(w, http.StatusNotFound)
}
