package web

import (
	"errors"
	"net/http"

	"github.com/mknox/bookshelf/internal/auth"
	"github.com/mknox/bookshelf/internal/service"
)

// loginForm shows the login page, or sends an already-authenticated
// caller straight to their profile.
func (a *App) loginForm(w http.ResponseWriter, r *http.Request) {
	if a.currentIdentity(r) != nil {
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	a.render(w, r, http.StatusOK, "login.page.html", &templateData{Title: "Log in"})
}

// registerForm shows the registration page.
func (a *App) registerForm(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, "register.page.html", &templateData{Title: "Register"})
}

// register creates an account and logs the new user straight in.
// A duplicate email redirects to the login form.
func (a *App) register(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := a.accounts.Register(r.Context(), name, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if errors.Is(err, auth.ErrWeakPassword) {
			a.render(w, r, http.StatusUnprocessableEntity, "register.page.html", &templateData{
				Title:     "Register",
				FormError: err.Error(),
				FormData:  map[string]string{"name": name, "email": email},
			})
			return
		}
		a.serverError(w, err)
		return
	}

	token, err := a.sessions.Establish(r.Context(), user.Identity())
	if err != nil {
		// Account exists but auto-login failed; let the user log in manually.
		a.logger.Error("failed to establish session", "user_id", user.ID, "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	a.setSessionCookie(w, token)
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// login authenticates and establishes a session. Failures redirect back
// to the login form without detail.
func (a *App) login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := a.accounts.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		a.serverError(w, err)
		return
	}

	token, err := a.sessions.Establish(r.Context(), user.Identity())
	if err != nil {
		a.serverError(w, err)
		return
	}

	a.setSessionCookie(w, token)
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// logout destroys the caller's session.
func (a *App) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := a.sessions.Terminate(r.Context(), cookie.Value); err != nil {
			a.logger.Error("failed to terminate session", "error", err)
		}
	}

	a.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// changePassword re-hashes and persists a new password for the caller.
func (a *App) changePassword(w http.ResponseWriter, r *http.Request) {
	identity := a.currentIdentity(r)
	password := r.FormValue("password")
	confirm := r.FormValue("confirm")

	err := a.accounts.ChangePassword(r.Context(), identity.Email, password, confirm)
	if err != nil {
		if errors.Is(err, service.ErrPasswordMismatch) || errors.Is(err, auth.ErrWeakPassword) {
			reviews, listErr := a.reviews.ListByOwner(r.Context(), identity.ID)
			if listErr != nil {
				a.serverError(w, listErr)
				return
			}
			a.render(w, r, http.StatusUnprocessableEntity, "profile.page.html", &templateData{
				Title:     "Profile",
				FormError: err.Error(),
				Reviews:   reviews,
			})
			return
		}
		a.serverError(w, err)
		return
	}

	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// deleteAccount removes the caller's account (reviews cascade) and
// destroys the session.
func (a *App) deleteAccount(w http.ResponseWriter, r *http.Request) {
	identity := a.currentIdentity(r)

	if err := a.accounts.DeleteAccount(r.Context(), identity.ID); err != nil {
		a.serverError(w, err)
		return
	}

	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		// The cascade already dropped the session rows; ignore not-found.
		_ = a.sessions.Terminate(r.Context(), cookie.Value)
	}

	a.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
