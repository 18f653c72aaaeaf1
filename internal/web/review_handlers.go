package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mknox/bookshelf/internal/storage"
)

// home lists every review, newest first.
func (a *App) home(w http.ResponseWriter, r *http.Request) {
	reviews, err := a.reviews.ListAll(r.Context())
	if err != nil {
		a.serverError(w, err)
		return
	}

	a.render(w, r, http.StatusOK, "index.page.html", &templateData{
		Title:     "Book Reviews",
		Reviews:   reviews,
		SortField: "id",
		SortOrder: "desc",
	})
}

// showReview renders a single review page.
func (a *App) showReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.notFound(w)
		return
	}

	review, err := a.reviews.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.notFound(w)
			return
		}
		a.serverError(w, err)
		return
	}

	a.render(w, r, http.StatusOK, "review.page.html", &templateData{
		Title:  review.Title,
		Review: review,
	})
}

// profile lists the caller's own reviews.
func (a *App) profile(w http.ResponseWriter, r *http.Request) {
	identity := a.currentIdentity(r)

	reviews, err := a.reviews.ListByOwner(r.Context(), identity.ID)
	if err != nil {
		a.serverError(w, err)
		return
	}

	a.render(w, r, http.StatusOK, "profile.page.html", &templateData{
		Title:   "Profile",
		Reviews: reviews,
	})
}

// addReview creates a review owned by the caller.
func (a *App) addReview(w http.ResponseWriter, r *http.Request) {
	identity := a.currentIdentity(r)

	_, err := a.reviews.Add(r.Context(),
		identity.ID,
		r.FormValue("title"),
		r.FormValue("description"),
		r.FormValue("notes"),
		r.FormValue("isbn"),
	)
	if err != nil {
		a.serverError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// sortReviews lists reviews in a caller-chosen order. The field and order
// are allow-list validated; anything else is a 400.
func (a *App) sortReviews(w http.ResponseWriter, r *http.Request) {
	field := r.FormValue("sort")
	order := r.FormValue("order")

	reviews, err := a.reviews.ListSorted(r.Context(), field, order)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidSortSpec) {
			a.clientError(w, http.StatusBadRequest)
			return
		}
		a.serverError(w, err)
		return
	}

	a.render(w, r, http.StatusOK, "index.page.html", &templateData{
		Title:     "Book Reviews",
		Reviews:   reviews,
		SortField: field,
		SortOrder: order,
	})
}

// editForm pre-fills the edit page with a review the caller owns.
func (a *App) editForm(w http.ResponseWriter, r *http.Request) {
	identity := a.currentIdentity(r)

	id, err := pathID(r)
	if err != nil {
		a.notFound(w)
		return
	}

	review, err := a.reviews.GetOwned(r.Context(), identity.ID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.notFound(w)
			return
		}
		a.serverError(w, err)
		return
	}

	a.render(w, r, http.StatusOK, "edit.page.html", &templateData{
		Title:  "Edit Review",
		Review: review,
	})
}

// editReview updates a review the caller owns.
func (a *App) editReview(w http.ResponseWriter, r *http.Request) {
	identity := a.currentIdentity(r)

	id, err := pathID(r)
	if err != nil {
		a.notFound(w)
		return
	}

	err = a.reviews.Edit(r.Context(),
		identity.ID,
		id,
		r.FormValue("title"),
		r.FormValue("description"),
		r.FormValue("notes"),
		r.FormValue("isbn"),
	)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.notFound(w)
			return
		}
		a.serverError(w, err)
		return
	}

	http.Redirect(w, r, "/review/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// deleteReview removes a review the caller owns.
func (a *App) deleteReview(w http.ResponseWriter, r *http.Request) {
	identity := a.currentIdentity(r)

	id, err := pathID(r)
	if err != nil {
		a.notFound(w)
		return
	}

	if err := a.reviews.Delete(r.Context(), identity.ID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.notFound(w)
			return
		}
		a.serverError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// healthz reports liveness, including backend reachability.
func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Ping(r.Context()); err != nil {
		a.logger.Error("health check failed", "error", err)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
