// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mknox/bookshelf/internal/models"
)

var (
	// ErrNotFound is returned when a user, review, or session does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when creating a user with an email that
	// is already registered. Backends map their driver's unique-violation
	// error to this, so concurrent registrations resolve in the database.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore persists user accounts. All queries are parameterized; no
// caller-supplied value is ever concatenated into SQL.
type UserStore interface {
	// CreateUser inserts a new user and populates user.ID.
	// Returns ErrDuplicateEmail if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns ErrNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by id. Returns ErrNotFound if absent.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// UpdatePassword replaces the stored password hash for the account with
	// the given email. Returns ErrNotFound if no such account exists.
	UpdatePassword(ctx context.Context, email, newHash string) error

	// DeleteUser removes the account. The user's reviews and sessions are
	// deleted with it (ON DELETE CASCADE). Returns ErrNotFound if absent.
	DeleteUser(ctx context.Context, id int64) error
}

// ReviewStore persists book reviews.
type ReviewStore interface {
	// CreateReview inserts a new review and populates review.ID.
	CreateReview(ctx context.Context, review *models.Review) error

	// GetReview retrieves a review by id. Returns ErrNotFound if absent.
	GetReview(ctx context.Context, id int64) (*models.Review, error)

	// UpdateReview updates title, description, notes, isbn, and image of the
	// review identified by review.ID. Owner and date are never touched.
	// Returns ErrNotFound if absent.
	UpdateReview(ctx context.Context, review *models.Review) error

	// DeleteReview removes a review. Returns ErrNotFound if absent.
	DeleteReview(ctx context.Context, id int64) error

	// ListReviews returns all reviews, newest first (id descending).
	ListReviews(ctx context.Context) ([]models.Review, error)

	// ListReviewsByOwner returns all reviews owned by the given user,
	// newest first.
	ListReviewsByOwner(ctx context.Context, userID int64) ([]models.Review, error)

	// ListReviewsSorted returns all reviews ordered by the given field and
	// order. Both are validated against a closed allow-list before any SQL
	// is built; anything else fails with ErrInvalidSortSpec.
	ListReviewsSorted(ctx context.Context, field, order string) ([]models.Review, error)
}

// SessionStore persists server-side sessions.
type SessionStore interface {
	// CreateSession inserts a new session record.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session by token. Returns ErrNotFound if absent.
	GetSession(ctx context.Context, token string) (*models.Session, error)

	// DeleteSession removes a session. Returns ErrNotFound if absent.
	DeleteSession(ctx context.Context, token string) error

	// DeleteExpiredSessions removes every session whose expiry is at or
	// before the given Unix timestamp.
	DeleteExpiredSessions(ctx context.Context, now int64) error
}

// Store is the full persistence surface the server is wired against.
// This abstraction allows swapping backends (SQLite for development,
// PostgreSQL in production) without changing the service layer.
type Store interface {
	UserStore
	ReviewStore
	SessionStore

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
