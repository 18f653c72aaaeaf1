package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mknox/bookshelf/internal/models"
	"github.com/mknox/bookshelf/internal/storage"
)

var (
	// ErrInvalidCredentials is returned for every failed login, whether the
	// email is unknown or the password is wrong. Callers cannot enumerate
	// registered emails through distinguishable errors.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrWeakPassword = errors.New("password must be at least 8 characters")
	ErrEmailExists  = errors.New("email already registered")
)

// PasswordAuthenticator implements password-based authentication backed by
// a user store and a Hasher.
type PasswordAuthenticator struct {
	users  storage.UserStore
	hasher Hasher
	logger *slog.Logger
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(users storage.UserStore, hasher Hasher, logger *slog.Logger) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new user account with a hashed password. Duplicate
// emails surface as ErrEmailExists; the uniqueness check lives in the
// database constraint, so concurrent registrations cannot both succeed.
func (a *PasswordAuthenticator) Register(ctx context.Context, name, email, credential string) (*models.User, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	digest, err := a.hasher.Hash(credential)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: digest,
		CreatedAt:    time.Now().Unix(),
	}

	if err := a.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the email and password, returning the user if
// valid. The single failure path runs Start -> lookup -> verify; both a
// missing account and a bad password reject with ErrInvalidCredentials.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.User, error) {
	user, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			a.logger.Error("user lookup failed", "error", err)
		}
		return nil, ErrInvalidCredentials
	}

	if err := a.hasher.Verify(credential, user.PasswordHash); err != nil {
		if !errors.Is(err, ErrPasswordMismatch) {
			// Malformed stored digest. Still rejected, but worth a record.
			a.logger.Error("password verification failed", "user_id", user.ID, "error", err)
		}
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
