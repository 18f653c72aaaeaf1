// Package auth implements credential handling: password hashing and the
// authentication strategy that turns an email/password pair into a user.
package auth

import (
	"context"

	"github.com/mknox/bookshelf/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods
// (password, OAuth, etc.) without changing the handlers.
type Authenticator interface {
	// Register creates a new user account with the given credential.
	// Returns the created user or an error if registration fails.
	Register(ctx context.Context, name, email, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if
	// successful. The error is the same whether the email is unknown or the
	// password is wrong.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the
	// implementation's requirements (length, complexity, etc.).
	ValidateCredential(credential string) error
}
