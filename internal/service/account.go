package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mknox/bookshelf/internal/auth"
	"github.com/mknox/bookshelf/internal/models"
	"github.com/mknox/bookshelf/internal/storage"
)

// ErrPasswordMismatch is returned by ChangePassword when the two submitted
// password fields differ.
var ErrPasswordMismatch = errors.New("passwords do not match")

// AccountService implements account lifecycle operations on top of the
// authentication strategy and the user store.
type AccountService struct {
	authenticator auth.Authenticator
	users         storage.UserStore
	hasher        auth.Hasher
	logger        *slog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(authenticator auth.Authenticator, users storage.UserStore, hasher auth.Hasher, logger *slog.Logger) *AccountService {
	return &AccountService{
		authenticator: authenticator,
		users:         users,
		hasher:        hasher,
		logger:        logger,
	}
}

// Register creates a new account. Duplicate emails surface as
// auth.ErrEmailExists.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	user, err := s.authenticator.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login verifies the credentials. Unknown email and wrong password both
// fail with auth.ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	return s.authenticator.Authenticate(ctx, email, password)
}

// ChangePassword re-hashes and persists a new password for the account.
// password and confirm must match; the handler collects both fields.
func (s *AccountService) ChangePassword(ctx context.Context, email, password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if err := s.authenticator.ValidateCredential(password); err != nil {
		return err
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, email, digest); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	s.logger.Info("password changed", "email", email)
	return nil
}

// DeleteAccount removes the user record. The user's reviews and sessions
// go with it; no dangling owner references survive.
func (s *AccountService) DeleteAccount(ctx context.Context, id int64) error {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.Info("account deleted", "user_id", id)
	return nil
}
