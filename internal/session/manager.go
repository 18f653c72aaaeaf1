// Package session persists authenticated identities across requests.
//
// A session is a server-side record keyed by an opaque UUID token. The
// browser cookie carries a signed envelope around that token, so a forged
// or tampered cookie never reaches the store. Only the minimal identity
// projection (id, name, email) is stored in the session record.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mknox/bookshelf/internal/models"
	"github.com/mknox/bookshelf/internal/storage"
)

// ErrAnonymous is returned by Resolve when the token is missing, invalid,
// expired, or its session no longer exists.
var ErrAnonymous = errors.New("no authenticated session")

// Manager establishes, resolves, and terminates sessions.
type Manager struct {
	sessions storage.SessionStore
	signer   *TokenSigner
	ttl      time.Duration
}

// NewManager creates a session manager. ttl bounds both the server-side
// record and the signed cookie token.
func NewManager(sessions storage.SessionStore, secret string, ttl time.Duration) *Manager {
	return &Manager{
		sessions: sessions,
		signer:   NewTokenSigner(secret),
		ttl:      ttl,
	}
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Establish creates a new session for the identity and returns the signed
// cookie token.
func (m *Manager) Establish(ctx context.Context, identity models.Identity) (string, error) {
	now := time.Now()
	expires := now.Add(m.ttl)

	record := &models.Session{
		Token:     uuid.New().String(),
		UserID:    identity.ID,
		Name:      identity.Name,
		Email:     identity.Email,
		ExpiresAt: expires.Unix(),
		CreatedAt: now.Unix(),
	}

	if err := m.sessions.CreateSession(ctx, record); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return m.signer.Sign(record.Token, expires)
}

// Resolve maps a cookie token back to an identity. Every failure mode
// collapses to ErrAnonymous; an expired session is deleted on sight.
func (m *Manager) Resolve(ctx context.Context, cookieToken string) (*models.Identity, error) {
	sessionID, err := m.signer.Parse(cookieToken)
	if err != nil {
		return nil, ErrAnonymous
	}

	record, err := m.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, ErrAnonymous
	}

	if time.Now().Unix() >= record.ExpiresAt {
		_ = m.sessions.DeleteSession(ctx, sessionID)
		return nil, ErrAnonymous
	}

	identity := record.Identity()
	return &identity, nil
}

// Terminate destroys the session behind the cookie token (logout).
// Terminating an already-dead session is not an error.
func (m *Manager) Terminate(ctx context.Context, cookieToken string) error {
	sessionID, err := m.signer.Parse(cookieToken)
	if err != nil {
		return nil
	}

	if err := m.sessions.DeleteSession(ctx, sessionID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// CleanupExpired removes every expired session record. Run at startup.
func (m *Manager) CleanupExpired(ctx context.Context) error {
	return m.sessions.DeleteExpiredSessions(ctx, time.Now().Unix())
}
