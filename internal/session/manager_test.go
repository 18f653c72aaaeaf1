package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mknox/bookshelf/internal/models"
	"github.com/mknox/bookshelf/internal/storage/sqlite"
)

const testSecret = "test-session-secret-0123456789ab"

func newTestManager(t *testing.T, ttl time.Duration) (*Manager, models.Identity) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	user := &models.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().Unix(),
	}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	return NewManager(store, testSecret, ttl), user.Identity()
}

func TestEstablishAndResolve(t *testing.T) {
	ctx := context.Background()
	manager, identity := newTestManager(t, time.Hour)

	token, err := manager.Establish(ctx, identity)
	if err != nil {
		t.Fatalf("Establish failed: %v", err)
	}

	resolved, err := manager.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.ID != identity.ID || resolved.Email != identity.Email {
		t.Errorf("resolved identity mismatch: got %+v, want %+v", resolved, identity)
	}
}

func TestTerminate(t *testing.T) {
	ctx := context.Background()
	manager, identity := newTestManager(t, time.Hour)

	token, err := manager.Establish(ctx, identity)
	if err != nil {
		t.Fatalf("Establish failed: %v", err)
	}

	if err := manager.Terminate(ctx, token); err != nil {
		t.Fatalf("Terminate failed: %v", err)
	}
	if _, err := manager.Resolve(ctx, token); !errors.Is(err, ErrAnonymous) {
		t.Errorf("expected ErrAnonymous after terminate, got %v", err)
	}

	// Terminating again, or with garbage, is not an error.
	if err := manager.Terminate(ctx, token); err != nil {
		t.Errorf("second Terminate failed: %v", err)
	}
	if err := manager.Terminate(ctx, "not-a-token"); err != nil {
		t.Errorf("Terminate with garbage token failed: %v", err)
	}
}

func TestResolveRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	manager, identity := newTestManager(t, time.Hour)

	token, err := manager.Establish(ctx, identity)
	if err != nil {
		t.Fatalf("Establish failed: %v", err)
	}

	t.Run("empty token", func(t *testing.T) {
		if _, err := manager.Resolve(ctx, ""); !errors.Is(err, ErrAnonymous) {
			t.Errorf("expected ErrAnonymous, got %v", err)
		}
	})

	t.Run("tampered token", func(t *testing.T) {
		if _, err := manager.Resolve(ctx, token+"x"); !errors.Is(err, ErrAnonymous) {
			t.Errorf("expected ErrAnonymous, got %v", err)
		}
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		forged, err := NewTokenSigner("other-secret").Sign("11111111-2222-3333-4444-555555555555", time.Now().Add(time.Hour))
		if err != nil {
			t.Fatalf("Sign failed: %v", err)
		}
		if _, err := manager.Resolve(ctx, forged); !errors.Is(err, ErrAnonymous) {
			t.Errorf("expected ErrAnonymous, got %v", err)
		}
	})

	t.Run("valid signature but unknown session id", func(t *testing.T) {
		orphan, err := NewTokenSigner(testSecret).Sign("11111111-2222-3333-4444-555555555555", time.Now().Add(time.Hour))
		if err != nil {
			t.Fatalf("Sign failed: %v", err)
		}
		if _, err := manager.Resolve(ctx, orphan); !errors.Is(err, ErrAnonymous) {
			t.Errorf("expected ErrAnonymous, got %v", err)
		}
	})
}

func TestResolveExpiredSession(t *testing.T) {
	ctx := context.Background()
	manager, identity := newTestManager(t, -time.Minute)

	token, err := manager.Establish(ctx, identity)
	if err != nil {
		t.Fatalf("Establish failed: %v", err)
	}

	if _, err := manager.Resolve(ctx, token); !errors.Is(err, ErrAnonymous) {
		t.Errorf("expected ErrAnonymous for expired session, got %v", err)
	}
}

func TestCleanupExpired(t *testing.T) {
	ctx := context.Background()
	manager, identity := newTestManager(t, -time.Minute)

	if _, err := manager.Establish(ctx, identity); err != nil {
		t.Fatalf("Establish failed: %v", err)
	}

	if err := manager.CleanupExpired(ctx); err != nil {
		t.Fatalf("CleanupExpired failed: %v", err)
	}
}

func TestTokenSigner(t *testing.T) {
	signer := NewTokenSigner(testSecret)

	t.Run("round-trip", func(t *testing.T) {
		const sessionID = "11111111-2222-3333-4444-555555555555"
		token, err := signer.Sign(sessionID, time.Now().Add(time.Hour))
		if err != nil {
			t.Fatalf("Sign failed: %v", err)
		}

		got, err := signer.Parse(token)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if got != sessionID {
			t.Errorf("expected session id %q, got %q", sessionID, got)
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		token, err := signer.Sign("11111111-2222-3333-4444-555555555555", time.Now().Add(-time.Hour))
		if err != nil {
			t.Fatalf("Sign failed: %v", err)
		}
		if _, err := signer.Parse(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
