package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mknox/bookshelf/internal/auth"
	"github.com/mknox/bookshelf/internal/models"
	"github.com/mknox/bookshelf/internal/storage"
	"github.com/mknox/bookshelf/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestUser(t *testing.T, store *sqlite.SQLiteStore, name, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    time.Now().Unix(),
	}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestAddReview(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewReviewService(store, testLogger())
	alice := createTestUser(t, store, "Alice", "alice@example.com")

	t.Run("derives date, cover, and owner", func(t *testing.T) {
		review, err := svc.Add(ctx, alice.ID, "Dracula", "Gothic classic", "Read in October", "0141439846")
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if review.UserID != alice.ID {
			t.Errorf("expected owner %d, got %d", alice.ID, review.UserID)
		}
		if review.Image != "https://covers.openlibrary.org/b/isbn/0141439846-M.jpg" {
			t.Errorf("unexpected cover URL: %q", review.Image)
		}
		if review.Date != time.Now().Format("Jan 2, 2006") {
			t.Errorf("unexpected date: %q", review.Date)
		}
		if review.Notes != "Read in October" {
			t.Errorf("notes rewritten: %q", review.Notes)
		}
	})

	t.Run("blank notes become the sentinel", func(t *testing.T) {
		review, err := svc.Add(ctx, alice.ID, "Emma", "desc", "   ", "0141439580")
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if review.Notes != "No notes" {
			t.Errorf("expected %q, got %q", "No notes", review.Notes)
		}
	})
}

func TestEditReview(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewReviewService(store, testLogger())
	alice := createTestUser(t, store, "Alice", "alice@example.com")
	bob := createTestUser(t, store, "Bob", "bob@example.com")

	review, err := svc.Add(ctx, alice.ID, "Dracula", "Gothic classic", "", "0141439846")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	t.Run("owner edits; cover recomputed, date and owner kept", func(t *testing.T) {
		if err := svc.Edit(ctx, alice.ID, review.ID, "Dracula (annotated)", "Even better", "margin notes", "0199564094"); err != nil {
			t.Fatalf("Edit failed: %v", err)
		}

		got, err := svc.Get(ctx, review.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Title != "Dracula (annotated)" || got.Notes != "margin notes" {
			t.Errorf("fields not updated: %+v", got)
		}
		if got.Image != "https://covers.openlibrary.org/b/isbn/0199564094-M.jpg" {
			t.Errorf("cover not recomputed: %q", got.Image)
		}
		if got.UserID != alice.ID || got.Date != review.Date {
			t.Errorf("owner or date changed: %+v", got)
		}
	})

	t.Run("non-owner reads as not found", func(t *testing.T) {
		err := svc.Edit(ctx, bob.ID, review.ID, "Hijacked", "x", "x", "0000000000")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}

		got, err := svc.Get(ctx, review.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Title == "Hijacked" {
			t.Error("non-owner edit was applied")
		}
	})

	t.Run("missing id reads as not found", func(t *testing.T) {
		if err := svc.Edit(ctx, alice.ID, 99999, "x", "x", "x", "x"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDeleteReview(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewReviewService(store, testLogger())
	alice := createTestUser(t, store, "Alice", "alice@example.com")
	bob := createTestUser(t, store, "Bob", "bob@example.com")

	review, err := svc.Add(ctx, alice.ID, "Dracula", "Gothic classic", "", "0141439846")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	t.Run("non-owner cannot delete", func(t *testing.T) {
		if err := svc.Delete(ctx, bob.ID, review.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if _, err := svc.Get(ctx, review.ID); err != nil {
			t.Errorf("review should survive a non-owner delete: %v", err)
		}
	})

	t.Run("owner deletes", func(t *testing.T) {
		if err := svc.Delete(ctx, alice.ID, review.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := svc.Get(ctx, review.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})
}

func TestGetOwned(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewReviewService(store, testLogger())
	alice := createTestUser(t, store, "Alice", "alice@example.com")
	bob := createTestUser(t, store, "Bob", "bob@example.com")

	review, err := svc.Add(ctx, alice.ID, "Dracula", "Gothic classic", "", "0141439846")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if _, err := svc.GetOwned(ctx, alice.ID, review.ID); err != nil {
		t.Errorf("owner GetOwned failed: %v", err)
	}
	if _, err := svc.GetOwned(ctx, bob.ID, review.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for non-owner, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	logger := testLogger()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	authenticator := auth.NewPasswordAuthenticator(store, hasher, logger)
	accounts := NewAccountService(authenticator, store, hasher, logger)

	if _, err := accounts.Register(ctx, "Alice", "alice@example.com", "password1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("mismatched fields rejected", func(t *testing.T) {
		err := accounts.ChangePassword(ctx, "alice@example.com", "newpassword", "different")
		if !errors.Is(err, ErrPasswordMismatch) {
			t.Errorf("expected ErrPasswordMismatch, got %v", err)
		}
	})

	t.Run("weak password rejected", func(t *testing.T) {
		err := accounts.ChangePassword(ctx, "alice@example.com", "short", "short")
		if !errors.Is(err, auth.ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("new password takes effect", func(t *testing.T) {
		if err := accounts.ChangePassword(ctx, "alice@example.com", "newpassword", "newpassword"); err != nil {
			t.Fatalf("ChangePassword failed: %v", err)
		}

		if _, err := accounts.Login(ctx, "alice@example.com", "password1"); !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Errorf("old password still accepted: %v", err)
		}
		if _, err := accounts.Login(ctx, "alice@example.com", "newpassword"); err != nil {
			t.Errorf("new password rejected: %v", err)
		}
	})
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	logger := testLogger()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	authenticator := auth.NewPasswordAuthenticator(store, hasher, logger)
	accounts := NewAccountService(authenticator, store, hasher, logger)
	reviews := NewReviewService(store, testLogger())

	alice, err := accounts.Register(ctx, "Alice", "alice@example.com", "password1")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	review, err := reviews.Add(ctx, alice.ID, "Dracula", "Gothic classic", "", "0141439846")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := accounts.DeleteAccount(ctx, alice.ID); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}

	if _, err := accounts.Login(ctx, "alice@example.com", "password1"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("deleted account can still log in: %v", err)
	}
	if _, err := reviews.Get(ctx, review.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected review to cascade, got %v", err)
	}
}
