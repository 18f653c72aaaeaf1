package auth

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("hash and verify round-trip", func(t *testing.T) {
		digest, err := hasher.Hash("correct horse battery staple")
		if err != nil {
			t.Fatalf("Hash failed: %v", err)
		}
		if digest == "correct horse battery staple" {
			t.Fatal("digest equals plaintext")
		}

		if err := hasher.Verify("correct horse battery staple", digest); err != nil {
			t.Errorf("Verify rejected the original plaintext: %v", err)
		}
	})

	t.Run("salt differs per call", func(t *testing.T) {
		first, err := hasher.Hash("swordfish1")
		if err != nil {
			t.Fatalf("Hash failed: %v", err)
		}
		second, err := hasher.Hash("swordfish1")
		if err != nil {
			t.Fatalf("Hash failed: %v", err)
		}
		if first == second {
			t.Error("two hashes of the same input are identical; salt is not randomized")
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		digest, err := hasher.Hash("swordfish1")
		if err != nil {
			t.Fatalf("Hash failed: %v", err)
		}

		err = hasher.Verify("swordfish2", digest)
		if !errors.Is(err, ErrPasswordMismatch) {
			t.Errorf("expected ErrPasswordMismatch, got %v", err)
		}
	})

	t.Run("malformed digest fails closed", func(t *testing.T) {
		err := hasher.Verify("anything", "not-a-bcrypt-digest")
		if err == nil {
			t.Fatal("expected an error for a malformed digest")
		}
		if errors.Is(err, ErrPasswordMismatch) {
			t.Error("malformed digest should not read as a plain mismatch")
		}
	})

	t.Run("out-of-range cost falls back to default", func(t *testing.T) {
		h := NewBcryptHasher(99)
		digest, err := h.Hash("swordfish1")
		if err != nil {
			t.Fatalf("Hash failed: %v", err)
		}

		cost, err := bcrypt.Cost([]byte(digest))
		if err != nil {
			t.Fatalf("Cost failed: %v", err)
		}
		if cost != bcrypt.DefaultCost {
			t.Errorf("expected cost %d, got %d", bcrypt.DefaultCost, cost)
		}
	})
}
