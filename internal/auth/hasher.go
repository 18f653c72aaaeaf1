package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher abstracts password hashing so the rest of the auth layer stays
// independent of the algorithm.
type Hasher interface {
	// Hash produces a salted one-way digest of the plaintext. Repeated
	// calls on the same input yield different digests.
	Hash(plaintext string) (string, error)

	// Verify compares plaintext against a stored digest. It returns
	// ErrPasswordMismatch when they do not match and a wrapped error for a
	// malformed digest; it never reports success on a digest it cannot parse.
	Verify(plaintext, digest string) error
}

// ErrPasswordMismatch is returned by Verify when the plaintext does not
// match the digest.
var ErrPasswordMismatch = errors.New("password does not match")

// BcryptHasher implements Hasher using bcrypt. The cost factor trades
// login latency against brute-force resistance and is set from config.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost. Costs outside
// bcrypt's valid range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash generates a salted bcrypt digest of the plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify checks the plaintext against the digest. A digest bcrypt cannot
// parse fails closed with the parse error rather than a silent false.
func (h *BcryptHasher) Verify(plaintext, digest string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return fmt.Errorf("failed to verify password: %w", err)
}
