package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns a plaintext password into an opaque digest and checks
// a plaintext against a stored digest.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// NewHasher selects a hasher by scheme name ("sha256" or "bcrypt").
func NewHasher(scheme string) (PasswordHasher, error) {
	switch scheme {
	case "", "sha256":
		return SHA256Hasher{}, nil
	case "bcrypt":
		return BcryptHasher{}, nil
	}
	return nil, fmt.Errorf("unknown password scheme %q", scheme)
}

// SHA256Hasher is the legacy scheme: a single unsalted SHA-256 hex digest.
// It is deterministic, which existing stored digests depend on, but it is a
// poor password hash; prefer BcryptHasher for new deployments.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(password, digest string) bool {
	hashed, _ := h.Hash(password)
	return hashed == digest
}

// BcryptHasher creates a salted bcrypt hash from the given plaintext password.
type BcryptHasher struct {
	// Cost determines the computational complexity of the hashing process.
	// Zero means bcrypt.DefaultCost.
	Cost int
}

func (b BcryptHasher) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
