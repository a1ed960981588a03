// Package hashing wraps bcrypt for member credentials. Stored credentials
// exist in two historical forms; LooksHashed tells them apart by the bcrypt
// "$2" version marker so callers never hash-compare a plaintext value or
// string-compare a digest.
package hashing

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when asked to hash an empty string.
var ErrEmptyPassword = errors.New("password must not be empty")

// hashedPrefix identifies a bcrypt digest ($2a$, $2b$, $2y$ variants).
const hashedPrefix = "$2"

// Hasher produces and verifies bcrypt digests with a fixed work factor.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash generates a salted bcrypt digest of the password.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether the password matches the stored digest. The
// comparison is constant-time with respect to the digest contents.
func (h *Hasher) Verify(password, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// LooksHashed reports whether the stored credential is a bcrypt digest
// rather than a legacy plaintext value.
func LooksHashed(stored string) bool {
	return strings.HasPrefix(stored, hashedPrefix)
}
