// Package hash provides the bcrypt-backed password hasher.
package hash

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the cost factor used for all stored credentials.
const DefaultCost = 12

// Bcrypt implements ports.PasswordHasher using golang.org/x/crypto/bcrypt.
// bcrypt salts every digest itself, so hashing the same password twice yields
// different digests, and CompareHashAndPassword is constant-time.
type Bcrypt struct {
	cost int
}

// NewBcrypt returns a hasher with the given cost. Costs outside bcrypt's
// supported range fall back to DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. Malformed digests verify
// as false rather than erroring: by the time Verify runs, the account row
// exists, so the only honest answer about a bad digest is "no match".
func (b *Bcrypt) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
