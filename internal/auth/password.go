// Package auth implements the credential hash contract and the signed,
// expiring password-recovery token protocol.
package auth

import (
	"microlog/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies account credentials with bcrypt. The cost is
// fixed at construction.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside the
// valid bcrypt range fall back to the library default.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{cost: cost}
}

// Set replaces the user's stored credential hash with a salted one-way hash
// of plaintext. The plaintext itself is never stored.
func (h Hasher) Set(user *models.User, plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.PasswordHash = string(hash)
	return nil
}

// Verify reports whether plaintext matches the user's stored hash. A wrong
// password is not an error; any verification failure returns false. The
// comparison is constant time relative to hash length.
func (h Hasher) Verify(user *models.User, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(plaintext)) == nil
}
