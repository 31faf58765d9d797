package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"labtrack/internal/domain/user"
)

// DefaultCost is the bcrypt work factor used for stored passwords
const DefaultCost = 10

// PasswordHasher hashes and verifies passwords with a salted one-way function
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt hasher with the given cost
func NewBcryptHasher(cost int) PasswordHasher {
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", user.ErrPasswordTooLong
	}
	return string(digest), err
}

// Verify relies on bcrypt's constant-time comparison
func (h *bcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
