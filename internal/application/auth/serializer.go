package auth

import (
	"context"
	"errors"
	"fmt"

	domain "labtrack/internal/domain/auth"
	"labtrack/internal/domain/user"
)

// Serializer maps an authenticated user to the session payload and back.
// Only the user id is kept in the session.
type Serializer struct {
	users user.Repository
}

func NewSerializer(users user.Repository) *Serializer {
	return &Serializer{users: users}
}

func (s *Serializer) Serialize(u *user.User) int64 {
	return u.ID
}

// Deserialize returns domain.ErrSessionInvalid when the id no longer
// resolves to a user.
func (s *Serializer) Deserialize(ctx context.Context, userID int64) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, domain.ErrSessionInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("deserialize user %d: %w", userID, err)
	}
	return u, nil
}
