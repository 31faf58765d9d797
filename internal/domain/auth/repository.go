package auth

import (
	"context"
	"time"
)

// SessionRepository defines the server-side session storage interface
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// ExpiredSessionPurger is implemented by stores that need explicit cleanup
// of expired sessions. Stores with native expiry do not implement it.
type ExpiredSessionPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
