package handler

import (
	"context"

	domain "labtrack/internal/domain/auth"
	"labtrack/internal/domain/user"
)

// contextKey is the type for context keys
type contextKey string

const (
	// UserContextKey is the key used to store the authenticated user in context
	UserContextKey contextKey = "user"
	// SessionContextKey is the key used to store the active session in context
	SessionContextKey contextKey = "session"
)

// WithSession returns a copy of ctx carrying the user and their session
func WithSession(ctx context.Context, u *user.User, s *domain.Session) context.Context {
	ctx = context.WithValue(ctx, UserContextKey, u)
	return context.WithValue(ctx, SessionContextKey, s)
}

// GetUserFromContext retrieves the user from request context
func GetUserFromContext(ctx context.Context) *user.User {
	u, ok := ctx.Value(UserContextKey).(*user.User)
	if !ok {
		return nil
	}
	return u
}

// GetSessionFromContext retrieves the session from request context
func GetSessionFromContext(ctx context.Context) *domain.Session {
	s, ok := ctx.Value(SessionContextKey).(*domain.Session)
	if !ok {
		return nil
	}
	return s
}
