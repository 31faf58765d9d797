package user

import "context"

// Repository defines the contract for credential storage.
// Email lookups are exact and case-sensitive. Create must return
// ErrAccountExists when the email uniqueness constraint rejects the row.
type Repository interface {
	Create(ctx context.Context, email, passwordHash string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	CountByEmail(ctx context.Context, email string) (int, error)
}
