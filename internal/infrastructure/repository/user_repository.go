package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"labtrack/internal/domain/user"
	"labtrack/internal/infrastructure/database"
)

type userRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) user.Repository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, email, passwordHash string) (*user.User, error) {
	u := &user.User{
		Email:     email,
		Password:  passwordHash,
		CreatedAt: time.Now().UTC(),
	}

	err := r.db.QueryRowContext(ctx, r.db.Rebind(
		`INSERT INTO users (email, password, created_at) VALUES (?, ?, ?) RETURNING id`),
		u.Email, u.Password, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, user.ErrAccountExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getOne(ctx, `SELECT id, email, password, created_at FROM users WHERE id = ?`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, `SELECT id, email, password, created_at FROM users WHERE email = ?`, email)
}

func (r *userRepository) CountByEmail(ctx context.Context, email string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT COUNT(*) FROM users WHERE email = ?`), email).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*user.User, error) {
	u := &user.User{}
	err := r.db.QueryRowContext(ctx, r.db.Rebind(query), arg).
		Scan(&u.ID, &u.Email, &u.Password, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}
