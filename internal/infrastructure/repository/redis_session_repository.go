package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domain "labtrack/internal/domain/auth"
)

const sessionKeyPrefix = "labtrack:sess:"

type redisSessionRepository struct {
	rdb redis.UniversalClient
	now func() time.Time
}

var _ domain.SessionRepository = (*redisSessionRepository)(nil)

// NewRedisSessionRepository stores sessions as JSON values whose key TTL
// matches the session expiry, so Redis evicts them without a sweeper.
func NewRedisSessionRepository(rdb redis.UniversalClient) domain.SessionRepository {
	return &redisSessionRepository{rdb: rdb, now: time.Now}
}

type redisSession struct {
	UserID    int64 `json:"uid"`
	CreatedAt int64 `json:"iat"`
	ExpiresAt int64 `json:"exp"`
}

func (r *redisSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return errors.New("store session: already expired")
	}

	blob, err := json.Marshal(redisSession{
		UserID:    session.UserID,
		CreatedAt: session.CreatedAt.Unix(),
		ExpiresAt: session.ExpiresAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := r.rdb.Set(ctx, sessionKeyPrefix+session.ID, blob, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (r *redisSessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	blob, err := r.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var rs redisSession
	if err := json.Unmarshal(blob, &rs); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	return &domain.Session{
		ID:        id,
		UserID:    rs.UserID,
		CreatedAt: time.Unix(rs.CreatedAt, 0).UTC(),
		ExpiresAt: time.Unix(rs.ExpiresAt, 0).UTC(),
	}, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	n, err := r.rdb.Del(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
