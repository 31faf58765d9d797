package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	domain "labtrack/internal/domain/auth"
	"labtrack/internal/domain/user"
)

// bcrypt rejects longer input
const maxPasswordBytes = 72

// Service defines the authentication service interface
type Service interface {
	Register(ctx context.Context, req domain.SignupRequest) (*user.User, error)
	Authenticate(ctx context.Context, email, password string) (domain.Result, error)
	StartSession(ctx context.Context, u *user.User) (*domain.Session, error)
	ResolveSession(ctx context.Context, sessionID string) (*user.User, *domain.Session, error)
	EndSession(ctx context.Context, sessionID string) error
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type service struct {
	userRepo    user.Repository
	sessionRepo domain.SessionRepository
	hasher      PasswordHasher
	serializer  *Serializer
	sessionTTL  time.Duration
	now         func() time.Time

	// compared against when the email is unknown so both rejection paths
	// spend a bcrypt verification
	dummyDigest string
}

// Option customizes the service
type Option func(*service)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService creates a new auth service
func NewService(userRepo user.Repository, sessionRepo domain.SessionRepository, hasher PasswordHasher, sessionTTL time.Duration, opts ...Option) (Service, error) {
	s := &service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		serializer:  NewSerializer(userRepo),
		sessionTTL:  sessionTTL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	dummy, err := hasher.Hash("labtrack-timing-equalizer")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy digest: %w", err)
	}
	s.dummyDigest = dummy

	return s, nil
}

func (s *service) Register(ctx context.Context, req domain.SignupRequest) (*user.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, user.ErrMissingCredentials
	}
	if req.Password != req.ConfirmPassword {
		return nil, user.ErrPasswordMismatch
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, user.ErrPasswordTooLong
	}

	// Fast path only. The UNIQUE constraint decides under concurrency.
	_, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, user.ErrAccountExists
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	return s.userRepo.Create(ctx, req.Email, digest)
}

func (s *service) Authenticate(ctx context.Context, email, password string) (domain.Result, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, user.ErrUserNotFound) {
		s.hasher.Verify(password, s.dummyDigest)
		return domain.Rejected(domain.ReasonUnknownEmail), nil
	}
	if err != nil {
		return domain.Result{}, err
	}

	if !s.hasher.Verify(password, u.Password) {
		return domain.Rejected(domain.ReasonPasswordIncorrect), nil
	}

	return domain.Authenticated(u), nil
}

func (s *service) StartSession(ctx context.Context, u *user.User) (*domain.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	now := s.now()
	session := &domain.Session{
		ID:        token,
		UserID:    s.serializer.Serialize(u),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ResolveSession returns domain.ErrSessionNotFound for unknown or expired
// sessions and domain.ErrSessionInvalid when the session's user is gone.
// Expired and invalid sessions are destroyed.
func (s *service) ResolveSession(ctx context.Context, sessionID string) (*user.User, *domain.Session, error) {
	if sessionID == "" {
		return nil, nil, domain.ErrSessionNotFound
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if session.Expired(s.now()) {
		if err := s.EndSession(ctx, sessionID); err != nil {
			return nil, nil, err
		}
		return nil, nil, domain.ErrSessionNotFound
	}

	u, err := s.serializer.Deserialize(ctx, session.UserID)
	if errors.Is(err, domain.ErrSessionInvalid) {
		if err := s.EndSession(ctx, sessionID); err != nil {
			return nil, nil, err
		}
		return nil, nil, domain.ErrSessionInvalid
	}
	if err != nil {
		return nil, nil, err
	}

	return u, session, nil
}

// EndSession is idempotent
func (s *service) EndSession(ctx context.Context, sessionID string) error {
	err := s.sessionRepo.Delete(ctx, sessionID)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	return nil
}

// PurgeExpiredSessions is a no-op for stores with native expiry
func (s *service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	purger, ok := s.sessionRepo.(domain.ExpiredSessionPurger)
	if !ok {
		return 0, nil
	}
	return purger.PurgeExpired(ctx, s.now())
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
