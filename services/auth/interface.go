package auth

import (
	"context"
	"errors"
	"time"

	userRepo "cowork/database/repository/user"
	"cowork/models"
	"cowork/services/notification"
)

// Options carries every tunable of the login protocol.
type Options struct {
	OTPWindow     time.Duration
	Secret        []byte
	SessionTTL    time.Duration
	CookieTTL     time.Duration
	SecureCookies bool
}

// LoginChallenge is handed to the client after a correct password.
type LoginChallenge struct {
	PendingToken string
	ExpiresAt    time.Time
}

// SessionGrant is the result of a successful OTP verification.
type SessionGrant struct {
	Token string
	User  *models.User
}

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*LoginChallenge, error)
	ResolvePending(ctx context.Context, token string) (*models.User, error)
	VerifyOTP(ctx context.Context, user *models.User, code string) (*SessionGrant, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	Options() Options
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Repo     userRepo.UserRepository
	Notifier notification.Notifier
	opts     Options
	now      func() time.Time
}

func NewDefaultAuthService(repo userRepo.UserRepository, notifier notification.Notifier, opts Options) (*DefaultAuthService, error) {
	if repo == nil || notifier == nil {
		return nil, errors.New("auth service initialization error: repository or notifier is nil")
	}
	if len(opts.Secret) == 0 {
		return nil, errors.New("auth service initialization error: JWT secret is empty")
	}
	if opts.OTPWindow <= 0 {
		opts.OTPWindow = 10 * time.Minute
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 30 * 24 * time.Hour
	}
	if opts.CookieTTL <= 0 {
		opts.CookieTTL = opts.SessionTTL
	}
	return &DefaultAuthService{Repo: repo, Notifier: notifier, opts: opts, now: time.Now}, nil
}

func (s *DefaultAuthService) Options() Options {
	return s.opts
}
