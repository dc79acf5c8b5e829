package auth

import (
	"context"
	"fmt"
	"strings"

	"cowork/models"
	"cowork/utils"

	"go.uber.org/zap"
)

// ResolvePending maps a pending token to its live user. It does not look at the
// challenge fields.
func (s *DefaultAuthService) ResolvePending(ctx context.Context, token string) (*models.User, error) {
	if utils.IsPlaceholderToken(token) {
		return nil, ErrUnauthenticated
	}
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Stage != StageOTPPending || claims.Subject == "" {
		return nil, ErrStageMismatch
	}

	user, err := s.Repo.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending user: %w", err)
	}
	if user == nil {
		return nil, ErrUserGone
	}
	return user, nil
}

// VerifyOTP checks code against the user's challenge. Every outcome past the
// presence checks consumes the challenge, so one wrong guess burns it. The
// success path only grants a session if this call is the one that removed the
// stored digest, so a challenge yields at most one session.
func (s *DefaultAuthService) VerifyOTP(ctx context.Context, user *models.User, code string) (*SessionGrant, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrMissingInput
	}
	if !user.HasLoginChallenge() {
		return nil, ErrNoActiveChallenge
	}
	digest := *user.LoginOTPDigest

	if user.LoginOTPExpire.Before(s.now()) {
		if _, err := s.ClearChallenge(ctx, user.ID, digest); err != nil {
			return nil, err
		}
		return nil, ErrExpired
	}

	if !matchOTP(code, digest) {
		if _, err := s.ClearChallenge(ctx, user.ID, digest); err != nil {
			return nil, err
		}
		utils.GetLogger().Info("Login code mismatch", zap.String("userID", user.ID))
		return nil, ErrMismatch
	}

	cleared, err := s.ClearChallenge(ctx, user.ID, digest)
	if err != nil {
		return nil, err
	}
	if !cleared {
		utils.GetLogger().Info("Login challenge already consumed", zap.String("userID", user.ID))
		return nil, ErrNoActiveChallenge
	}
	user.LoginOTPDigest = nil
	user.LoginOTPExpire = nil

	token, err := s.IssueSessionToken(user.ID)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Login completed", zap.String("userID", user.ID))
	return &SessionGrant{Token: token, User: user}, nil
}
