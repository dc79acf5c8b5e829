package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"cowork/models"
	"cowork/utils"

	"go.uber.org/zap"
)

const otpDigits = 6

func digestOTP(code string) string {
	return utils.HashToken(code)
}

func matchOTP(code, digest string) bool {
	return subtle.ConstantTimeCompare([]byte(digestOTP(code)), []byte(digest)) == 1
}

// IssueChallenge creates a login code for user, stores its digest and expiry in
// one update, and signs a pending token that expires at the same second.
func (s *DefaultAuthService) IssueChallenge(ctx context.Context, user *models.User) (string, *LoginChallenge, error) {
	code, err := utils.GenerateNumericOTP(otpDigits)
	if err != nil {
		return "", nil, err
	}
	expiresAt := s.now().Add(s.opts.OTPWindow).Truncate(time.Second)

	digest := digestOTP(code)
	if err := s.Repo.SetLoginChallenge(ctx, user.ID, digest, expiresAt); err != nil {
		return "", nil, fmt.Errorf("failed to store login challenge: %w", err)
	}

	token, err := s.signToken(user.ID, StageOTPPending, expiresAt)
	if err != nil {
		s.ClearChallenge(ctx, user.ID, digest)
		return "", nil, err
	}
	return code, &LoginChallenge{PendingToken: token, ExpiresAt: expiresAt}, nil
}

// ClearChallenge removes both challenge fields if the stored digest is still
// digest. Every terminal transition goes through here; the returned bool is
// false when another caller or a newer login got there first.
func (s *DefaultAuthService) ClearChallenge(ctx context.Context, userID, digest string) (bool, error) {
	cleared, err := s.Repo.ClearLoginChallenge(ctx, userID, digest)
	if err != nil {
		utils.GetLogger().Error("Failed to clear login challenge", zap.String("userID", userID), zap.Error(err))
		return false, fmt.Errorf("failed to clear login challenge: %w", err)
	}
	return cleared, nil
}
