package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cowork/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const loginCodeSubject = "Your login verification code"

// Login checks the password and starts an OTP challenge. The code is only ever
// handed to the notifier. A delivery failure rolls the challenge back.
func (s *DefaultAuthService) Login(ctx context.Context, email, password string) (*LoginChallenge, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingInput
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrPasswordMismatch
	}

	code, challenge, err := s.IssueChallenge(ctx, user)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Your login code is %s. It expires in %d minutes.", code, int(s.opts.OTPWindow/time.Minute))
	if err := s.Notifier.Send(ctx, user.Email, loginCodeSubject, body); err != nil {
		utils.GetLogger().Error("Login code delivery failed", zap.String("userID", user.ID), zap.Error(err))
		if _, clearErr := s.ClearChallenge(ctx, user.ID, digestOTP(code)); clearErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotifierFailure, clearErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrNotifierFailure, err)
	}

	utils.GetLogger().Info("Login challenge issued",
		zap.String("userID", user.ID),
		zap.Time("expiresAt", challenge.ExpiresAt),
	)
	return challenge, nil
}
