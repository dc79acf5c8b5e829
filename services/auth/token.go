package auth

import (
	"fmt"
	"time"

	"cowork/utils"

	"github.com/golang-jwt/jwt"
)

// StageOTPPending marks a token that passed the password step only.
const StageOTPPending = "otp_pending"

// Claims is shared by pending and session tokens. Session tokens carry no stage.
type Claims struct {
	Stage string `json:"stage,omitempty"`
	jwt.StandardClaims
}

func (s *DefaultAuthService) signToken(userID, stage string, expiresAt time.Time) (string, error) {
	claims := Claims{
		Stage: stage,
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  s.now().Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}
	token, err := utils.SignHS256(s.opts.Secret, claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *DefaultAuthService) parseToken(raw string) (*Claims, error) {
	var claims Claims
	if err := utils.ParseHS256(s.opts.Secret, raw, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return &claims, nil
}

// IssueSessionToken signs a session token for userID.
func (s *DefaultAuthService) IssueSessionToken(userID string) (string, error) {
	return s.signToken(userID, "", s.now().Add(s.opts.SessionTTL))
}
