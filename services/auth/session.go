package auth

import (
	"context"
	"fmt"

	"cowork/models"
	"cowork/utils"
)

// Authenticate resolves a session token to the live user record. Pending tokens
// are rejected as invalid.
func (s *DefaultAuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if utils.IsPlaceholderToken(token) {
		return nil, ErrUnauthenticated
	}
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Stage != "" || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	user, err := s.Repo.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, ErrUserGone)
	}
	return user, nil
}
