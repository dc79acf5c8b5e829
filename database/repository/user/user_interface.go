package userRepo

import (
	"context"
	"errors"
	"time"

	"cowork/models"
)

// ErrDuplicateEmail is returned by Create when the email is already registered.
var ErrDuplicateEmail = errors.New("a user with this email already exists")

// ErrUserNotFound is returned by updates that matched no document.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the credential store. Lookups return (nil, nil) when no user matches.
type UserRepository interface {
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// SetLoginChallenge writes both challenge fields in one atomic update.
	SetLoginChallenge(ctx context.Context, id, digest string, expiresAt time.Time) error
	// ClearLoginChallenge unsets both challenge fields in one atomic update, but
	// only while the stored digest still equals digest. It reports whether this
	// call removed the challenge.
	ClearLoginChallenge(ctx context.Context, id, digest string) (bool, error)
	// Delete removes a user record by its ID.
	Delete(ctx context.Context, id string) error
}
