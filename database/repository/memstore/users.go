package memstore

import (
	"context"
	"strings"
	"time"

	userRepo "cowork/database/repository/user"
	"cowork/models"

	"github.com/google/uuid"
)

// UserStore implements userRepo.UserRepository.
type UserStore struct{ s *Store }

var _ userRepo.UserRepository = (*UserStore)(nil)

func cloneUser(u models.User) *models.User {
	if u.LoginOTPDigest != nil {
		d := *u.LoginOTPDigest
		u.LoginOTPDigest = &d
	}
	if u.LoginOTPExpire != nil {
		e := *u.LoginOTPExpire
		u.LoginOTPExpire = &e
	}
	return &u
}

func (r *UserStore) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return userRepo.ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.s.users[user.ID] = *cloneUser(*user)
	return nil
}

func (r *UserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *UserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserStore) SetLoginChallenge(_ context.Context, id, digest string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return userRepo.ErrUserNotFound
	}
	u.LoginOTPDigest = &digest
	u.LoginOTPExpire = &expiresAt
	r.s.users[id] = u
	return nil
}

func (r *UserStore) ClearLoginChallenge(_ context.Context, id, digest string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok || u.LoginOTPDigest == nil || *u.LoginOTPDigest != digest {
		return false, nil
	}
	u.LoginOTPDigest = nil
	u.LoginOTPExpire = nil
	r.s.users[id] = u
	return true, nil
}

func (r *UserStore) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return userRepo.ErrUserNotFound
	}
	delete(r.s.users, id)
	return nil
}
