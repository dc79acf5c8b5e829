package memstore

import (
	"context"
	"sort"
	"time"

	favoriteRepo "cowork/database/repository/favorite"
	"cowork/models"

	"github.com/google/uuid"
)

// FavoriteStore implements favoriteRepo.FavoriteRepository.
type FavoriteStore struct{ s *Store }

var _ favoriteRepo.FavoriteRepository = (*FavoriteStore)(nil)

func (r *FavoriteStore) Create(_ context.Context, fav *models.Favorite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, f := range r.s.favorites {
		if f.UserID == fav.UserID && f.CoworkingSpaceID == fav.CoworkingSpaceID {
			return favoriteRepo.ErrDuplicateFavorite
		}
	}
	if fav.ID == "" {
		fav.ID = uuid.New().String()
	}
	fav.CreatedAt = time.Now()
	r.s.favorites[fav.ID] = *fav
	return nil
}

func (r *FavoriteStore) FindByUser(_ context.Context, userID string) ([]models.Favorite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Favorite{}
	for _, f := range r.s.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *FavoriteStore) Exists(_ context.Context, userID, spaceID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, f := range r.s.favorites {
		if f.UserID == userID && f.CoworkingSpaceID == spaceID {
			return true, nil
		}
	}
	return false, nil
}

func (r *FavoriteStore) DeleteByUserAndSpace(_ context.Context, userID, spaceID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, f := range r.s.favorites {
		if f.UserID == userID && f.CoworkingSpaceID == spaceID {
			delete(r.s.favorites, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *FavoriteStore) DeleteBySpace(_ context.Context, spaceID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, f := range r.s.favorites {
		if f.CoworkingSpaceID == spaceID {
			delete(r.s.favorites, id)
			n++
		}
	}
	return n, nil
}
