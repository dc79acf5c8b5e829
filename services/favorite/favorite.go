package favorite

import (
	"context"
	"errors"
	"fmt"

	favoriteRepo "cowork/database/repository/favorite"
	spaceRepo "cowork/database/repository/space"
	"cowork/models"
)

var (
	ErrSpaceNotFound = errors.New("co-working space not found")
	ErrNotFound      = errors.New("favorite not found")
	ErrDuplicate     = errors.New("co-working space is already in favorites")
)

type FavoriteService interface {
	List(ctx context.Context, userID string) ([]models.FavoriteView, error)
	Add(ctx context.Context, userID, spaceID string) (*models.Favorite, error)
	Remove(ctx context.Context, userID, spaceID string) error
}

type DefaultFavoriteService struct {
	Repo   favoriteRepo.FavoriteRepository
	Spaces spaceRepo.SpaceRepository
}

func NewDefaultFavoriteService(repo favoriteRepo.FavoriteRepository, spaces spaceRepo.SpaceRepository) (*DefaultFavoriteService, error) {
	if repo == nil || spaces == nil {
		return nil, errors.New("favorite service initialization error: repository is nil")
	}
	return &DefaultFavoriteService{Repo: repo, Spaces: spaces}, nil
}

// List returns the user's favorites with their spaces embedded. Favorites whose
// space has vanished are skipped.
func (s *DefaultFavoriteService) List(ctx context.Context, userID string) ([]models.FavoriteView, error) {
	favs, err := s.Repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	views := make([]models.FavoriteView, 0, len(favs))
	for _, f := range favs {
		sp, err := s.Spaces.GetByID(ctx, f.CoworkingSpaceID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch space: %w", err)
		}
		if sp == nil {
			continue
		}
		views = append(views, models.FavoriteView{Favorite: f, CoworkingSpace: sp.Summary()})
	}
	return views, nil
}

func (s *DefaultFavoriteService) Add(ctx context.Context, userID, spaceID string) (*models.Favorite, error) {
	sp, err := s.Spaces.GetByID(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch space: %w", err)
	}
	if sp == nil {
		return nil, ErrSpaceNotFound
	}

	fav := &models.Favorite{UserID: userID, CoworkingSpaceID: sp.ID}
	if err := s.Repo.Create(ctx, fav); err != nil {
		if errors.Is(err, favoriteRepo.ErrDuplicateFavorite) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	return fav, nil
}

func (s *DefaultFavoriteService) Remove(ctx context.Context, userID, spaceID string) error {
	removed, err := s.Repo.DeleteByUserAndSpace(ctx, userID, spaceID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}
