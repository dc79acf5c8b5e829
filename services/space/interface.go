package space

import (
	"context"
	"errors"

	favoriteRepo "cowork/database/repository/favorite"
	reservationRepo "cowork/database/repository/reservation"
	spaceRepo "cowork/database/repository/space"
	"cowork/models"
)

// ListResult is one page of the directory.
type ListResult struct {
	Spaces     []models.CoworkingSpace
	Total      int64
	Pagination models.Pagination
}

type SpaceService interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Get(ctx context.Context, id string) (*models.CoworkingSpace, error)
	Create(ctx context.Context, req models.SpaceRequest) (*models.CoworkingSpace, error)
	Update(ctx context.Context, id string, update models.SpaceUpdate) (*models.CoworkingSpace, error)
	Delete(ctx context.Context, id string) error
}

// DefaultSpaceService also owns the reservation and favorite repositories so that
// deleting a space can cascade.
type DefaultSpaceService struct {
	Repo         spaceRepo.SpaceRepository
	Reservations reservationRepo.ReservationRepository
	Favorites    favoriteRepo.FavoriteRepository
}

func NewDefaultSpaceService(
	repo spaceRepo.SpaceRepository,
	reservations reservationRepo.ReservationRepository,
	favorites favoriteRepo.FavoriteRepository,
) (*DefaultSpaceService, error) {
	if repo == nil || reservations == nil || favorites == nil {
		return nil, errors.New("space service initialization error: repository is nil")
	}
	return &DefaultSpaceService{Repo: repo, Reservations: reservations, Favorites: favorites}, nil
}
