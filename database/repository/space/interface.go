package spaceRepo

import (
	"context"
	"errors"

	"cowork/models"
)

var (
	ErrDuplicateName = errors.New("a co-working space with this name already exists")
	ErrSpaceNotFound = errors.New("co-working space not found")
)

// SpaceRepository stores the co-working space directory. GetByID and Update return
// (nil, nil) when the space does not exist.
type SpaceRepository interface {
	Create(ctx context.Context, space *models.CoworkingSpace) error
	GetByID(ctx context.Context, id string) (*models.CoworkingSpace, error)
	Update(ctx context.Context, id string, update models.SpaceUpdate) (*models.CoworkingSpace, error)
	Delete(ctx context.Context, id string) error
	// Find returns one page of matching spaces and the total number of matches.
	Find(ctx context.Context, query models.SpaceQuery) ([]models.CoworkingSpace, int64, error)
}
