package space

import (
	"context"
	"errors"
	"fmt"

	spaceRepo "cowork/database/repository/space"
	"cowork/models"
	"cowork/utils"

	"go.uber.org/zap"
)

func (s *DefaultSpaceService) List(ctx context.Context, params ListParams) (*ListResult, error) {
	spaces, total, err := s.Repo.Find(ctx, params.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}
	return &ListResult{
		Spaces:     spaces,
		Total:      total,
		Pagination: BuildPagination(params, total),
	}, nil
}

func (s *DefaultSpaceService) Get(ctx context.Context, id string) (*models.CoworkingSpace, error) {
	sp, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch space: %w", err)
	}
	if sp == nil {
		return nil, ErrNotFound
	}
	return sp, nil
}

func (s *DefaultSpaceService) Create(ctx context.Context, req models.SpaceRequest) (*models.CoworkingSpace, error) {
	sp := &models.CoworkingSpace{
		Name:      req.Name,
		Address:   req.Address,
		Tel:       req.Tel,
		OpenTime:  req.OpenTime,
		CloseTime: req.CloseTime,
	}
	if err := s.Repo.Create(ctx, sp); err != nil {
		if errors.Is(err, spaceRepo.ErrDuplicateName) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create space: %w", err)
	}
	utils.GetLogger().Info("Space created", zap.String("spaceID", sp.ID), zap.String("name", sp.Name))
	return sp, nil
}

func (s *DefaultSpaceService) Update(ctx context.Context, id string, update models.SpaceUpdate) (*models.CoworkingSpace, error) {
	if update.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	sp, err := s.Repo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrDuplicateName) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update space: %w", err)
	}
	if sp == nil {
		return nil, ErrNotFound
	}
	return sp, nil
}

// Delete removes a space along with its reservations and favorites.
func (s *DefaultSpaceService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	removedReservations, err := s.Reservations.DeleteBySpace(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete reservations of space: %w", err)
	}
	removedFavorites, err := s.Favorites.DeleteBySpace(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete favorites of space: %w", err)
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete space: %w", err)
	}

	utils.GetLogger().Info("Space deleted",
		zap.String("spaceID", id),
		zap.Int64("reservations", removedReservations),
		zap.Int64("favorites", removedFavorites),
	)
	return nil
}
