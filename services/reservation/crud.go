package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	reservationRepo "cowork/database/repository/reservation"
	"cowork/models"
	"cowork/utils"

	"go.uber.org/zap"
)

// List returns reservations visible to actor, narrowed to one space when
// spaceID is set. Non-admins only ever see their own.
func (s *DefaultReservationService) List(ctx context.Context, actor *models.User, spaceID string) ([]models.ReservationView, error) {
	filter := models.ReservationFilter{CoworkingSpaceID: spaceID}
	if !actor.IsAdmin() {
		filter.UserID = actor.ID
	}

	list, err := s.Repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	cache := map[string]*models.SpaceSummary{}
	views := make([]models.ReservationView, 0, len(list))
	for _, r := range list {
		view, err := s.populate(ctx, r, cache)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *DefaultReservationService) Get(ctx context.Context, actor *models.User, id string) (*models.ReservationView, error) {
	r, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, *r, map[string]*models.SpaceSummary{})
}

// Add books spaceID for the caller. Non-admins are capped at MaxActiveReservations;
// the count-then-insert is not atomic.
func (s *DefaultReservationService) Add(ctx context.Context, actor *models.User, spaceID string, date time.Time) (*models.Reservation, error) {
	sp, err := s.Spaces.GetByID(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch space: %w", err)
	}
	if sp == nil {
		return nil, ErrSpaceNotFound
	}

	if !actor.IsAdmin() {
		count, err := s.Repo.CountByUser(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count reservations: %w", err)
		}
		if count >= MaxActiveReservations {
			return nil, ErrQuotaExceeded
		}
	}

	r := &models.Reservation{
		ReservationDate:  date,
		UserID:           actor.ID,
		CoworkingSpaceID: sp.ID,
	}
	if err := s.Repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	s.scheduleReminder(ctx, r, sp.Name)
	return r, nil
}

func (s *DefaultReservationService) Update(ctx context.Context, actor *models.User, id string, date time.Time) (*models.Reservation, error) {
	if _, err := s.load(ctx, actor, id); err != nil {
		return nil, err
	}
	r, err := s.Repo.UpdateDate(ctx, id, date)
	if err != nil {
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}
	if r == nil {
		return nil, ErrNotFound
	}

	if sp, err := s.Spaces.GetByID(ctx, r.CoworkingSpaceID); err == nil && sp != nil {
		s.scheduleReminder(ctx, r, sp.Name)
	}
	return r, nil
}

func (s *DefaultReservationService) Delete(ctx context.Context, actor *models.User, id string) error {
	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}

// load fetches a reservation and enforces the owner-or-admin rule.
func (s *DefaultReservationService) load(ctx context.Context, actor *models.User, id string) (*models.Reservation, error) {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservation: %w", err)
	}
	if r == nil {
		return nil, ErrNotFound
	}
	if r.UserID != actor.ID && !actor.IsAdmin() {
		utils.GetLogger().Info("Reservation access denied",
			zap.String("userID", actor.ID),
			zap.String("reservationID", id),
		)
		return nil, ErrNotOwner
	}
	return r, nil
}

func (s *DefaultReservationService) populate(ctx context.Context, r models.Reservation, cache map[string]*models.SpaceSummary) (*models.ReservationView, error) {
	summary, ok := cache[r.CoworkingSpaceID]
	if !ok {
		sp, err := s.Spaces.GetByID(ctx, r.CoworkingSpaceID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch space: %w", err)
		}
		if sp != nil {
			summary = sp.Summary()
		}
		cache[r.CoworkingSpaceID] = summary
	}

	view := &models.ReservationView{Reservation: r}
	if summary != nil {
		view.CoworkingSpace = summary
	}
	return view, nil
}

// scheduleReminder is best-effort; a queue outage never fails the request.
func (s *DefaultReservationService) scheduleReminder(ctx context.Context, r *models.Reservation, spaceName string) {
	if s.Reminders == nil {
		return
	}
	if err := s.Reminders.ScheduleReminder(ctx, r, spaceName); err != nil {
		utils.GetLogger().Warn("Failed to schedule reservation reminder",
			zap.String("reservationID", r.ID),
			zap.Error(err),
		)
	}
}
