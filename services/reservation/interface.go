package reservation

import (
	"context"
	"errors"
	"time"

	reservationRepo "cowork/database/repository/reservation"
	spaceRepo "cowork/database/repository/space"
	"cowork/models"
)

// MaxActiveReservations is the per-user limit for non-admin accounts.
const MaxActiveReservations = 3

// ReminderScheduler queues a reminder ahead of a reservation date.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, res *models.Reservation, spaceName string) error
}

type ReservationService interface {
	List(ctx context.Context, actor *models.User, spaceID string) ([]models.ReservationView, error)
	Get(ctx context.Context, actor *models.User, id string) (*models.ReservationView, error)
	Add(ctx context.Context, actor *models.User, spaceID string, date time.Time) (*models.Reservation, error)
	Update(ctx context.Context, actor *models.User, id string, date time.Time) (*models.Reservation, error)
	Delete(ctx context.Context, actor *models.User, id string) error
}

type DefaultReservationService struct {
	Repo      reservationRepo.ReservationRepository
	Spaces    spaceRepo.SpaceRepository
	Reminders ReminderScheduler
}

// NewDefaultReservationService wires the service. reminders may be nil.
func NewDefaultReservationService(
	repo reservationRepo.ReservationRepository,
	spaces spaceRepo.SpaceRepository,
	reminders ReminderScheduler,
) (*DefaultReservationService, error) {
	if repo == nil || spaces == nil {
		return nil, errors.New("reservation service initialization error: repository is nil")
	}
	return &DefaultReservationService{Repo: repo, Spaces: spaces, Reminders: reminders}, nil
}
