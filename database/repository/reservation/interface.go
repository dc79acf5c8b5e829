package reservationRepo

import (
	"context"
	"errors"
	"time"

	"cowork/models"
)

var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepository persists reservations. GetByID returns (nil, nil) when
// nothing matches.
type ReservationRepository interface {
	Create(ctx context.Context, r *models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	Find(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	UpdateDate(ctx context.Context, id string, date time.Time) (*models.Reservation, error)
	Delete(ctx context.Context, id string) error
	DeleteBySpace(ctx context.Context, spaceID string) (int64, error)
}
