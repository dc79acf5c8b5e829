package memstore

import (
	"context"
	"sort"
	"time"

	reservationRepo "cowork/database/repository/reservation"
	"cowork/models"

	"github.com/google/uuid"
)

// ReservationStore implements reservationRepo.ReservationRepository.
type ReservationStore struct{ s *Store }

var _ reservationRepo.ReservationRepository = (*ReservationStore)(nil)

func (r *ReservationStore) Create(_ context.Context, res *models.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	res.CreatedAt = time.Now()
	r.s.reservations[res.ID] = *res
	return nil
}

func (r *ReservationStore) GetByID(_ context.Context, id string) (*models.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res, ok := r.s.reservations[id]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (r *ReservationStore) Find(_ context.Context, f models.ReservationFilter) ([]models.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Reservation{}
	for _, res := range r.s.reservations {
		if f.UserID != "" && res.UserID != f.UserID {
			continue
		}
		if f.CoworkingSpaceID != "" && res.CoworkingSpaceID != f.CoworkingSpaceID {
			continue
		}
		out = append(out, res)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReservationDate.Before(out[j].ReservationDate)
	})
	return out, nil
}

func (r *ReservationStore) CountByUser(_ context.Context, userID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, res := range r.s.reservations {
		if res.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *ReservationStore) UpdateDate(_ context.Context, id string, date time.Time) (*models.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, ok := r.s.reservations[id]
	if !ok {
		return nil, nil
	}
	res.ReservationDate = date
	r.s.reservations[id] = res
	return &res, nil
}

func (r *ReservationStore) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	delete(r.s.reservations, id)
	return nil
}

func (r *ReservationStore) DeleteBySpace(_ context.Context, spaceID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, res := range r.s.reservations {
		if res.CoworkingSpaceID == spaceID {
			delete(r.s.reservations, id)
			n++
		}
	}
	return n, nil
}
