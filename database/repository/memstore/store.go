// Package memstore keeps every collection in process memory. It backs the test
// suites and DATABASE_URL=memory:// for local runs without MongoDB.
package memstore

import (
	"sync"

	"cowork/models"
)

// Store holds the shared maps. The per-collection repositories all lock mu.
type Store struct {
	mu           sync.RWMutex
	users        map[string]models.User
	spaces       map[string]models.CoworkingSpace
	reservations map[string]models.Reservation
	favorites    map[string]models.Favorite
}

func New() *Store {
	return &Store{
		users:        make(map[string]models.User),
		spaces:       make(map[string]models.CoworkingSpace),
		reservations: make(map[string]models.Reservation),
		favorites:    make(map[string]models.Favorite),
	}
}

func (s *Store) Users() *UserStore               { return &UserStore{s: s} }
func (s *Store) Spaces() *SpaceStore             { return &SpaceStore{s: s} }
func (s *Store) Reservations() *ReservationStore { return &ReservationStore{s: s} }
func (s *Store) Favorites() *FavoriteStore       { return &FavoriteStore{s: s} }
