package memstore

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	spaceRepo "cowork/database/repository/space"
	"cowork/models"

	"github.com/google/uuid"
)

// SpaceStore implements spaceRepo.SpaceRepository.
type SpaceStore struct{ s *Store }

var _ spaceRepo.SpaceRepository = (*SpaceStore)(nil)

func (r *SpaceStore) nameTaken(name, exceptID string) bool {
	for id, sp := range r.s.spaces {
		if id != exceptID && sp.Name == name {
			return true
		}
	}
	return false
}

func (r *SpaceStore) Create(_ context.Context, space *models.CoworkingSpace) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	space.Name = strings.TrimSpace(space.Name)
	if r.nameTaken(space.Name, "") {
		return spaceRepo.ErrDuplicateName
	}
	if space.ID == "" {
		space.ID = uuid.New().String()
	}
	space.CreatedAt = time.Now()
	r.s.spaces[space.ID] = *space
	return nil
}

func (r *SpaceStore) GetByID(_ context.Context, id string) (*models.CoworkingSpace, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sp, ok := r.s.spaces[id]
	if !ok {
		return nil, nil
	}
	return &sp, nil
}

func (r *SpaceStore) Update(_ context.Context, id string, u models.SpaceUpdate) (*models.CoworkingSpace, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sp, ok := r.s.spaces[id]
	if !ok {
		return nil, nil
	}
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if r.nameTaken(name, id) {
			return nil, spaceRepo.ErrDuplicateName
		}
		sp.Name = name
	}
	if u.Address != nil {
		sp.Address = *u.Address
	}
	if u.Tel != nil {
		sp.Tel = *u.Tel
	}
	if u.OpenTime != nil {
		sp.OpenTime = *u.OpenTime
	}
	if u.CloseTime != nil {
		sp.CloseTime = *u.CloseTime
	}
	r.s.spaces[id] = sp
	return &sp, nil
}

func (r *SpaceStore) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.spaces[id]; !ok {
		return spaceRepo.ErrSpaceNotFound
	}
	delete(r.s.spaces, id)
	return nil
}

func (r *SpaceStore) Find(_ context.Context, q models.SpaceQuery) ([]models.CoworkingSpace, int64, error) {
	r.s.mu.RLock()
	matched := make([]models.CoworkingSpace, 0, len(r.s.spaces))
	for _, sp := range r.s.spaces {
		if matchesAll(sp, q.Filters) {
			matched = append(matched, sp)
		}
	}
	r.s.mu.RUnlock()

	order := q.Sort
	if len(order) == 0 {
		order = []models.SortField{{Field: "createdAt", Desc: true}}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		for _, f := range order {
			c := compareField(matched[i], matched[j], f.Field)
			if c == 0 {
				continue
			}
			if f.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	total := int64(len(matched))
	start := min(q.Skip, total)
	end := total
	if q.Limit > 0 {
		end = min(start+q.Limit, total)
	}
	page := matched[start:end]

	out := make([]models.CoworkingSpace, len(page))
	for i, sp := range page {
		out[i] = project(sp, q.Select)
	}
	return out, total, nil
}

func fieldValue(sp models.CoworkingSpace, field string) string {
	switch field {
	case "name":
		return sp.Name
	case "address":
		return sp.Address
	case "tel":
		return sp.Tel
	case "openTime":
		return sp.OpenTime
	case "closeTime":
		return sp.CloseTime
	}
	return ""
}

func compareField(a, b models.CoworkingSpace, field string) int {
	if field == "createdAt" {
		return a.CreatedAt.Compare(b.CreatedAt)
	}
	return strings.Compare(fieldValue(a, field), fieldValue(b, field))
}

func matchesAll(sp models.CoworkingSpace, filters []models.FieldFilter) bool {
	for _, f := range filters {
		v := fieldValue(sp, f.Field)
		var ok bool
		switch f.Op {
		case models.OpEq:
			ok = v == f.Values[0]
		case models.OpGt:
			ok = v > f.Values[0]
		case models.OpGte:
			ok = v >= f.Values[0]
		case models.OpLt:
			ok = v < f.Values[0]
		case models.OpLte:
			ok = v <= f.Values[0]
		case models.OpIn:
			ok = slices.Contains(f.Values, v)
		}
		if !ok {
			return false
		}
	}
	return true
}

func project(sp models.CoworkingSpace, fields []string) models.CoworkingSpace {
	if len(fields) == 0 {
		return sp
	}
	out := models.CoworkingSpace{ID: sp.ID}
	for _, f := range fields {
		switch f {
		case "name":
			out.Name = sp.Name
		case "address":
			out.Address = sp.Address
		case "tel":
			out.Tel = sp.Tel
		case "openTime":
			out.OpenTime = sp.OpenTime
		case "closeTime":
			out.CloseTime = sp.CloseTime
		case "createdAt":
			out.CreatedAt = sp.CreatedAt
		}
	}
	return out
}
