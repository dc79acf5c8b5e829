package models

import "time"

// CoworkingSpace is an entry in the space directory.
type CoworkingSpace struct {
	ID        string    `bson:"_id" json:"_id"`
	Name      string    `bson:"name,omitempty" json:"name,omitempty"`
	Address   string    `bson:"address,omitempty" json:"address,omitempty"`
	Tel       string    `bson:"tel,omitempty" json:"tel,omitempty"`
	OpenTime  string    `bson:"openTime,omitempty" json:"openTime,omitempty"`
	CloseTime string    `bson:"closeTime,omitempty" json:"closeTime,omitempty"`
	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// SpaceSummary is the subset of a space embedded in reservations and favorites.
type SpaceSummary struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Tel       string `json:"tel"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

func (s *CoworkingSpace) Summary() *SpaceSummary {
	return &SpaceSummary{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		Tel:       s.Tel,
		OpenTime:  s.OpenTime,
		CloseTime: s.CloseTime,
	}
}

// SpaceRequest is the body of POST /coworking-spaces.
type SpaceRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Address   string `json:"address" binding:"required"`
	Tel       string `json:"tel" binding:"required,telephone"`
	OpenTime  string `json:"openTime" binding:"required,clock"`
	CloseTime string `json:"closeTime" binding:"required,clock"`
}

// SpaceUpdate is the body of PUT /coworking-spaces/:id. Nil fields are left untouched.
type SpaceUpdate struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	Address   *string `json:"address" binding:"omitempty,min=1"`
	Tel       *string `json:"tel" binding:"omitempty,telephone"`
	OpenTime  *string `json:"openTime" binding:"omitempty,clock"`
	CloseTime *string `json:"closeTime" binding:"omitempty,clock"`
}

// IsEmpty reports whether the update carries no fields.
func (u SpaceUpdate) IsEmpty() bool {
	return u.Name == nil && u.Address == nil && u.Tel == nil && u.OpenTime == nil && u.CloseTime == nil
}

// FilterOp is a comparison accepted by the directory listing.
type FilterOp string

const (
	OpEq  FilterOp = "eq"
	OpGt  FilterOp = "gt"
	OpGte FilterOp = "gte"
	OpLt  FilterOp = "lt"
	OpLte FilterOp = "lte"
	OpIn  FilterOp = "in"
)

// FieldFilter is one parsed `field[op]=value` condition.
type FieldFilter struct {
	Field  string
	Op     FilterOp
	Values []string
}

// SortField orders listing results.
type SortField struct {
	Field string
	Desc  bool
}

// SpaceQuery is a validated directory listing request.
type SpaceQuery struct {
	Filters []FieldFilter
	Select  []string
	Sort    []SortField
	Skip    int64
	Limit   int64
}

// PageRef points at a neighbouring page.
type PageRef struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
}

// Pagination is attached to directory listings.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}
