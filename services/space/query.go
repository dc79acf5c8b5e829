package space

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"cowork/models"
)

const (
	defaultPage  = 1
	defaultLimit = 25
	maxLimit     = 100
)

// filterableFields may appear as query filters; createdAt may also be selected or sorted on.
var filterableFields = []string{"name", "address", "tel", "openTime", "closeTime"}

var reservedParams = []string{"select", "sort", "page", "limit"}

var filterKey = regexp.MustCompile(`^([A-Za-z]+)(?:\[(gt|gte|lt|lte|in)\])?$`)

// ListParams is a parsed directory listing request.
type ListParams struct {
	Query models.SpaceQuery
	Page  int64
	Limit int64
}

// ParseListQuery turns `?name=A&openTime[gte]=08:00&select=name&sort=-name&page=2`
// into a store query.
func ParseListQuery(values url.Values) (ListParams, error) {
	params := ListParams{Page: defaultPage, Limit: defaultLimit}

	var err error
	if v := values.Get("page"); v != "" {
		if params.Page, err = strconv.ParseInt(v, 10, 64); err != nil || params.Page < 1 {
			return ListParams{}, fmt.Errorf("%w: page", ErrInvalidQuery)
		}
	}
	if v := values.Get("limit"); v != "" {
		if params.Limit, err = strconv.ParseInt(v, 10, 64); err != nil || params.Limit < 1 {
			return ListParams{}, fmt.Errorf("%w: limit", ErrInvalidQuery)
		}
		params.Limit = min(params.Limit, maxLimit)
	}
	// page*limit must fit in int64 for both the skip and the pagination links.
	if params.Page > math.MaxInt64/params.Limit {
		return ListParams{}, fmt.Errorf("%w: page", ErrInvalidQuery)
	}

	q := models.SpaceQuery{Skip: (params.Page - 1) * params.Limit, Limit: params.Limit}

	if v := values.Get("select"); v != "" {
		for _, f := range splitList(v) {
			if !selectable(f) {
				return ListParams{}, fmt.Errorf("%w: select %q", ErrInvalidQuery, f)
			}
			q.Select = append(q.Select, f)
		}
	}
	if v := values.Get("sort"); v != "" {
		for _, f := range splitList(v) {
			desc := strings.HasPrefix(f, "-")
			f = strings.TrimPrefix(f, "-")
			if !selectable(f) {
				return ListParams{}, fmt.Errorf("%w: sort %q", ErrInvalidQuery, f)
			}
			q.Sort = append(q.Sort, models.SortField{Field: f, Desc: desc})
		}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if slices.Contains(reservedParams, key) {
			continue
		}
		m := filterKey.FindStringSubmatch(key)
		if m == nil || !slices.Contains(filterableFields, m[1]) {
			return ListParams{}, fmt.Errorf("%w: %q", ErrInvalidQuery, key)
		}
		op := models.OpEq
		if m[2] != "" {
			op = models.FilterOp(m[2])
		}
		raw := values.Get(key)
		vals := []string{raw}
		if op == models.OpIn {
			vals = splitList(raw)
		}
		if len(vals) == 0 || (op != models.OpIn && raw == "") {
			return ListParams{}, fmt.Errorf("%w: empty value for %q", ErrInvalidQuery, key)
		}
		q.Filters = append(q.Filters, models.FieldFilter{Field: m[1], Op: op, Values: vals})
	}

	params.Query = q
	return params, nil
}

// BuildPagination reports the neighbouring pages of a listing.
func BuildPagination(params ListParams, total int64) models.Pagination {
	var p models.Pagination
	if params.Page*params.Limit < total {
		p.Next = &models.PageRef{Page: params.Page + 1, Limit: params.Limit}
	}
	if params.Page > 1 {
		p.Prev = &models.PageRef{Page: params.Page - 1, Limit: params.Limit}
	}
	return p
}

func selectable(field string) bool {
	return field == "createdAt" || slices.Contains(filterableFields, field)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
