// Package pagination normalizes list query parameters into a bounded
// page request. The same descriptor feeds both the repository query and
// the response envelope.
package pagination

import (
	"net/url"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is the normalized form of the page/limit/status/search query
// parameters. Status and Search are carried raw for logging; their
// matching semantics live in the repository.
type Params struct {
	Page   int
	Limit  int
	Skip   int
	Status string
	Search string
}

// FromQuery parses raw query values. Absent, zero, negative or
// non-numeric page falls back to 1. Limit outside (0, 100] falls back
// to 10 rather than being clamped, so limit=150 means 10, not 100.
func FromQuery(q url.Values) Params {
	page, _ := strconv.Atoi(q.Get("page"))
	if page <= 0 {
		page = DefaultPage
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Skip:   (page - 1) * limit,
		Status: q.Get("status"),
		Search: q.Get("search"),
	}
}
