package models

import (
	"fmt"

	"github.com/desertthunder/algox/internal/shared"
)

// SortKey selects the ordering of search results. It never filters.
type SortKey string

const (
	SortUnspecified SortKey = ""
	SortNewest      SortKey = "newest"
	SortMostPopular SortKey = "most_popular"
)

// ParseSortKey converts user input into a [SortKey].
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortUnspecified, SortNewest, SortMostPopular:
		return SortKey(s), nil
	default:
		return SortUnspecified, fmt.Errorf("%w: sort must be one of newest, most_popular", shared.ErrInvalidFlag)
	}
}

// SearchQuery holds six optional filters. All are independent and combinable.
//
// The zero value is valid and asks for the unfiltered catalog in the service's default order.
type SearchQuery struct {
	Title               string  // substring match
	Topic               string  // substring match
	ProgrammingLanguage string  // exact match
	OwnerID             string  // exact match on the submitting user
	ID                  string  // exact match on the entry
	SortBy              SortKey // ordering only
}

// IsEmpty reports whether no field is set.
func (q SearchQuery) IsEmpty() bool {
	return q == SearchQuery{}
}
