package book

import (
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
)

// Filter defines parameters for searching and paginating the catalog.
type Filter struct {
	// Search performs ILIKE '%...%' across title, author and genre.
	// nil or empty string means no text filter.
	Search *string

	// Genre filters by exact genre match.
	Genre *string

	// Location filters by exact location match.
	Location *string

	// Availability selects all, only available, or only unavailable books.
	// Empty value means all.
	Availability domain.AvailabilityFilter

	// OwnerID, when set, restricts results to one owner's listings.
	OwnerID *uuid.UUID

	// Limit is the maximum number of books to return.
	Limit int

	// Offset is the number of books to skip (offset-based pagination).
	Offset int
}

const (
	defaultLimit = 10
	maxLimit     = 100
)

// normalize applies defaults and clamps values.
func (f *Filter) normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Availability == "" {
		f.Availability = domain.AvailabilityAll
	}
}

// predicates translates the filter into squirrel WHERE clauses shared by the
// listing query and its COUNT twin.
func (f *Filter) predicates() []squirrel.Sqlizer {
	var preds []squirrel.Sqlizer

	if f.Search != nil && *f.Search != "" {
		pattern := "%" + *f.Search + "%"
		preds = append(preds, squirrel.Or{
			squirrel.ILike{"b.title": pattern},
			squirrel.ILike{"b.author": pattern},
			squirrel.ILike{"b.genre": pattern},
		})
	}
	if f.Genre != nil && *f.Genre != "" {
		preds = append(preds, squirrel.Eq{"b.genre": *f.Genre})
	}
	if f.Location != nil && *f.Location != "" {
		preds = append(preds, squirrel.Eq{"b.location": *f.Location})
	}
	if f.OwnerID != nil {
		preds = append(preds, squirrel.Eq{"b.owner_id": *f.OwnerID})
	}

	switch f.Availability {
	case domain.AvailabilityAvailable:
		preds = append(preds, squirrel.Eq{"b.is_available": true})
	case domain.AvailabilityUnavailable:
		preds = append(preds, squirrel.Eq{"b.is_available": false})
	}

	return preds
}
