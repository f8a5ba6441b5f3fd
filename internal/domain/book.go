package domain

import (
	"time"

	"github.com/google/uuid"
)

// Book is a single listing in the catalog. A book belongs to exactly one
// owner; IsAvailable is false whenever an exchange for it is in the accepted
// state.
type Book struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Author      string
	Genre       string
	Condition   string
	Location    string
	Description string
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// OwnerUsername is populated on reads that join the owner row.
	OwnerUsername string
}

// BookUpdateParams carries the owner-editable fields for a partial update.
// nil means "leave unchanged".
type BookUpdateParams struct {
	Title       *string
	Author      *string
	Genre       *string
	Condition   *string
	Location    *string
	Description *string
}

// IsEmpty reports whether no field is set.
func (p BookUpdateParams) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.Genre == nil &&
		p.Condition == nil && p.Location == nil && p.Description == nil
}

// GenreCount is a genre with the number of books listed under it,
// used by the trending-genres view.
type GenreCount struct {
	Genre string
	Count int
}
