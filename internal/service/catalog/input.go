package catalog

import (
	"strings"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
)

const (
	maxTitleLen       = 200
	maxAuthorLen      = 120
	maxGenreLen       = 50
	maxConditionLen   = 50
	maxLocationLen    = 100
	maxDescriptionLen = 2000
)

// CreateBookInput holds parameters for listing a new book.
type CreateBookInput struct {
	Title       string
	Author      string
	Genre       string
	Condition   string
	Location    string
	Description string
}

// Validate validates the create-book input.
func (i CreateBookInput) Validate() error {
	var errs []domain.FieldError

	errs = appendRequired(errs, "title", i.Title, maxTitleLen)
	errs = appendRequired(errs, "author", i.Author, maxAuthorLen)
	errs = appendRequired(errs, "genre", i.Genre, maxGenreLen)
	errs = appendRequired(errs, "condition", i.Condition, maxConditionLen)

	if len(i.Location) > maxLocationLen {
		errs = append(errs, domain.FieldError{Field: "location", Message: "too long"})
	}
	if len(i.Description) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateBookInput holds the partial update for a listing. nil = unchanged.
type UpdateBookInput struct {
	Title       *string
	Author      *string
	Genre       *string
	Condition   *string
	Location    *string
	Description *string
}

// Validate validates the update-book input.
func (i UpdateBookInput) Validate() error {
	var errs []domain.FieldError

	errs = appendOptional(errs, "title", i.Title, maxTitleLen)
	errs = appendOptional(errs, "author", i.Author, maxAuthorLen)
	errs = appendOptional(errs, "genre", i.Genre, maxGenreLen)
	errs = appendOptional(errs, "condition", i.Condition, maxConditionLen)
	errs = appendOptional(errs, "location", i.Location, maxLocationLen)

	if i.Description != nil && len(*i.Description) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i UpdateBookInput) params() domain.BookUpdateParams {
	return domain.BookUpdateParams{
		Title:       i.Title,
		Author:      i.Author,
		Genre:       i.Genre,
		Condition:   i.Condition,
		Location:    i.Location,
		Description: i.Description,
	}
}

// SearchInput holds catalog search parameters. Zero values mean "no filter".
type SearchInput struct {
	Search       string
	Genre        string
	Location     string
	Availability string
	Page         int
	Limit        int
}

// Validate validates the search input.
func (i SearchInput) Validate() error {
	var errs []domain.FieldError

	if i.Availability != "" && !domain.AvailabilityFilter(i.Availability).IsValid() {
		errs = append(errs, domain.FieldError{Field: "availability", Message: "must be all, available or unavailable"})
	}
	if i.Page < 0 {
		errs = append(errs, domain.FieldError{Field: "page", Message: "must not be negative"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func appendRequired(errs []domain.FieldError, field, value string, maxLen int) []domain.FieldError {
	if strings.TrimSpace(value) == "" {
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	if len(value) > maxLen {
		return append(errs, domain.FieldError{Field: field, Message: "too long"})
	}
	return errs
}

func appendOptional(errs []domain.FieldError, field string, value *string, maxLen int) []domain.FieldError {
	if value == nil {
		return errs
	}
	if strings.TrimSpace(*value) == "" {
		return append(errs, domain.FieldError{Field: field, Message: "must not be empty"})
	}
	if len(*value) > maxLen {
		return append(errs, domain.FieldError{Field: field, Message: "too long"})
	}
	return errs
}
