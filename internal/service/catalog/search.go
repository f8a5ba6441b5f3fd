package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookswap-backend/internal/adapter/postgres/book"
	"github.com/heartmarshall/bookswap-backend/internal/domain"
)

// Page is one page of catalog search results with pagination metadata.
type Page struct {
	Books      []domain.Book
	Page       int
	TotalPages int
	TotalBooks int
}

// Search runs the catalog filter: free-text match on title/author/genre,
// exact genre and location, tri-state availability, newest first. Pages are
// 1-based; a page past the end yields an empty (not error) result.
// ownerID, when non-nil, restricts results to one owner's listings.
func (s *Service) Search(ctx context.Context, input SearchInput, ownerID *uuid.UUID) (*Page, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit <= 0 {
		input.Limit = s.cfg.DefaultPageSize
	}
	if input.Limit > s.cfg.MaxPageSize {
		input.Limit = s.cfg.MaxPageSize
	}

	filter := book.Filter{
		Availability: domain.AvailabilityFilter(input.Availability),
		OwnerID:      ownerID,
		Limit:        input.Limit,
		Offset:       (input.Page - 1) * input.Limit,
	}
	if q := strings.TrimSpace(input.Search); q != "" {
		filter.Search = &q
	}
	// "All" from the original client is a wildcard, not a genre.
	if g := strings.TrimSpace(input.Genre); g != "" && !strings.EqualFold(g, "all") {
		filter.Genre = &g
	}
	if l := strings.TrimSpace(input.Location); l != "" && !strings.EqualFold(l, "all") {
		filter.Location = &l
	}

	books, total, err := s.books.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("catalog.Search: %w", err)
	}

	totalPages := total / input.Limit
	if total%input.Limit != 0 {
		totalPages++
	}

	return &Page{
		Books:      books,
		Page:       input.Page,
		TotalPages: totalPages,
		TotalBooks: total,
	}, nil
}

// Genres returns all distinct genres in the catalog.
func (s *Service) Genres(ctx context.Context) ([]string, error) {
	genres, err := s.books.Genres(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.Genres: %w", err)
	}
	return genres, nil
}

// TrendingGenres returns the most-listed genres with counts.
func (s *Service) TrendingGenres(ctx context.Context) ([]domain.GenreCount, error) {
	counts, err := s.books.TrendingGenres(ctx, s.cfg.TrendingGenres)
	if err != nil {
		return nil, fmt.Errorf("catalog.TrendingGenres: %w", err)
	}
	return counts, nil
}
