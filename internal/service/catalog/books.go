package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
	"github.com/heartmarshall/bookswap-backend/pkg/ctxutil"
)

// CreateBook lists a new book owned by the caller. New listings are always
// available.
func (s *Service) CreateBook(ctx context.Context, input CreateBookInput) (*domain.Book, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Author = strings.TrimSpace(input.Author)
	input.Genre = strings.TrimSpace(input.Genre)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	book, err := s.books.Create(ctx, &domain.Book{
		OwnerID:     callerID,
		Title:       input.Title,
		Author:      input.Author,
		Genre:       input.Genre,
		Condition:   input.Condition,
		Location:    input.Location,
		Description: input.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("catalog.CreateBook: %w", err)
	}

	s.log.InfoContext(ctx, "book listed", "book_id", book.ID, "owner_id", callerID)

	return book, nil
}

// GetBook returns one listing by ID.
func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog.GetBook: %w", err)
	}
	return book, nil
}

// UpdateBook applies a partial update to a listing the caller owns.
// Non-owners get ErrForbidden regardless of the requested change.
func (s *Service) UpdateBook(ctx context.Context, id uuid.UUID, input UpdateBookInput) (*domain.Book, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog.UpdateBook: %w", err)
	}
	if book.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}

	params := input.params()
	if params.IsEmpty() {
		return book, nil
	}

	updated, err := s.books.Update(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("catalog.UpdateBook: %w", err)
	}
	return updated, nil
}

// DeleteBook removes a listing the caller owns.
func (s *Service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("catalog.DeleteBook: %w", err)
	}
	if book.OwnerID != callerID {
		return domain.ErrForbidden
	}

	if err := s.books.Delete(ctx, id); err != nil {
		return fmt.Errorf("catalog.DeleteBook: %w", err)
	}

	s.log.InfoContext(ctx, "book removed", "book_id", id, "owner_id", callerID)

	return nil
}

// MyBooks returns all listings owned by the caller, including unavailable
// ones.
func (s *Service) MyBooks(ctx context.Context) ([]domain.Book, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	page, err := s.Search(ctx, SearchInput{Limit: s.cfg.MaxPageSize}, &callerID)
	if err != nil {
		return nil, fmt.Errorf("catalog.MyBooks: %w", err)
	}
	return page.Books, nil
}
