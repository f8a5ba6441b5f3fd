// Package catalog implements book listing management and search.
package catalog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookswap-backend/internal/adapter/postgres/book"
	"github.com/heartmarshall/bookswap-backend/internal/config"
	"github.com/heartmarshall/bookswap-backend/internal/domain"
)

// bookRepo defines the book repository interface needed by the catalog service.
type bookRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	Create(ctx context.Context, b *domain.Book) (*domain.Book, error)
	Update(ctx context.Context, id uuid.UUID, p domain.BookUpdateParams) (*domain.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f book.Filter) ([]domain.Book, int, error)
	Genres(ctx context.Context) ([]string, error)
	TrendingGenres(ctx context.Context, limit int) ([]domain.GenreCount, error)
}

// Service implements catalog operations.
type Service struct {
	log   *slog.Logger
	books bookRepo
	cfg   config.CatalogConfig
}

// NewService creates a new catalog service instance.
func NewService(logger *slog.Logger, books bookRepo, cfg config.CatalogConfig) *Service {
	return &Service{
		log:   logger.With("service", "catalog"),
		books: books,
		cfg:   cfg,
	}
}
