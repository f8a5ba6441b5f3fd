// Package book implements the catalog repository using PostgreSQL.
// Fixed-shape queries use raw SQL; the dynamic listing query is built
// with squirrel from the Filter.
package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	postgres "github.com/heartmarshall/bookswap-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookswap-backend/internal/domain"
)

// Repo provides book persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new book repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const bookColumns = `
    b.id, b.owner_id, b.title, b.author, b.genre, b.condition,
    b.location, b.description, b.is_available, b.created_at, b.updated_at,
    u.username AS owner_username`

const getByIDSQL = `
SELECT` + bookColumns + `
FROM books b
JOIN users u ON u.id = b.owner_id
WHERE b.id = $1`

const createSQL = `
WITH inserted AS (
    INSERT INTO books (owner_id, title, author, genre, condition, location, description)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING *
)
SELECT
    b.id, b.owner_id, b.title, b.author, b.genre, b.condition,
    b.location, b.description, b.is_available, b.created_at, b.updated_at,
    u.username AS owner_username
FROM inserted b
JOIN users u ON u.id = b.owner_id`

const updateSQL = `
WITH updated AS (
    UPDATE books
    SET title       = COALESCE($2, title),
        author      = COALESCE($3, author),
        genre       = COALESCE($4, genre),
        condition   = COALESCE($5, condition),
        location    = COALESCE($6, location),
        description = COALESCE($7, description),
        updated_at  = now()
    WHERE id = $1
    RETURNING *
)
SELECT
    b.id, b.owner_id, b.title, b.author, b.genre, b.condition,
    b.location, b.description, b.is_available, b.created_at, b.updated_at,
    u.username AS owner_username
FROM updated b
JOIN users u ON u.id = b.owner_id`

const deleteSQL = `
DELETE FROM books WHERE id = $1`

// reserveSQL is a conditional write: it only flips availability when the book
// is still available. Zero rows affected means another exchange won the race.
const reserveSQL = `
UPDATE books
SET is_available = FALSE, updated_at = now()
WHERE id = $1 AND is_available = TRUE`

const releaseSQL = `
UPDATE books
SET is_available = TRUE, updated_at = now()
WHERE id = $1 AND is_available = FALSE`

const genresSQL = `
SELECT DISTINCT genre FROM books ORDER BY genre`

const trendingGenresSQL = `
SELECT genre, COUNT(*) AS cnt
FROM books
GROUP BY genre
ORDER BY cnt DESC, genre
LIMIT $1`

// GetByID returns a book with its owner's username resolved.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b, err := scanBook(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, mapError(err, "book", id)
	}
	return b, nil
}

// Create inserts a new listing. New books are always available.
func (r *Repo) Create(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	created, err := scanBook(q.QueryRow(ctx, createSQL,
		b.OwnerID, b.Title, b.Author, b.Genre, b.Condition, b.Location, b.Description))
	if err != nil {
		return nil, mapError(err, "book", uuid.Nil)
	}
	return created, nil
}

// Update applies a partial update. nil fields stay unchanged.
// Ownership is enforced by the catalog service, not here.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, p domain.BookUpdateParams) (*domain.Book, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b, err := scanBook(q.QueryRow(ctx, updateSQL,
		id, p.Title, p.Author, p.Genre, p.Condition, p.Location, p.Description))
	if err != nil {
		return nil, mapError(err, "book", id)
	}
	return b, nil
}

// Delete removes a listing. Returns domain.ErrNotFound if 0 rows affected.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, deleteSQL, id)
	if err != nil {
		return mapError(err, "book", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Reserve atomically marks the book unavailable. When the book is already
// reserved it returns domain.ErrConflict; a concurrent accept loses here
// rather than double-booking.
func (r *Repo) Reserve(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, reserveSQL, id)
	if err != nil {
		return mapError(err, "book", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("book %s: %w", id, domain.ErrConflict)
	}
	return nil
}

// Release makes the book available again after a cancelled or completed
// exchange. Releasing an already-available book is a no-op.
func (r *Repo) Release(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, releaseSQL, id); err != nil {
		return mapError(err, "book", id)
	}
	return nil
}

// List returns a filtered, paginated page of the catalog plus the total
// count of books matching the filter.
func (r *Repo) List(ctx context.Context, f Filter) ([]domain.Book, int, error) {
	f.normalize()
	q := postgres.QuerierFromCtx(ctx, r.db)

	listQ := psql.Select(
		"b.id", "b.owner_id", "b.title", "b.author", "b.genre", "b.condition",
		"b.location", "b.description", "b.is_available", "b.created_at", "b.updated_at",
		"u.username AS owner_username",
	).
		From("books b").
		Join("users u ON u.id = b.owner_id").
		OrderBy("b.created_at DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))

	countQ := psql.Select("COUNT(*)").From("books b")

	for _, p := range f.predicates() {
		listQ = listQ.Where(p)
		countQ = countQ.Where(p)
	}

	listSQL, listArgs, err := listQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books, err := scanBooks(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	return books, total, nil
}

// Genres returns all distinct genres present in the catalog.
func (r *Repo) Genres(ctx context.Context) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, genresSQL)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	genres := []string{}
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}

	return genres, nil
}

// TrendingGenres returns the most-listed genres with their book counts.
func (r *Repo) TrendingGenres(ctx context.Context, limit int) ([]domain.GenreCount, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, trendingGenresSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("trending genres: %w", err)
	}
	defer rows.Close()

	counts := []domain.GenreCount{}
	for rows.Next() {
		var gc domain.GenreCount
		if err := rows.Scan(&gc.Genre, &gc.Count); err != nil {
			return nil, fmt.Errorf("scan genre count: %w", err)
		}
		counts = append(counts, gc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("trending genres: %w", err)
	}

	return counts, nil
}

func scanBook(row pgx.Row) (*domain.Book, error) {
	var b domain.Book
	err := row.Scan(
		&b.ID, &b.OwnerID, &b.Title, &b.Author, &b.Genre, &b.Condition,
		&b.Location, &b.Description, &b.IsAvailable, &b.CreatedAt, &b.UpdatedAt,
		&b.OwnerUsername,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBooks(rows pgx.Rows) ([]domain.Book, error) {
	books := []domain.Book{}
	for rows.Next() {
		var b domain.Book
		err := rows.Scan(
			&b.ID, &b.OwnerID, &b.Title, &b.Author, &b.Genre, &b.Condition,
			&b.Location, &b.Description, &b.IsAvailable, &b.CreatedAt, &b.UpdatedAt,
			&b.OwnerUsername,
		)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// mapError converts pgx/pgconn errors to domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
