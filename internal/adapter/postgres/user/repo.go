// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	postgres "github.com/heartmarshall/bookswap-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookswap-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const userColumns = `
    id, username, email, password_hash, location,
    reset_token_hash, reset_token_expires_at, created_at, updated_at`

const getByIDSQL = `
SELECT` + userColumns + `
FROM users
WHERE id = $1`

const getByEmailSQL = `
SELECT` + userColumns + `
FROM users
WHERE email = $1`

const getByUsernameSQL = `
SELECT` + userColumns + `
FROM users
WHERE username = $1`

const getByResetTokenSQL = `
SELECT` + userColumns + `
FROM users
WHERE reset_token_hash = $1
  AND reset_token_expires_at > now()`

const createSQL = `
INSERT INTO users (username, email, password_hash, location)
VALUES ($1, $2, $3, $4)
RETURNING` + userColumns

const updateProfileSQL = `
UPDATE users
SET username = COALESCE($2, username),
    location = COALESCE($3, location),
    updated_at = now()
WHERE id = $1
RETURNING` + userColumns

const setResetTokenSQL = `
UPDATE users
SET reset_token_hash = $2,
    reset_token_expires_at = $3,
    updated_at = now()
WHERE id = $1`

const updatePasswordSQL = `
UPDATE users
SET password_hash = $2,
    reset_token_hash = NULL,
    reset_token_expires_at = NULL,
    updated_at = now()
WHERE id = $1`

const existsByEmailSQL = `
SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, mapError(err, "user", id)
	}
	return u, nil
}

// GetByEmail returns a user by email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, getByEmailSQL, email))
	if err != nil {
		return nil, mapError(err, "user", uuid.Nil)
	}
	return u, nil
}

// GetByUsername returns a user by username.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, getByUsernameSQL, username))
	if err != nil {
		return nil, mapError(err, "user", uuid.Nil)
	}
	return u, nil
}

// GetByResetToken returns the user whose unexpired reset token matches hash.
// Expired tokens behave as if absent.
func (r *Repo) GetByResetToken(ctx context.Context, hash string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, getByResetTokenSQL, hash))
	if err != nil {
		return nil, mapError(err, "user", uuid.Nil)
	}
	return u, nil
}

// Create inserts a new user and returns the persisted row.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	created, err := scanUser(q.QueryRow(ctx, createSQL,
		u.Username, u.Email, u.PasswordHash, u.Location))
	if err != nil {
		return nil, mapError(err, "user", uuid.Nil)
	}
	return created, nil
}

// UpdateProfile modifies username and location. nil fields stay unchanged.
func (r *Repo) UpdateProfile(ctx context.Context, id uuid.UUID, username, location *string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, updateProfileSQL, id, username, location))
	if err != nil {
		return nil, mapError(err, "user", id)
	}
	return u, nil
}

// SetResetToken stores a password-reset token hash with its expiry.
// Passing an earlier token's hash overwrites it: only one reset is in
// flight per user.
func (r *Repo) SetResetToken(ctx context.Context, id uuid.UUID, hash string, expiresAt time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, setResetTokenSQL, id, hash, expiresAt)
	if err != nil {
		return mapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// UpdatePassword replaces the password hash and clears any reset token.
func (r *Repo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, updatePasswordSQL, id, passwordHash)
	if err != nil {
		return mapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ExistsByEmail reports whether a user with the given email is registered.
func (r *Repo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, existsByEmailSQL, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Location,
		&u.ResetTokenHash, &u.ResetTokenExpiresAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
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
