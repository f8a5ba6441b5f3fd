// Package notification implements the notification feed repository using
// PostgreSQL. The feed is append-only.
package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	postgres "github.com/heartmarshall/bookswap-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookswap-backend/internal/domain"
)

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new notification repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const createSQL = `
INSERT INTO notifications (user_id, type, message, exchange_id)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, type, message, exchange_id, created_at`

const listByUserSQL = `
SELECT id, user_id, type, message, exchange_id, created_at
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`

// Create appends a notification to the user's feed.
func (r *Repo) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var created domain.Notification
	err := q.QueryRow(ctx, createSQL, n.UserID, n.Type, n.Message, n.ExchangeID).Scan(
		&created.ID, &created.UserID, &created.Type, &created.Message,
		&created.ExchangeID, &created.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err, "notification", uuid.Nil)
	}
	return &created, nil
}

// ListByUser returns the newest notifications for a user.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, listByUserSQL, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	feed := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.ExchangeID, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		feed = append(feed, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return feed, nil
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
