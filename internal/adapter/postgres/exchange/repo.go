// Package exchange implements the exchange repository using PostgreSQL.
// Listing queries denormalize the book and both participants in one round
// trip; the message thread is stored in exchange_messages with a
// server-assigned position.
package exchange

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

// Repo provides exchange persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new exchange repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const exchangeColumns = `
    e.id, e.book_id, e.owner_id, e.requested_by, e.status,
    e.delivery_method, e.duration_days, e.meetup_location, e.notes,
    e.start_date, e.end_date, e.created_at, e.updated_at`

const getByIDSQL = `
SELECT` + exchangeColumns + `
FROM exchanges e
WHERE e.id = $1`

const createSQL = `
INSERT INTO exchanges
    (book_id, owner_id, requested_by, status, delivery_method, duration_days, meetup_location, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING
    id, book_id, owner_id, requested_by, status,
    delivery_method, duration_days, meetup_location, notes,
    start_date, end_date, created_at, updated_at`

// updateStatusSQL is conditional on the current status so that a
// concurrent transition on the same exchange matches zero rows instead of
// overwriting a state another request just committed.
const updateStatusSQL = `
UPDATE exchanges
SET status     = $3,
    start_date = COALESCE($4, start_date),
    end_date   = COALESCE($5, end_date),
    updated_at = now()
WHERE id = $1 AND status = $2
RETURNING
    id, book_id, owner_id, requested_by, status,
    delivery_method, duration_days, meetup_location, notes,
    start_date, end_date, created_at, updated_at`

const detailsColumns = exchangeColumns + `,
    b.id, b.owner_id, b.title, b.author, b.genre, b.condition,
    b.location, b.description, b.is_available, b.created_at, b.updated_at,
    ou.username,
    ou.id, ou.username, ou.email,
    ru.id, ru.username, ru.email`

const getDetailsSQL = `
SELECT` + detailsColumns + `
FROM exchanges e
JOIN books b  ON b.id  = e.book_id
JOIN users ou ON ou.id = e.owner_id
JOIN users ru ON ru.id = e.requested_by
WHERE e.id = $1`

const listByParticipantSQL = `
SELECT` + detailsColumns + `
FROM exchanges e
JOIN books b  ON b.id  = e.book_id
JOIN users ou ON ou.id = e.owner_id
JOIN users ru ON ru.id = e.requested_by
WHERE e.owner_id = $1 OR e.requested_by = $1
ORDER BY e.created_at DESC`

// appendMessageSQL assigns position = MAX(position)+1 within the exchange.
// The UNIQUE (exchange_id, position) constraint turns a concurrent append
// race into a unique violation instead of silently reordering the thread.
const appendMessageSQL = `
INSERT INTO exchange_messages (exchange_id, sender_id, content, position)
SELECT $1, $2, $3, COALESCE(MAX(position), 0) + 1
FROM exchange_messages
WHERE exchange_id = $1
RETURNING id, exchange_id, sender_id, content, position, created_at`

const listMessagesSQL = `
SELECT id, exchange_id, sender_id, content, position, created_at
FROM exchange_messages
WHERE exchange_id = $1
ORDER BY position`

const listMessagesBatchSQL = `
SELECT id, exchange_id, sender_id, content, position, created_at
FROM exchange_messages
WHERE exchange_id = ANY($1::uuid[])
ORDER BY exchange_id, position`

// GetByID returns an exchange without denormalized associations.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exchange, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	e, err := scanExchange(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, mapError(err, "exchange", id)
	}
	return e, nil
}

// Create inserts a new exchange request.
func (r *Repo) Create(ctx context.Context, e *domain.Exchange) (*domain.Exchange, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	created, err := scanExchange(q.QueryRow(ctx, createSQL,
		e.BookID, e.OwnerID, e.RequestedBy, e.Status,
		e.Terms.DeliveryMethod, e.Terms.DurationDays, e.Terms.Location, e.Terms.Notes))
	if err != nil {
		return nil, mapError(err, "exchange", uuid.Nil)
	}
	return created, nil
}

// UpdateStatus sets the status and, when provided, the start/end dates.
// The write only applies while the exchange is still in the from status;
// zero matched rows means another request changed it since it was read and
// is surfaced as ErrConflict. Transition legality is enforced by the
// exchange service before calling.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.ExchangeStatus, startDate, endDate *time.Time) (*domain.Exchange, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	e, err := scanExchange(q.QueryRow(ctx, updateStatusSQL, id, from, to, startDate, endDate))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("exchange %s: no longer %s: %w", id, from, domain.ErrConflict)
	}
	if err != nil {
		return nil, mapError(err, "exchange", id)
	}
	return e, nil
}

// GetDetails returns the denormalized view of one exchange including its
// full message thread.
func (r *Repo) GetDetails(ctx context.Context, id uuid.UUID) (*domain.ExchangeDetails, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	d, err := scanDetails(q.QueryRow(ctx, getDetailsSQL, id))
	if err != nil {
		return nil, mapError(err, "exchange", id)
	}

	msgs, err := r.ListMessages(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Messages = msgs

	return d, nil
}

// ListByParticipant returns all exchanges where the user is owner or
// requester, newest first. Message threads are not loaded for listings.
func (r *Repo) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]domain.ExchangeDetails, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, listByParticipantSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list exchanges: %w", err)
	}
	defer rows.Close()

	details := []domain.ExchangeDetails{}
	for rows.Next() {
		d, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exchange: %w", err)
		}
		details = append(details, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list exchanges: %w", err)
	}

	return details, nil
}

// AppendMessage adds a message to the exchange thread with the next position.
func (r *Repo) AppendMessage(ctx context.Context, exchangeID, senderID uuid.UUID, content string) (*domain.Message, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var m domain.Message
	err := q.QueryRow(ctx, appendMessageSQL, exchangeID, senderID, content).Scan(
		&m.ID, &m.ExchangeID, &m.SenderID, &m.Content, &m.Position, &m.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err, "exchange", exchangeID)
	}
	return &m, nil
}

// ListMessages returns the exchange thread ordered by position.
func (r *Repo) ListMessages(ctx context.Context, exchangeID uuid.UUID) ([]domain.Message, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, listMessagesSQL, exchangeID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	msgs := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ExchangeID, &m.SenderID, &m.Content, &m.Position, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return msgs, nil
}

// ListMessagesByExchangeIDs returns message threads for multiple exchanges
// in one round trip, keyed by exchange ID.
func (r *Repo) ListMessagesByExchangeIDs(ctx context.Context, exchangeIDs []uuid.UUID) (map[uuid.UUID][]domain.Message, error) {
	if len(exchangeIDs) == 0 {
		return map[uuid.UUID][]domain.Message{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, listMessagesBatchSQL, exchangeIDs)
	if err != nil {
		return nil, fmt.Errorf("list messages batch: %w", err)
	}
	defer rows.Close()

	threads := map[uuid.UUID][]domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ExchangeID, &m.SenderID, &m.Content, &m.Position, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		threads[m.ExchangeID] = append(threads[m.ExchangeID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages batch: %w", err)
	}

	return threads, nil
}

func scanExchange(row pgx.Row) (*domain.Exchange, error) {
	var e domain.Exchange
	err := row.Scan(
		&e.ID, &e.BookID, &e.OwnerID, &e.RequestedBy, &e.Status,
		&e.Terms.DeliveryMethod, &e.Terms.DurationDays, &e.Terms.Location, &e.Terms.Notes,
		&e.StartDate, &e.EndDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanDetails(row pgx.Row) (*domain.ExchangeDetails, error) {
	var d domain.ExchangeDetails
	err := row.Scan(
		&d.ID, &d.BookID, &d.OwnerID, &d.RequestedBy, &d.Status,
		&d.Terms.DeliveryMethod, &d.Terms.DurationDays, &d.Terms.Location, &d.Terms.Notes,
		&d.StartDate, &d.EndDate, &d.CreatedAt, &d.UpdatedAt,
		&d.Book.ID, &d.Book.OwnerID, &d.Book.Title, &d.Book.Author, &d.Book.Genre, &d.Book.Condition,
		&d.Book.Location, &d.Book.Description, &d.Book.IsAvailable, &d.Book.CreatedAt, &d.Book.UpdatedAt,
		&d.Book.OwnerUsername,
		&d.Owner.ID, &d.Owner.Username, &d.Owner.Email,
		&d.Requester.ID, &d.Requester.Username, &d.Requester.Email,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
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
