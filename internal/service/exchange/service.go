// Package exchange implements the exchange lifecycle engine: request
// creation, the status state machine with its authorization rules, the
// message thread, and counterparty notifications.
package exchange

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
)

// exchangeRepo defines the exchange repository interface needed by the
// lifecycle engine.
type exchangeRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exchange, error)
	Create(ctx context.Context, e *domain.Exchange) (*domain.Exchange, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.ExchangeStatus, startDate, endDate *time.Time) (*domain.Exchange, error)
	GetDetails(ctx context.Context, id uuid.UUID) (*domain.ExchangeDetails, error)
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]domain.ExchangeDetails, error)
	AppendMessage(ctx context.Context, exchangeID, senderID uuid.UUID, content string) (*domain.Message, error)
	ListMessagesByExchangeIDs(ctx context.Context, exchangeIDs []uuid.UUID) (map[uuid.UUID][]domain.Message, error)
}

// bookRepo defines the catalog operations the engine uses: precondition
// reads plus the conditional availability flip that arbitrates concurrent
// accepts.
type bookRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	Reserve(ctx context.Context, id uuid.UUID) error
	Release(ctx context.Context, id uuid.UUID) error
}

// txManager runs a function within a database transaction.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// notifier dispatches a notification in the background. Called only after
// the primary write has committed.
type notifier interface {
	Dispatch(n domain.Notification)
}

// Service implements exchange lifecycle operations.
type Service struct {
	log       *slog.Logger
	exchanges exchangeRepo
	books     bookRepo
	tx        txManager
	notifier  notifier
}

// NewService creates a new exchange service instance.
func NewService(logger *slog.Logger, exchanges exchangeRepo, books bookRepo, tx txManager, notifier notifier) *Service {
	return &Service{
		log:       logger.With("service", "exchange"),
		exchanges: exchanges,
		books:     books,
		tx:        tx,
		notifier:  notifier,
	}
}
