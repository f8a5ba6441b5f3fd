package exchange

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
	"github.com/heartmarshall/bookswap-backend/pkg/ctxutil"
)

// CreateRequest opens a pending exchange for a book. Preconditions are
// checked in order: the book must exist, be available, and not belong to
// the caller. The book's owner is notified after the request is persisted.
func (s *Service) CreateRequest(ctx context.Context, bookID uuid.UUID, input CreateRequestInput) (*domain.Exchange, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("exchange.CreateRequest: %w", err)
	}
	if !book.IsAvailable {
		return nil, domain.ErrBookUnavailable
	}
	if book.OwnerID == callerID {
		return nil, domain.ErrSelfExchange
	}

	created, err := s.exchanges.Create(ctx, &domain.Exchange{
		BookID:      book.ID,
		OwnerID:     book.OwnerID,
		RequestedBy: callerID,
		Status:      domain.ExchangeStatusPending,
		Terms:       input.terms(),
	})
	if err != nil {
		return nil, fmt.Errorf("exchange.CreateRequest: %w", err)
	}

	s.log.InfoContext(ctx, "exchange requested",
		"exchange_id", created.ID,
		"book_id", book.ID,
		"requested_by", callerID,
	)

	s.notifier.Dispatch(domain.Notification{
		UserID:     book.OwnerID,
		Type:       domain.NotificationNewRequest,
		Message:    fmt.Sprintf("You have a new exchange request for %q", book.Title),
		ExchangeID: &created.ID,
	})

	return created, nil
}
