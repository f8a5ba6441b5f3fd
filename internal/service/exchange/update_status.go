package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
	"github.com/heartmarshall/bookswap-backend/pkg/ctxutil"
)

// UpdateStatus applies a status transition to an exchange.
//
// Authorization: the caller must be a participant; accept and reject are
// additionally restricted to the book's owner. Transition legality follows
// domain.ExchangeStatus.CanTransitionTo.
//
// Accepting reserves the book and the status write atomically: the
// conditional availability flip and the exchange update run in one
// transaction, so losing the reservation race surfaces as ErrConflict and
// leaves the exchange pending. Cancelling an accepted exchange releases
// the book the same way. The status write itself is conditional on the
// status that was read, so a concurrent transition on the same exchange
// surfaces as ErrConflict instead of overwriting a terminal state. The
// counterparty is notified after the commit.
func (s *Service) UpdateStatus(ctx context.Context, exchangeID uuid.UUID, input UpdateStatusInput) (*domain.Exchange, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}
	next := domain.ExchangeStatus(input.Status)

	exch, err := s.exchanges.GetByID(ctx, exchangeID)
	if err != nil {
		return nil, fmt.Errorf("exchange.UpdateStatus: %w", err)
	}

	if !exch.IsParticipant(callerID) {
		return nil, domain.ErrForbidden
	}
	if (next == domain.ExchangeStatusAccepted || next == domain.ExchangeStatusRejected) && callerID != exch.OwnerID {
		return nil, domain.ErrForbidden
	}
	if !exch.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%s to %s: %w", exch.Status, next, domain.ErrInvalidTransition)
	}

	book, err := s.books.GetByID(ctx, exch.BookID)
	if err != nil {
		return nil, fmt.Errorf("exchange.UpdateStatus: %w", err)
	}

	var updated *domain.Exchange
	switch {
	case next == domain.ExchangeStatusAccepted:
		updated, err = s.accept(ctx, exch)
	case next == domain.ExchangeStatusCancelled && exch.Status == domain.ExchangeStatusAccepted:
		updated, err = s.cancelAccepted(ctx, exch)
	default:
		updated, err = s.exchanges.UpdateStatus(ctx, exch.ID, exch.Status, next, nil, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("exchange.UpdateStatus: %w", err)
	}

	s.log.InfoContext(ctx, "exchange status changed",
		"exchange_id", exch.ID,
		"from", exch.Status,
		"to", next,
		"by", callerID,
	)

	s.notifier.Dispatch(domain.Notification{
		UserID:     exch.Counterparty(callerID),
		Type:       domain.NotificationTypeForStatus(next),
		Message:    fmt.Sprintf("Your exchange request for %q has been %s", book.Title, next),
		ExchangeID: &exch.ID,
	})

	return updated, nil
}

// accept reserves the book and marks the exchange accepted in one
// transaction. The reservation is a conditional write; a concurrent accept
// on the same book makes it fail with ErrConflict and the whole transition
// rolls back.
func (s *Service) accept(ctx context.Context, exch *domain.Exchange) (*domain.Exchange, error) {
	start := time.Now().UTC()
	end := start.AddDate(0, 0, exch.Terms.DurationDays)

	var updated *domain.Exchange
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.books.Reserve(ctx, exch.BookID); err != nil {
			return err
		}

		var err error
		updated, err = s.exchanges.UpdateStatus(ctx, exch.ID, exch.Status, domain.ExchangeStatusAccepted, &start, &end)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// cancelAccepted cancels an accepted exchange and restores the book's
// availability in one transaction.
func (s *Service) cancelAccepted(ctx context.Context, exch *domain.Exchange) (*domain.Exchange, error) {
	var updated *domain.Exchange
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.books.Release(ctx, exch.BookID); err != nil {
			return err
		}

		var err error
		updated, err = s.exchanges.UpdateStatus(ctx, exch.ID, exch.Status, domain.ExchangeStatusCancelled, nil, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
