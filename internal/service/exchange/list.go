package exchange

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
	"github.com/heartmarshall/bookswap-backend/pkg/ctxutil"
)

// MyExchanges returns every exchange the caller participates in, newest
// first, with message threads attached. Threads are loaded in one batch
// query rather than per exchange.
func (s *Service) MyExchanges(ctx context.Context) ([]domain.ExchangeDetails, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	details, err := s.exchanges.ListByParticipant(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("exchange.MyExchanges: %w", err)
	}
	if len(details) == 0 {
		return details, nil
	}

	ids := make([]uuid.UUID, len(details))
	for i := range details {
		ids[i] = details[i].ID
	}

	threads, err := s.exchanges.ListMessagesByExchangeIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("exchange.MyExchanges: %w", err)
	}
	for i := range details {
		if msgs, ok := threads[details[i].ID]; ok {
			details[i].Messages = msgs
		} else {
			details[i].Messages = []domain.Message{}
		}
	}

	return details, nil
}

// GetExchange returns the denormalized view of one exchange. Only the two
// participants may read it.
func (s *Service) GetExchange(ctx context.Context, id uuid.UUID) (*domain.ExchangeDetails, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	details, err := s.exchanges.GetDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("exchange.GetExchange: %w", err)
	}
	if !details.IsParticipant(callerID) {
		return nil, domain.ErrForbidden
	}

	return details, nil
}
