package exchange

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
	"github.com/heartmarshall/bookswap-backend/pkg/ctxutil"
)

// PostMessage appends a message to an exchange thread. Only the two
// participants may post; the thread stays writable in terminal states so
// the parties can coordinate handover after completion.
func (s *Service) PostMessage(ctx context.Context, exchangeID uuid.UUID, input PostMessageInput) (*domain.Message, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	exch, err := s.exchanges.GetByID(ctx, exchangeID)
	if err != nil {
		return nil, fmt.Errorf("exchange.PostMessage: %w", err)
	}
	if !exch.IsParticipant(callerID) {
		return nil, domain.ErrForbidden
	}

	msg, err := s.exchanges.AppendMessage(ctx, exch.ID, callerID, strings.TrimSpace(input.Content))
	if err != nil {
		return nil, fmt.Errorf("exchange.PostMessage: %w", err)
	}

	return msg, nil
}
