package user

import (
	"context"
	"fmt"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
	"github.com/heartmarshall/bookswap-backend/pkg/ctxutil"
)

// Notifications returns the caller's notification feed, newest first,
// capped at the configured feed limit.
func (s *Service) Notifications(ctx context.Context) ([]domain.Notification, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	feed, err := s.notifications.ListByUser(ctx, callerID, s.feedLimit)
	if err != nil {
		return nil, fmt.Errorf("user.Notifications: %w", err)
	}
	return feed, nil
}
