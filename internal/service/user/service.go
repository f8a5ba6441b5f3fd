// Package user implements profile reads/updates and the notification feed.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
)

// userRepo defines the user repository interface needed by the user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, username, location *string) (*domain.User, error)
}

// notificationRepo defines the notification feed reads.
type notificationRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
}

// Service implements user profile operations.
type Service struct {
	log           *slog.Logger
	users         userRepo
	notifications notificationRepo
	feedLimit     int
}

// NewService creates a new user service instance. feedLimit caps the
// notification feed size per request.
func NewService(logger *slog.Logger, users userRepo, notifications notificationRepo, feedLimit int) *Service {
	return &Service{
		log:           logger.With("service", "user"),
		users:         users,
		notifications: notifications,
		feedLimit:     feedLimit,
	}
}
