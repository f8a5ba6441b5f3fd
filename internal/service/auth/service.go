// Package auth implements registration, login and the password-reset flow.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookswap-backend/internal/config"
	"github.com/heartmarshall/bookswap-backend/internal/domain"
)

// userRepo defines the user repository interface needed by the auth service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByResetToken(ctx context.Context, hash string) (*domain.User, error)
	SetResetToken(ctx context.Context, id uuid.UUID, hash string, expiresAt time.Time) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// jwtManager defines the token management interface needed by the auth service.
type jwtManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	GenerateResetToken() (raw string, hash string, err error)
	HashToken(raw string) string
}

// Service implements auth operations.
type Service struct {
	log   *slog.Logger
	users userRepo
	jwt   jwtManager
	cfg   config.AuthConfig
}

// NewService creates a new auth service instance.
func NewService(logger *slog.Logger, users userRepo, jwt jwtManager, cfg config.AuthConfig) *Service {
	return &Service{
		log:   logger.With("service", "auth"),
		users: users,
		jwt:   jwt,
		cfg:   cfg,
	}
}
