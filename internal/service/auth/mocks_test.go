package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc      func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc          func(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByResetTokenFunc func(ctx context.Context, hash string) (*domain.User, error)
	SetResetTokenFunc   func(ctx context.Context, id uuid.UUID, hash string, expiresAt time.Time) error
	UpdatePasswordFunc  func(ctx context.Context, id uuid.UUID, passwordHash string) error
	ExistsByEmailFunc   func(ctx context.Context, email string) (bool, error)

	mu    sync.Mutex
	calls struct {
		Create         []domain.User
		SetResetToken  []string
		UpdatePassword []string
	}
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc == nil {
		panic("userRepoMock.GetByEmailFunc: method is nil but userRepo.GetByEmail was just called")
	}
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, *user)
	m.mu.Unlock()
	return m.CreateFunc(ctx, user)
}

func (m *userRepoMock) CreateCalls() []domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Create
}

func (m *userRepoMock) GetByResetToken(ctx context.Context, hash string) (*domain.User, error) {
	if m.GetByResetTokenFunc == nil {
		panic("userRepoMock.GetByResetTokenFunc: method is nil but userRepo.GetByResetToken was just called")
	}
	return m.GetByResetTokenFunc(ctx, hash)
}

func (m *userRepoMock) SetResetToken(ctx context.Context, id uuid.UUID, hash string, expiresAt time.Time) error {
	if m.SetResetTokenFunc == nil {
		panic("userRepoMock.SetResetTokenFunc: method is nil but userRepo.SetResetToken was just called")
	}
	m.mu.Lock()
	m.calls.SetResetToken = append(m.calls.SetResetToken, hash)
	m.mu.Unlock()
	return m.SetResetTokenFunc(ctx, id, hash, expiresAt)
}

func (m *userRepoMock) SetResetTokenCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.SetResetToken
}

func (m *userRepoMock) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if m.UpdatePasswordFunc == nil {
		panic("userRepoMock.UpdatePasswordFunc: method is nil but userRepo.UpdatePassword was just called")
	}
	m.mu.Lock()
	m.calls.UpdatePassword = append(m.calls.UpdatePassword, passwordHash)
	m.mu.Unlock()
	return m.UpdatePasswordFunc(ctx, id, passwordHash)
}

func (m *userRepoMock) UpdatePasswordCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.UpdatePassword
}

func (m *userRepoMock) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc == nil {
		panic("userRepoMock.ExistsByEmailFunc: method is nil but userRepo.ExistsByEmail was just called")
	}
	return m.ExistsByEmailFunc(ctx, email)
}

var _ jwtManager = &jwtManagerMock{}

type jwtManagerMock struct {
	GenerateAccessTokenFunc func(userID uuid.UUID) (string, error)
	GenerateResetTokenFunc  func() (string, string, error)
	HashTokenFunc           func(raw string) string
}

func (m *jwtManagerMock) GenerateAccessToken(userID uuid.UUID) (string, error) {
	if m.GenerateAccessTokenFunc == nil {
		panic("jwtManagerMock.GenerateAccessTokenFunc: method is nil but jwtManager.GenerateAccessToken was just called")
	}
	return m.GenerateAccessTokenFunc(userID)
}

func (m *jwtManagerMock) GenerateResetToken() (string, string, error) {
	if m.GenerateResetTokenFunc == nil {
		panic("jwtManagerMock.GenerateResetTokenFunc: method is nil but jwtManager.GenerateResetToken was just called")
	}
	return m.GenerateResetTokenFunc()
}

func (m *jwtManagerMock) HashToken(raw string) string {
	if m.HashTokenFunc == nil {
		panic("jwtManagerMock.HashTokenFunc: method is nil but jwtManager.HashToken was just called")
	}
	return m.HashTokenFunc(raw)
}
