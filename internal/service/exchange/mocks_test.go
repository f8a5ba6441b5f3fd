package exchange

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
)

// Hand-rolled mocks in moq style: nil funcs panic, write calls are recorded.

var (
	_ exchangeRepo = &exchangeRepoMock{}
	_ bookRepo     = &bookRepoMock{}
	_ txManager    = &txManagerMock{}
	_ notifier     = &notifierMock{}
)

type exchangeRepoMock struct {
	GetByIDFunc                   func(ctx context.Context, id uuid.UUID) (*domain.Exchange, error)
	CreateFunc                    func(ctx context.Context, e *domain.Exchange) (*domain.Exchange, error)
	UpdateStatusFunc              func(ctx context.Context, id uuid.UUID, from, to domain.ExchangeStatus, startDate, endDate *time.Time) (*domain.Exchange, error)
	GetDetailsFunc                func(ctx context.Context, id uuid.UUID) (*domain.ExchangeDetails, error)
	ListByParticipantFunc         func(ctx context.Context, userID uuid.UUID) ([]domain.ExchangeDetails, error)
	AppendMessageFunc             func(ctx context.Context, exchangeID, senderID uuid.UUID, content string) (*domain.Message, error)
	ListMessagesByExchangeIDsFunc func(ctx context.Context, exchangeIDs []uuid.UUID) (map[uuid.UUID][]domain.Message, error)

	mu    sync.Mutex
	calls struct {
		Create       []*domain.Exchange
		UpdateStatus []struct {
			ID        uuid.UUID
			From      domain.ExchangeStatus
			To        domain.ExchangeStatus
			StartDate *time.Time
			EndDate   *time.Time
		}
		AppendMessage []struct {
			ExchangeID uuid.UUID
			SenderID   uuid.UUID
			Content    string
		}
	}
}

func (m *exchangeRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exchange, error) {
	if m.GetByIDFunc == nil {
		panic("exchangeRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *exchangeRepoMock) Create(ctx context.Context, e *domain.Exchange) (*domain.Exchange, error) {
	if m.CreateFunc == nil {
		panic("exchangeRepoMock.CreateFunc is nil")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, e)
	m.mu.Unlock()
	return m.CreateFunc(ctx, e)
}

func (m *exchangeRepoMock) CreateCalls() []*domain.Exchange {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Create
}

func (m *exchangeRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.ExchangeStatus, startDate, endDate *time.Time) (*domain.Exchange, error) {
	if m.UpdateStatusFunc == nil {
		panic("exchangeRepoMock.UpdateStatusFunc is nil")
	}
	m.mu.Lock()
	m.calls.UpdateStatus = append(m.calls.UpdateStatus, struct {
		ID        uuid.UUID
		From      domain.ExchangeStatus
		To        domain.ExchangeStatus
		StartDate *time.Time
		EndDate   *time.Time
	}{id, from, to, startDate, endDate})
	m.mu.Unlock()
	return m.UpdateStatusFunc(ctx, id, from, to, startDate, endDate)
}

func (m *exchangeRepoMock) UpdateStatusCalls() []struct {
	ID        uuid.UUID
	From      domain.ExchangeStatus
	To        domain.ExchangeStatus
	StartDate *time.Time
	EndDate   *time.Time
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.UpdateStatus
}

func (m *exchangeRepoMock) GetDetails(ctx context.Context, id uuid.UUID) (*domain.ExchangeDetails, error) {
	if m.GetDetailsFunc == nil {
		panic("exchangeRepoMock.GetDetailsFunc is nil")
	}
	return m.GetDetailsFunc(ctx, id)
}

func (m *exchangeRepoMock) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]domain.ExchangeDetails, error) {
	if m.ListByParticipantFunc == nil {
		panic("exchangeRepoMock.ListByParticipantFunc is nil")
	}
	return m.ListByParticipantFunc(ctx, userID)
}

func (m *exchangeRepoMock) AppendMessage(ctx context.Context, exchangeID, senderID uuid.UUID, content string) (*domain.Message, error) {
	if m.AppendMessageFunc == nil {
		panic("exchangeRepoMock.AppendMessageFunc is nil")
	}
	m.mu.Lock()
	m.calls.AppendMessage = append(m.calls.AppendMessage, struct {
		ExchangeID uuid.UUID
		SenderID   uuid.UUID
		Content    string
	}{exchangeID, senderID, content})
	m.mu.Unlock()
	return m.AppendMessageFunc(ctx, exchangeID, senderID, content)
}

func (m *exchangeRepoMock) AppendMessageCalls() []struct {
	ExchangeID uuid.UUID
	SenderID   uuid.UUID
	Content    string
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.AppendMessage
}

func (m *exchangeRepoMock) ListMessagesByExchangeIDs(ctx context.Context, exchangeIDs []uuid.UUID) (map[uuid.UUID][]domain.Message, error) {
	if m.ListMessagesByExchangeIDsFunc == nil {
		panic("exchangeRepoMock.ListMessagesByExchangeIDsFunc is nil")
	}
	return m.ListMessagesByExchangeIDsFunc(ctx, exchangeIDs)
}

type bookRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	ReserveFunc func(ctx context.Context, id uuid.UUID) error
	ReleaseFunc func(ctx context.Context, id uuid.UUID) error

	mu    sync.Mutex
	calls struct {
		Reserve []uuid.UUID
		Release []uuid.UUID
	}
}

func (m *bookRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	if m.GetByIDFunc == nil {
		panic("bookRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *bookRepoMock) Reserve(ctx context.Context, id uuid.UUID) error {
	if m.ReserveFunc == nil {
		panic("bookRepoMock.ReserveFunc is nil")
	}
	m.mu.Lock()
	m.calls.Reserve = append(m.calls.Reserve, id)
	m.mu.Unlock()
	return m.ReserveFunc(ctx, id)
}

func (m *bookRepoMock) ReserveCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Reserve
}

func (m *bookRepoMock) Release(ctx context.Context, id uuid.UUID) error {
	if m.ReleaseFunc == nil {
		panic("bookRepoMock.ReleaseFunc is nil")
	}
	m.mu.Lock()
	m.calls.Release = append(m.calls.Release, id)
	m.mu.Unlock()
	return m.ReleaseFunc(ctx, id)
}

func (m *bookRepoMock) ReleaseCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Release
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	mu       sync.Mutex
	runCount int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc is nil")
	}
	m.mu.Lock()
	m.runCount++
	m.mu.Unlock()
	return m.RunInTxFunc(ctx, fn)
}

func (m *txManagerMock) RunInTxCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runCount
}

// passthroughTx runs the callback directly, standing in for a committed
// transaction.
func passthroughTx() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

type notifierMock struct {
	mu            sync.Mutex
	notifications []domain.Notification
}

func (m *notifierMock) Dispatch(n domain.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, n)
}

func (m *notifierMock) DispatchCalls() []domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifications
}
