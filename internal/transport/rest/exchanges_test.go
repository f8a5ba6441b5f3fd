package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
	"github.com/heartmarshall/bookswap-backend/internal/service/exchange"
)

type exchangeServiceMock struct {
	CreateRequestFunc func(ctx context.Context, bookID uuid.UUID, input exchange.CreateRequestInput) (*domain.Exchange, error)
	UpdateStatusFunc  func(ctx context.Context, exchangeID uuid.UUID, input exchange.UpdateStatusInput) (*domain.Exchange, error)
	PostMessageFunc   func(ctx context.Context, exchangeID uuid.UUID, input exchange.PostMessageInput) (*domain.Message, error)
	MyExchangesFunc   func(ctx context.Context) ([]domain.ExchangeDetails, error)
	GetExchangeFunc   func(ctx context.Context, id uuid.UUID) (*domain.ExchangeDetails, error)
}

func (m *exchangeServiceMock) CreateRequest(ctx context.Context, bookID uuid.UUID, input exchange.CreateRequestInput) (*domain.Exchange, error) {
	return m.CreateRequestFunc(ctx, bookID, input)
}

func (m *exchangeServiceMock) UpdateStatus(ctx context.Context, exchangeID uuid.UUID, input exchange.UpdateStatusInput) (*domain.Exchange, error) {
	return m.UpdateStatusFunc(ctx, exchangeID, input)
}

func (m *exchangeServiceMock) PostMessage(ctx context.Context, exchangeID uuid.UUID, input exchange.PostMessageInput) (*domain.Message, error) {
	return m.PostMessageFunc(ctx, exchangeID, input)
}

func (m *exchangeServiceMock) MyExchanges(ctx context.Context) ([]domain.ExchangeDetails, error) {
	return m.MyExchangesFunc(ctx)
}

func (m *exchangeServiceMock) GetExchange(ctx context.Context, id uuid.UUID) (*domain.ExchangeDetails, error) {
	return m.GetExchangeFunc(ctx, id)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestExchangeCreateRequest_Created(t *testing.T) {
	t.Parallel()

	bookID := uuid.New()
	svc := &exchangeServiceMock{
		CreateRequestFunc: func(ctx context.Context, gotBookID uuid.UUID, input exchange.CreateRequestInput) (*domain.Exchange, error) {
			if gotBookID != bookID {
				t.Errorf("bookID = %v, want %v", gotBookID, bookID)
			}
			if input.DeliveryMethod != "meetup" || input.DurationDays != 14 {
				t.Errorf("input = %+v", input)
			}
			return &domain.Exchange{
				ID:     uuid.New(),
				BookID: gotBookID,
				Status: domain.ExchangeStatusPending,
				Terms: domain.ExchangeTerms{
					DeliveryMethod: domain.DeliveryMethodMeetup,
					DurationDays:   input.DurationDays,
				},
			}, nil
		},
	}
	h := NewExchangeHandler(svc, testLogger())

	payload := bytes.NewBufferString(`{"deliveryMethod":"meetup","duration":14}`)
	req := httptest.NewRequest(http.MethodPost, "/api/exchanges/request/"+bookID.String(), payload)
	req.SetPathValue("bookId", bookID.String())
	rec := httptest.NewRecorder()

	h.CreateRequest(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "pending" {
		t.Errorf("status field = %v", body["status"])
	}
	terms, _ := body["terms"].(map[string]any)
	if terms["duration"] != float64(14) {
		t.Errorf("terms = %v", terms)
	}
}

func TestExchangeCreateRequest_BadBookID(t *testing.T) {
	t.Parallel()

	h := NewExchangeHandler(&exchangeServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/exchanges/request/not-a-uuid", bytes.NewBufferString(`{}`))
	req.SetPathValue("bookId", "not-a-uuid")
	rec := httptest.NewRecorder()

	h.CreateRequest(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestExchangeUpdateStatus_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"not a participant", domain.ErrForbidden, http.StatusForbidden},
		{"invalid transition", domain.ErrInvalidTransition, http.StatusBadRequest},
		{"lost reservation race", domain.ErrConflict, http.StatusConflict},
		{"unauthenticated", domain.ErrUnauthorized, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &exchangeServiceMock{
				UpdateStatusFunc: func(ctx context.Context, exchangeID uuid.UUID, input exchange.UpdateStatusInput) (*domain.Exchange, error) {
					return nil, tt.err
				},
			}
			h := NewExchangeHandler(svc, testLogger())

			id := uuid.New()
			req := httptest.NewRequest(http.MethodPut, "/api/exchanges/"+id.String()+"/status",
				bytes.NewBufferString(`{"status":"accepted"}`))
			req.SetPathValue("id", id.String())
			rec := httptest.NewRecorder()

			h.UpdateStatus(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if _, ok := decodeBody(t, rec)["message"]; !ok {
				t.Error("error body must carry a message field")
			}
		})
	}
}

func TestExchangePostMessage_Created(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := &exchangeServiceMock{
		PostMessageFunc: func(ctx context.Context, exchangeID uuid.UUID, input exchange.PostMessageInput) (*domain.Message, error) {
			return &domain.Message{
				ID:         uuid.New(),
				ExchangeID: exchangeID,
				SenderID:   uuid.New(),
				Content:    input.Content,
				Position:   3,
			}, nil
		},
	}
	h := NewExchangeHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/exchanges/"+id.String()+"/messages",
		bytes.NewBufferString(`{"content":"deal"}`))
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()

	h.PostMessage(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["content"] != "deal" || body["position"] != float64(3) {
		t.Errorf("body = %v", body)
	}
}

func TestExchangeMyExchanges_EmptyIsArray(t *testing.T) {
	t.Parallel()

	svc := &exchangeServiceMock{
		MyExchangesFunc: func(ctx context.Context) ([]domain.ExchangeDetails, error) {
			return []domain.ExchangeDetails{}, nil
		},
	}
	h := NewExchangeHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/exchanges/my-exchanges", nil)
	rec := httptest.NewRecorder()

	h.MyExchanges(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want empty JSON array", got)
	}
}
