package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
	"github.com/heartmarshall/bookswap-backend/internal/service/exchange"
)

// exchangeService defines the minimal interface needed by ExchangeHandler.
type exchangeService interface {
	CreateRequest(ctx context.Context, bookID uuid.UUID, input exchange.CreateRequestInput) (*domain.Exchange, error)
	UpdateStatus(ctx context.Context, exchangeID uuid.UUID, input exchange.UpdateStatusInput) (*domain.Exchange, error)
	PostMessage(ctx context.Context, exchangeID uuid.UUID, input exchange.PostMessageInput) (*domain.Message, error)
	MyExchanges(ctx context.Context) ([]domain.ExchangeDetails, error)
	GetExchange(ctx context.Context, id uuid.UUID) (*domain.ExchangeDetails, error)
}

// ExchangeHandler serves exchange REST endpoints.
type ExchangeHandler struct {
	svc exchangeService
	log *slog.Logger
}

// NewExchangeHandler creates an ExchangeHandler.
func NewExchangeHandler(svc exchangeService, logger *slog.Logger) *ExchangeHandler {
	return &ExchangeHandler{svc: svc, log: logger.With("handler", "exchanges")}
}

type createRequestRequest struct {
	DeliveryMethod string  `json:"deliveryMethod"`
	Duration       int     `json:"duration"`
	Location       *string `json:"location"`
	Notes          *string `json:"notes"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type postMessageRequest struct {
	Content string `json:"content"`
}

// MyExchanges handles GET /api/exchanges/my-exchanges.
func (h *ExchangeHandler) MyExchanges(w http.ResponseWriter, r *http.Request) {
	details, err := h.svc.MyExchanges(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toExchangeDetailsResponses(details))
}

// Get handles GET /api/exchanges/{id}. Participants only.
func (h *ExchangeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	details, err := h.svc.GetExchange(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toExchangeDetailsResponse(details))
}

// CreateRequest handles POST /api/exchanges/request/{bookId}.
func (h *ExchangeHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	bookID, err := uuid.Parse(r.PathValue("bookId"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var req createRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateRequest(r.Context(), bookID, exchange.CreateRequestInput{
		DeliveryMethod: req.DeliveryMethod,
		DurationDays:   req.Duration,
		Location:       req.Location,
		Notes:          req.Notes,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toExchangeResponse(created))
}

// UpdateStatus handles PUT /api/exchanges/{id}/status.
func (h *ExchangeHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateStatus(r.Context(), id, exchange.UpdateStatusInput{Status: req.Status})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toExchangeResponse(updated))
}

// PostMessage handles POST /api/exchanges/{id}/messages.
func (h *ExchangeHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.svc.PostMessage(r.Context(), id, exchange.PostMessageInput{Content: req.Content})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMessageResponse(msg))
}
