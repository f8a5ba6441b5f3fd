package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
	"github.com/heartmarshall/bookswap-backend/internal/service/user"
)

// userService defines the minimal interface needed by UserHandler.
type userService interface {
	GetProfile(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, input user.UpdateProfileInput) (*domain.User, error)
	Notifications(ctx context.Context) ([]domain.Notification, error)
}

// myBooksService is the slice of the catalog the profile page needs.
type myBooksService interface {
	MyBooks(ctx context.Context) ([]domain.Book, error)
}

// UserHandler serves profile REST endpoints.
type UserHandler struct {
	svc   userService
	books myBooksService
	log   *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, books myBooksService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, books: books, log: logger.With("handler", "users")}
}

type updateProfileRequest struct {
	Username *string `json:"username"`
	Location *string `json:"location"`
}

// Profile handles GET /api/users/profile.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetProfile(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// UpdateProfile handles PUT /api/users/profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), user.UpdateProfileInput{
		Username: req.Username,
		Location: req.Location,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// MyBooks handles GET /api/users/my-books.
func (h *UserHandler) MyBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.MyBooks(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookResponses(books))
}

// Notifications handles GET /api/users/notifications.
func (h *UserHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	feed, err := h.svc.Notifications(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toNotificationResponses(feed))
}
