package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
	"github.com/heartmarshall/bookswap-backend/internal/service/catalog"
)

// catalogService defines the minimal interface needed by BookHandler.
type catalogService interface {
	CreateBook(ctx context.Context, input catalog.CreateBookInput) (*domain.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, input catalog.UpdateBookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, input catalog.SearchInput, ownerID *uuid.UUID) (*catalog.Page, error)
	Genres(ctx context.Context) ([]string, error)
	TrendingGenres(ctx context.Context) ([]domain.GenreCount, error)
}

// BookHandler serves catalog REST endpoints.
type BookHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewBookHandler creates a BookHandler.
func NewBookHandler(svc catalogService, logger *slog.Logger) *BookHandler {
	return &BookHandler{svc: svc, log: logger.With("handler", "books")}
}

type createBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	Condition   string `json:"condition"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type updateBookRequest struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Genre       *string `json:"genre"`
	Condition   *string `json:"condition"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

// searchRequest mirrors the query parameters for the body-form advanced
// search endpoint.
type searchRequest struct {
	Search       string `json:"search"`
	Genre        string `json:"genre"`
	Location     string `json:"location"`
	Availability string `json:"availability"`
	Page         int    `json:"page"`
	Limit        int    `json:"limit"`
}

// List handles GET /api/books with query-string filters.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := catalog.SearchInput{
		Search:       q.Get("search"),
		Genre:        q.Get("genre"),
		Location:     q.Get("location"),
		Availability: q.Get("availability"),
	}
	input.Page, _ = strconv.Atoi(q.Get("page"))
	input.Limit, _ = strconv.Atoi(q.Get("limit"))

	h.search(w, r, input)
}

// AdvancedSearch handles POST /api/books/advanced-search with the same
// filters in the request body.
func (h *BookHandler) AdvancedSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.search(w, r, catalog.SearchInput{
		Search:       req.Search,
		Genre:        req.Genre,
		Location:     req.Location,
		Availability: req.Availability,
		Page:         req.Page,
		Limit:        req.Limit,
	})
}

func (h *BookHandler) search(w http.ResponseWriter, r *http.Request, input catalog.SearchInput) {
	page, err := h.svc.Search(r.Context(), input, nil)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, bookPageResponse{
		Books:      toBookResponses(page.Books),
		Page:       page.Page,
		TotalPages: page.TotalPages,
		TotalBooks: page.TotalBooks,
	})
}

// Get handles GET /api/books/{id}.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	book, err := h.svc.GetBook(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookResponse(book))
}

// Create handles POST /api/books.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	book, err := h.svc.CreateBook(r.Context(), catalog.CreateBookInput{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Condition:   req.Condition,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBookResponse(book))
}

// Update handles PUT /api/books/{id}. Owner only.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var req updateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	book, err := h.svc.UpdateBook(r.Context(), id, catalog.UpdateBookInput{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Condition:   req.Condition,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookResponse(book))
}

// Delete handles DELETE /api/books/{id}. Owner only.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.svc.DeleteBook(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "book deleted"})
}

// Genres handles GET /api/books/genres.
func (h *BookHandler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.svc.Genres(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, genres)
}

// TrendingGenres handles GET /api/books/trending-genres.
func (h *BookHandler) TrendingGenres(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.TrendingGenres(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toGenreCountResponses(counts))
}
