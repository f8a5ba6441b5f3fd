package rest

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookswap-backend/internal/config"
	"github.com/heartmarshall/bookswap-backend/internal/transport/middleware"
)

// tokenValidator checks a bearer token and returns the subject user ID.
// auth.JWTManager satisfies it.
type tokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, error)
}

// RouterDeps bundles everything the HTTP router needs.
type RouterDeps struct {
	Logger    *slog.Logger
	CORS      config.CORSConfig
	Tokens    tokenValidator
	Limiter   *middleware.RateLimiter
	AuthLimit int // requests per minute per IP on the auth endpoints

	Auth      *AuthHandler
	Books     *BookHandler
	Exchanges *ExchangeHandler
	Users     *UserHandler
	Health    *HealthHandler
}

// NewRouter builds the full route table. All /api routes run behind the
// common middleware stack; identity-requiring routes are additionally
// wrapped in middleware.Require.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	common := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(deps.Logger),
		middleware.Logger(deps.Logger),
		middleware.CORS(deps.CORS),
		middleware.Auth(deps.Tokens),
	)
	// Credential endpoints get per-IP rate limiting on top of the common
	// stack.
	limited := middleware.Chain(common, deps.Limiter.Limit(deps.AuthLimit))

	open := func(h http.HandlerFunc) http.Handler { return common(h) }
	protected := func(h http.HandlerFunc) http.Handler { return common(middleware.Require(h)) }
	throttled := func(h http.HandlerFunc) http.Handler { return limited(h) }

	// Probes stay outside the middleware stack.
	mux.HandleFunc("GET /live", deps.Health.Live)
	mux.HandleFunc("GET /ready", deps.Health.Ready)
	mux.HandleFunc("GET /health", deps.Health.Health)

	mux.Handle("POST /api/auth/register", throttled(deps.Auth.Register))
	mux.Handle("POST /api/auth/login", throttled(deps.Auth.Login))
	mux.Handle("POST /api/auth/forgot-password", throttled(deps.Auth.ForgotPassword))
	mux.Handle("POST /api/auth/reset-password/{token}", throttled(deps.Auth.ResetPassword))
	mux.Handle("GET /api/auth/verify-reset-token/{token}", open(deps.Auth.VerifyResetToken))
	mux.Handle("GET /api/auth/check-email/{email}", open(deps.Auth.CheckEmail))

	mux.Handle("GET /api/books", protected(deps.Books.List))
	mux.Handle("GET /api/books/search", protected(deps.Books.List))
	mux.Handle("POST /api/books/advanced-search", protected(deps.Books.AdvancedSearch))
	mux.Handle("GET /api/books/genres", open(deps.Books.Genres))
	mux.Handle("GET /api/books/trending-genres", open(deps.Books.TrendingGenres))
	mux.Handle("GET /api/books/{id}", open(deps.Books.Get))
	mux.Handle("POST /api/books", protected(deps.Books.Create))
	mux.Handle("PUT /api/books/{id}", protected(deps.Books.Update))
	mux.Handle("DELETE /api/books/{id}", protected(deps.Books.Delete))

	mux.Handle("GET /api/users/profile", protected(deps.Users.Profile))
	mux.Handle("PUT /api/users/profile", protected(deps.Users.UpdateProfile))
	mux.Handle("GET /api/users/my-books", protected(deps.Users.MyBooks))
	mux.Handle("GET /api/users/notifications", protected(deps.Users.Notifications))

	mux.Handle("GET /api/exchanges/my-exchanges", protected(deps.Exchanges.MyExchanges))
	mux.Handle("POST /api/exchanges/request/{bookId}", protected(deps.Exchanges.CreateRequest))
	mux.Handle("GET /api/exchanges/{id}", protected(deps.Exchanges.Get))
	mux.Handle("PUT /api/exchanges/{id}/status", protected(deps.Exchanges.UpdateStatus))
	mux.Handle("POST /api/exchanges/{id}/messages", protected(deps.Exchanges.PostMessage))

	// CORS preflight for every API route.
	mux.Handle("OPTIONS /api/", common(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	return mux
}
