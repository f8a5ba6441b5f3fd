// Package app wires configuration, storage, services and transport together
// and runs the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/bookswap-backend/internal/adapter/postgres"
	bookrepo "github.com/heartmarshall/bookswap-backend/internal/adapter/postgres/book"
	exchangerepo "github.com/heartmarshall/bookswap-backend/internal/adapter/postgres/exchange"
	notificationrepo "github.com/heartmarshall/bookswap-backend/internal/adapter/postgres/notification"
	userrepo "github.com/heartmarshall/bookswap-backend/internal/adapter/postgres/user"
	authpkg "github.com/heartmarshall/bookswap-backend/internal/auth"
	"github.com/heartmarshall/bookswap-backend/internal/config"
	"github.com/heartmarshall/bookswap-backend/internal/notify"
	authsvc "github.com/heartmarshall/bookswap-backend/internal/service/auth"
	catalogsvc "github.com/heartmarshall/bookswap-backend/internal/service/catalog"
	exchangesvc "github.com/heartmarshall/bookswap-backend/internal/service/exchange"
	usersvc "github.com/heartmarshall/bookswap-backend/internal/service/user"
	"github.com/heartmarshall/bookswap-backend/internal/transport/middleware"
	"github.com/heartmarshall/bookswap-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, applies migrations, builds the service graph and serves
// HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	users := userrepo.New(pool)
	books := bookrepo.New(pool)
	exchanges := exchangerepo.New(pool)
	notifications := notificationrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	dispatcher := notify.NewDispatcher(notifications, logger, cfg.Notify.SendTimeout)
	defer dispatcher.Wait()

	jwtManager := authpkg.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authService := authsvc.NewService(logger, users, jwtManager, cfg.Auth)
	catalogService := catalogsvc.NewService(logger, books, cfg.Catalog)
	exchangeService := exchangesvc.NewService(logger, exchanges, books, txManager, dispatcher)
	userService := usersvc.NewService(logger, users, notifications, cfg.Notify.FeedLimit)

	limiter := middleware.NewRateLimiter(5 * time.Minute)
	defer limiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Logger:    logger,
		CORS:      cfg.CORS,
		Tokens:    jwtManager,
		Limiter:   limiter,
		AuthLimit: cfg.Server.AuthRateLimit,

		Auth:      rest.NewAuthHandler(authService, logger),
		Books:     rest.NewBookHandler(catalogService, logger),
		Exchanges: rest.NewExchangeHandler(exchangeService, logger),
		Users:     rest.NewUserHandler(userService, catalogService, logger),
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("application stopped")

	return nil
}
