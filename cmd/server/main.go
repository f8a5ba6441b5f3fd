// Command server runs the book exchange HTTP API.
//
// Configuration is read from CONFIG_PATH (or ./config.yaml) and overridden
// by environment variables. The server shuts down gracefully on SIGINT or
// SIGTERM.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/bookswap-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
