// Command console runs the Stoq-Keep inventory console: a single-operator web
// front-end over the external Stoq-Keep backend API. The process owns one
// session; starting it is the equivalent of opening the app in a browser.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stoqkeep/inventory-console/internal/api"
	"github.com/stoqkeep/inventory-console/internal/core/domain"
	"github.com/stoqkeep/inventory-console/internal/core/service"
	"github.com/stoqkeep/inventory-console/internal/infrastructure/backend"
	"github.com/stoqkeep/inventory-console/internal/infrastructure/config"
	"github.com/stoqkeep/inventory-console/internal/infrastructure/poller"
	"github.com/stoqkeep/inventory-console/internal/infrastructure/tokenstore"
	"github.com/stoqkeep/inventory-console/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Collaborators ---
	client := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	}, log)
	identity := backend.NewIdentityClient(client)
	inventory := backend.NewInventoryClient(client)
	tokens := tokenstore.NewFileStore(cfg.Session.TokenFile)

	// --- Session ---
	sessions := service.NewSessionService(identity, tokens, log)
	if sessions.Snapshot().Status == domain.StatusLoading {
		// A persisted token exists; resolve it in the background so the
		// loading page can be served meanwhile.
		go sessions.Resolve(ctx)
	}

	// --- Low-stock poller ---
	alerts := poller.New(sessions, inventory, cfg.Poller.Interval, log)
	alerts.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Sessions:  sessions,
		Identity:  identity,
		Inventory: inventory,
		Backend:   client,
		Alerts:    alerts,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("console listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
