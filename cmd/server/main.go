package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/avvvet/ussdflow/internal/config"
	"github.com/avvvet/ussdflow/internal/events"
	"github.com/avvvet/ussdflow/internal/gateway"
	"github.com/avvvet/ussdflow/internal/handlers"
	"github.com/avvvet/ussdflow/internal/observability"
	"github.com/avvvet/ussdflow/internal/store"
	"github.com/avvvet/ussdflow/internal/transfer"
)

func main() {
	// Load .env file if it exists (for development)
	envErr := godotenv.Load()

	// Load configuration
	cfg := config.Load()
	logger := observability.InitLogger(cfg.ServiceName)
	if envErr != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	log.Info().Msg("🚀 Starting USSD gateway service...")
	log.Info().
		Str("service", cfg.ServiceName).
		Str("addr", cfg.HTTPAddr).
		Str("session_store", cfg.SessionStore).
		Dur("session_ttl", cfg.SessionTTL).
		Msg("📋 Configuration loaded")

	observability.RegisterMetrics()

	// Initialize session store
	sessions, err := newSessionStore(cfg, logger)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize session store")
	}
	defer sessions.Close()
	log.Info().Str("backend", cfg.SessionStore).Msg("✅ Session store ready")

	// Initialize event publisher (disabled unless NATS_URL is set)
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NatsURL != "" {
		natsPublisher, perr := events.NewNATSPublisher(cfg.NatsURL, cfg.NatsSubject, cfg.ServiceName)
		if perr != nil {
			log.Fatal().Err(perr).Msg("❌ Failed to connect to NATS")
		}
		publisher = natsPublisher
	}
	defer publisher.Close()

	// Initialize the application
	app, err := handlers.NewApp(sessions, transfer.NewLedger(), handlers.Options{
		MaxTransferAmount: cfg.MaxTransferAmount,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to build application")
	}

	server := gateway.NewServer(app, publisher, cfg.ServiceName)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Router(logger),
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("✅ USSD gateway service is running")
		if serr := httpServer.ListenAndServe(); serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			log.Fatal().Err(serr).Msg("❌ HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Block until signal received
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("🛑 Shutting down gracefully...")

	// In-flight interactions get a grace period; after that the gateway
	// retries against another instance anyway.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("HTTP server shutdown forced")
	}

	log.Info().Msg("👋 USSD gateway service stopped")
}

func newSessionStore(cfg *config.Config, logger zerolog.Logger) (store.Store, error) {
	switch cfg.SessionStore {
	case "memory":
		return store.NewMemoryStore(cfg.SessionTTL), nil
	case "redis":
		return store.NewRedisStore(cfg.RedisURL, cfg.SessionTTL)
	case "badger":
		return store.NewBadgerStore(cfg.BadgerPath, cfg.SessionTTL, logger)
	default:
		return nil, fmt.Errorf("unknown session store %q (want memory, redis or badger)", cfg.SessionStore)
	}
}
