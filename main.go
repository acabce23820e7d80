package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-scoreboard/internal/auth"
	"github.com/mauv0809/league-scoreboard/internal/config"
	server "github.com/mauv0809/league-scoreboard/internal/http"
	"github.com/mauv0809/league-scoreboard/internal/league"
	"github.com/mauv0809/league-scoreboard/internal/metrics"
	"github.com/mauv0809/league-scoreboard/internal/notifier"
	"github.com/mauv0809/league-scoreboard/internal/notifier/slack"
	"github.com/mauv0809/league-scoreboard/internal/processor"
	"github.com/mauv0809/league-scoreboard/internal/pubsub"
	"github.com/mauv0809/league-scoreboard/internal/store"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warn("Unknown LOG_LEVEL, keeping info", "level", cfg.LogLevel)
	}
	if cfg.UsesDefaultAdminKey() {
		log.Warn("ADMIN_KEY is not set, using the insecure default key. Set ADMIN_KEY before exposing this server.")
	}

	leagueStore, storeTeardown, err := store.Open(cfg)
	storeInitDuration := time.Since(startTime)
	log.Info("Store initialization time recorded", "backend", cfg.Store.Backend, "duration_ms", storeInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize store: %s", err)
	}
	defer func() {
		log.Info("Closing store")
		storeTeardown()
	}()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	repo := league.NewRepository(leagueStore, metricsSvc)

	var resultNotifier notifier.Notifier = notifier.NewNoop()
	if cfg.Slack.Enabled() {
		resultNotifier = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else if cfg.Slack.SigningSecret != "" {
		log.Info("SLACK_BOT_TOKEN or SLACK_CHANNEL_ID is not set, result notifications are disabled but slash commands are answered")
		resultNotifier = slack.NewFormatter(metricsSvc)
	} else {
		log.Info("Slack is not configured, result notifications are disabled")
	}

	var pubsubClient pubsub.PubSubClient = pubsub.NewNoop()
	if cfg.ProjectID != "" {
		pubsubClient, err = pubsub.New(cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
	} else {
		log.Info("GCP_PROJECT is not set, change events are dropped")
	}
	defer pubsubClient.Close()

	processor := processor.New(repo, resultNotifier)

	s := server.NewServer(
		repo,
		auth.NewStaticKey(cfg.AdminKey),
		metricsSvc,
		metricsHandler,
		cfg,
		resultNotifier,
		processor,
		pubsubClient,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port, "public_dir", cfg.PublicDir)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	// Let queued change events go out before the pubsub client closes.
	s.Close()
	log.Info("Server process shutting down")
}
