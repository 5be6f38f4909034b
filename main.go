package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/clock"
	"github.com/mauv0809/courtside/internal/config"
	"github.com/mauv0809/courtside/internal/court"
	"github.com/mauv0809/courtside/internal/database"
	server "github.com/mauv0809/courtside/internal/http"
	"github.com/mauv0809/courtside/internal/inbox"
	"github.com/mauv0809/courtside/internal/match"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/notifier/slack"
	"github.com/mauv0809/courtside/internal/processor"
	"github.com/mauv0809/courtside/internal/profile"
	"github.com/mauv0809/courtside/internal/proximity"
	"github.com/mauv0809/courtside/internal/pubsub"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Invalid TIMEZONE %q: %s", cfg.Timezone, err)
	}
	clk := clock.NewSystem(loc)

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	rdb := court.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password)
	if rdb != nil {
		defer rdb.Close()
	}
	courtStore := court.NewCachedStore(court.New(db), rdb, cfg.Redis.TTL, metricsSvc)
	inboxStore := inbox.New(db)

	var announcer notifier.Notifier = notifier.NewLogNotifier()
	if cfg.Slack.Enabled() {
		announcer = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc, loc)
	} else {
		log.Warn("Slack is not configured, match announcements are only logged")
	}

	consumeCtx, stopConsuming := context.WithCancel(context.Background())
	defer stopConsuming()

	var (
		events     pubsub.PubSubClient
		subscriber pubsub.Subscriber
		amqpClient *pubsub.AMQPClient
	)
	switch cfg.Events.Transport {
	case config.TransportGCP:
		// Deliveries arrive on the /pubsub push endpoints.
		events, err = pubsub.New(context.Background(), cfg.Events.ProjectID)
		if err != nil {
			log.Fatalf("Failed to connect to Pub/Sub: %s", err)
		}
	case config.TransportAMQP:
		amqpClient, err = pubsub.NewAMQP(cfg.Events.AMQPURL, cfg.Events.AMQPExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %s", err)
		}
		events, subscriber = amqpClient, amqpClient
	default:
		bus := pubsub.NewBus()
		events, subscriber = bus, bus
	}
	defer events.Close()

	profiles := profile.New(db)
	nearby := proximity.New(profiles, inboxStore, metricsSvc, clk, cfg.NotifyShardSize)
	proc := processor.New(nearby, announcer, metricsSvc, events)
	if subscriber != nil {
		proc.Register(subscriber)
	}
	if amqpClient != nil {
		go func() {
			if err := amqpClient.Consume(consumeCtx, cfg.Events.AMQPQueue); err != nil {
				log.Error("RabbitMQ consumer stopped", "error", err)
			}
		}()
	}

	matches := match.NewService(match.NewStore(db), courtStore, events, metricsSvc, clk, match.WithLocation(loc))

	s := server.NewServer(matches, courtStore, inboxStore, profiles, proc, db, metricsHandler, cfg)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port, "transport", cfg.Events.Transport)
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

	log.Info("Server process shutting down")
}
