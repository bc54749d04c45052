package main

import (
	"os"
	"os/signal"
	"syscall"

	"sgp/internal/app"
	"sgp/internal/cache"
	"sgp/internal/config"
	"sgp/internal/database"
	"sgp/pkg/logutils"
	"sgp/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logutils.Log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logutils.SetLevel(cfg.LogLevel); err != nil {
		logutils.Log.Warnf("Ignoring LOG_LEVEL %q: %v", cfg.LogLevel, err)
	}

	// --- Database ---
	db, err := database.Open(cfg)
	if err != nil {
		logutils.Log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		logutils.Log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Cache ---
	store, err := cache.New(cfg)
	if err != nil {
		logutils.Log.Fatalf("Failed to initialize cache: %v", err)
	}
	defer store.Close()

	deps := app.Deps{DB: db, Cache: store}

	// --- RabbitMQ (optional) ---
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logutils.Log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		deps.Publisher = mqClient

		if err := mqClient.ConsumeEvents(rabbitmq.HandleEventMessage); err != nil {
			logutils.Log.Errorf("Failed to start RabbitMQ consumer: %v", err)
		}
	} else {
		logutils.Log.Info("RABBITMQ_URL is empty, domain events are disabled")
	}

	// --- HTTP server ---
	server := app.New(cfg, deps)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logutils.Log.Infof("Starting server on port %s", cfg.AppPort)
		if err := server.Listen(cfg.AppPort); err != nil {
			logutils.Log.Errorf("Server stopped: %v", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	logutils.Log.Info("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		logutils.Log.Errorf("Error during Fiber shutdown: %v", err)
	}
	logutils.Log.Info("Server gracefully stopped")
}
