package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"titan/internal/app"
	"titan/internal/config"
	"titan/internal/jobs"
	"titan/internal/logging"
	"titan/internal/metrics"
	"titan/internal/server"
)

func main() {
	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()
	logging.Init(!cfg.IsDev(), cfg.LogLevel)
	cfg.WarnMissingCredentials()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.Build(ctx, cfg, nil)
	if err != nil {
		log.Fatalf("Failed to initialise: %v", err)
	}
	defer a.Close()

	metrics.Init(a.Ledger)

	// Create server
	srv := server.New(cfg)
	srv.RegisterRoutes(server.Deps{
		Ledger:        a.Ledger,
		LedgerBackend: cfg.LedgerBackend,
		Selector:      a.Selector,
		Planner:       a.Planner,
		Resolver:      a.Resolver,
	})

	// Start scheduled topic generation
	var scheduler *jobs.TopicScheduler
	if cfg.EnableTopicScheduler {
		scheduler, err = jobs.NewTopicScheduler(a.Selector, cfg.BriefDir, cfg.TopicSchedule)
		if err != nil {
			log.Fatalf("Invalid TOPIC_SCHEDULE: %v", err)
		}
		if err := scheduler.Start(ctx); err != nil {
			log.Fatalf("Failed to start topic scheduler: %v", err)
		}
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s (ledger: %s)", cfg.ServerAddr, cfg.LedgerBackend)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if scheduler != nil {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Topic scheduler shutdown error: %v", err)
		}
	}
	if err := srv.Shutdown(); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
