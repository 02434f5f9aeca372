// The worker command runs the generation worker as a standalone process,
// for deployments where the API and the worker are hosted separately. The
// job table is the only coordination between them; do not run more than one
// worker instance.
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/launchforge/launchforge/internal/agents"
	"github.com/launchforge/launchforge/internal/config"
	"github.com/launchforge/launchforge/internal/db"
	"github.com/launchforge/launchforge/internal/db/repos"
	"github.com/launchforge/launchforge/internal/generation"
	"github.com/launchforge/launchforge/internal/logger"
	"github.com/launchforge/launchforge/internal/services"
	"github.com/launchforge/launchforge/internal/sink"
)

func main() {
	_ = godotenv.Load()
	logger.Initialize()

	cfg := config.Load()

	database, err := db.New(db.Options{
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		User:       cfg.DBUser,
		Password:   cfg.DBPassword,
		DBName:     cfg.DBName,
		SSLEnabled: cfg.DBSSL,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	jobRepo := repos.NewJobRepository(database)
	artifactRepo := repos.NewArtifactRepository(database)

	worker := services.NewWorker(
		jobRepo,
		agents.NewResolver(cfg.DefaultModel, cfg.ModelOverrides),
		generation.NewClient(cfg.GenerationAPIURL, cfg.GenerationAPIKey, cfg.GenerationMaxToken),
		sink.NewArtifactSink(artifactRepo),
		cfg.PollInterval,
		cfg.StaleJobThreshold,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("Shutdown signal received")
		cancel()
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go services.LaunchWorker(ctx, &wg, worker)
	wg.Wait()

	logger.Info("Worker shutdown complete")
}
