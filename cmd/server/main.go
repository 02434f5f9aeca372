// The server command runs the HTTP API together with an embedded generation
// worker. Run cmd/worker instead to host the worker in its own process; only
// one worker instance may run at a time.
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/launchforge/launchforge/internal/agents"
	"github.com/launchforge/launchforge/internal/api/v1/handlers"
	"github.com/launchforge/launchforge/internal/app"
	"github.com/launchforge/launchforge/internal/config"
	"github.com/launchforge/launchforge/internal/db"
	"github.com/launchforge/launchforge/internal/db/repos"
	"github.com/launchforge/launchforge/internal/generation"
	"github.com/launchforge/launchforge/internal/logger"
	"github.com/launchforge/launchforge/internal/services"
	"github.com/launchforge/launchforge/internal/sink"
)

func main() {
	// .env is optional; real deployments set the environment directly
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
	projectRepo := repos.NewProjectRepository(database)
	artifactRepo := repos.NewArtifactRepository(database)

	jobService := services.NewJobService(jobRepo, projectRepo)
	projectService := services.NewProjectService(projectRepo, artifactRepo)

	resolver := agents.NewResolver(cfg.DefaultModel, cfg.ModelOverrides)
	genClient := generation.NewClient(cfg.GenerationAPIURL, cfg.GenerationAPIKey, cfg.GenerationMaxToken)
	worker := services.NewWorker(
		jobRepo,
		resolver,
		genClient,
		sink.NewArtifactSink(artifactRepo),
		cfg.PollInterval,
		cfg.StaleJobThreshold,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go services.LaunchWorker(ctx, &wg, worker)

	fiberApp := app.New(
		handlers.NewJobHandler(jobService),
		handlers.NewProjectHandler(projectService),
	)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("Shutdown signal received")
		cancel()
		_ = fiberApp.Shutdown()
	}()

	if err := fiberApp.Listen(":" + cfg.ServerPort); err != nil {
		logger.Errorf("Server stopped: %v", err)
	}

	wg.Wait()
	logger.Info("Shutdown complete")
}
