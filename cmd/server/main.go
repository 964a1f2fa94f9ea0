package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimgiray/mrscope/internal/gitlab"
	"github.com/alimgiray/mrscope/internal/handlers"
	"github.com/alimgiray/mrscope/internal/repositories"
	"github.com/alimgiray/mrscope/internal/services"
	"github.com/alimgiray/mrscope/internal/workers"
	"github.com/alimgiray/mrscope/pkg/config"
	"github.com/alimgiray/mrscope/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(cfg.Server.Mode)

	// A missing token is reported per request so the API stays reachable
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Warn("Configuration incomplete, GitLab requests will fail")
	}

	// Initialize dependencies
	client := gitlab.NewClient(gitlab.ClientConfig{
		BaseURL:  cfg.GitLab.APIURL,
		Token:    cfg.GitLab.Token,
		AuthMode: cfg.GitLab.AuthMode,
		Timeout:  cfg.RequestTimeout(),
	}, nil)

	settingsRepo := repositories.NewSettingsRepository(cfg.GitLab.RepositoryURL)
	repositoryService := services.NewRepositoryService(settingsRepo)
	mergeRequestService := services.NewMergeRequestService(client)
	participantService := services.NewParticipantService(client)
	contributorService := services.NewContributorService(client, mergeRequestService, participantService, cfg.Scan.Workers)
	exportService := services.NewExportService()

	// Job and worker services
	scanJobRepo := repositories.NewScanJobRepository()
	scanJobService := services.NewScanJobService(scanJobRepo)
	workerManager := workers.NewWorkerManager(scanJobService, contributorService, cfg.Scan.JobWorkers)

	// Initialize router
	router := gin.New()
	handlers.SetupRoutes(router, &handlers.Handlers{
		MergeRequests: handlers.NewMergeRequestHandler(repositoryService, mergeRequestService, contributorService, cfg.Scan),
		Contributors:  handlers.NewContributorHandler(repositoryService, contributorService, exportService, scanJobService),
		Repository:    handlers.NewRepositoryHandler(repositoryService),
		Health:        handlers.NewHealthHandler(workerManager.GetWorkerStatus),
		NotFound:      handlers.NewNotFoundHandler(),
	})

	// Start workers
	if err := workerManager.StartAll(); err != nil {
		logger.Fatalf("Failed to start workers: %v", err)
	}

	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	schedulerService := services.NewSchedulerService(repositoryService, scanJobService, cfg.Scan.ScheduleHour)
	schedulerService.StartScheduler(schedulerCtx)

	// Setup server
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Infof("Server starting on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Warn("Server shutdown did not complete")
	}
	stopScheduler()
	if err := workerManager.StopAll(); err != nil {
		logger.WithError(err).Warn("Workers did not stop cleanly")
	}

	logger.Infof("Server stopped")
}
