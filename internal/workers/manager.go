package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alimgiray/mrscope/internal/services"
	"github.com/alimgiray/mrscope/pkg/logger"
)

// WorkerManager manages the scan workers
type WorkerManager struct {
	workers            []Worker
	jobService         *services.ScanJobService
	contributorService *services.ContributorService
	workerCount        int
	wg                 sync.WaitGroup
	ctx                context.Context
	cancel             context.CancelFunc
}

// NewWorkerManager creates a new worker manager running workerCount scan workers
func NewWorkerManager(jobService *services.ScanJobService, contributorService *services.ContributorService, workerCount int) *WorkerManager {
	if workerCount < 1 {
		workerCount = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerManager{
		workers:            make([]Worker, 0, workerCount),
		jobService:         jobService,
		contributorService: contributorService,
		workerCount:        workerCount,
		ctx:                ctx,
		cancel:             cancel,
	}
}

// StartAll starts all scan workers
func (wm *WorkerManager) StartAll() error {
	logger.Infof("Starting %d scan workers", wm.workerCount)

	for i := 0; i < wm.workerCount; i++ {
		worker := NewScanWorker(fmt.Sprintf("scan-%d", i+1), wm.jobService, wm.contributorService)
		wm.workers = append(wm.workers, worker)
		wm.startWorker(worker)
	}

	return nil
}

// StopAll cancels running scans and waits for every worker to return
func (wm *WorkerManager) StopAll() error {
	logger.Infof("Stopping all workers...")

	// Cancel the context to signal all workers to stop
	wm.cancel()

	for _, worker := range wm.workers {
		if err := worker.Stop(); err != nil {
			logger.WithError(err).WithField("worker_id", worker.GetWorkerID()).Warn("Error stopping worker")
		}
	}

	wm.wg.Wait()

	logger.Infof("All workers stopped")
	return nil
}

// startWorker starts a single worker in a goroutine
func (wm *WorkerManager) startWorker(worker Worker) {
	wm.wg.Add(1)
	go func() {
		defer wm.wg.Done()
		if err := worker.Start(wm.ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.WithError(err).WithField("worker_id", worker.GetWorkerID()).Error("Worker stopped with error")
		}
	}()
}

// GetWorkerStatus returns the status of all workers
func (wm *WorkerManager) GetWorkerStatus() map[string]bool {
	status := make(map[string]bool, len(wm.workers))
	for _, worker := range wm.workers {
		status[worker.GetWorkerID()] = worker.IsRunning()
	}
	return status
}
