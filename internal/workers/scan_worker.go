package workers

import (
	"context"
	"time"

	"github.com/alimgiray/mrscope/internal/models"
	"github.com/alimgiray/mrscope/internal/services"
	"github.com/alimgiray/mrscope/pkg/logger"
	"github.com/sirupsen/logrus"
)

const defaultPollInterval = 10 * time.Second

// ScanWorker runs contributor scan jobs
type ScanWorker struct {
	*BaseWorker
	jobService         *services.ScanJobService
	contributorService *services.ContributorService
	pollInterval       time.Duration
}

// NewScanWorker creates a new scan worker
func NewScanWorker(workerID string, jobService *services.ScanJobService, contributorService *services.ContributorService) *ScanWorker {
	return &ScanWorker{
		BaseWorker:         NewBaseWorker(workerID),
		jobService:         jobService,
		contributorService: contributorService,
		pollInterval:       defaultPollInterval,
	}
}

// Start begins the scan worker process
func (w *ScanWorker) Start(ctx context.Context) error {
	w.setRunning(true)
	defer w.setRunning(false)

	log := logger.WithField("worker_id", w.WorkerID)
	log.Info("Scan worker started")

	for {
		if w.stopped(ctx) {
			log.Info("Scan worker stopping")
			return ctx.Err()
		}

		job, err := w.jobService.ClaimNext()
		if err != nil {
			log.WithError(err).Error("Scan worker failed to get job")
		} else if job != nil {
			w.processScanJob(ctx, job)
			continue
		}

		select {
		case <-ctx.Done():
			log.Info("Scan worker stopping due to context cancellation")
			return ctx.Err()
		case <-w.StopChan:
			log.Info("Scan worker stopping")
			return nil
		case <-w.jobService.Wake():
		case <-time.After(w.pollInterval):
		}
	}
}

// processScanJob runs the aggregation for a claimed job
func (w *ScanWorker) processScanJob(ctx context.Context, job *models.ScanJob) {
	log := logger.WithFields(logrus.Fields{
		"worker_id":  w.WorkerID,
		"job_id":     job.ID,
		"project_id": job.ProjectID,
	})
	log.Info("Processing scan job")

	report, err := w.contributorService.AggregateContributors(ctx, job.ProjectID, func(processed, total int, estimate time.Duration) {
		if err := w.jobService.UpdateProgress(job.ID, processed, total, estimate); err != nil {
			log.WithError(err).Warn("Failed to record scan progress")
		}
	})
	if err != nil {
		log.WithError(err).Error("Scan job failed")
		if updateErr := w.jobService.Fail(job.ID, err); updateErr != nil {
			log.WithError(updateErr).Error("Failed to mark scan job failed")
		}
		return
	}

	if err := w.jobService.Complete(job.ID, report); err != nil {
		log.WithError(err).Error("Failed to mark scan job completed")
		return
	}

	log.WithField("contributors", len(report.Contributors)).Info("Scan job completed")
}
