package services

import (
	"context"
	"time"

	"github.com/alimgiray/mrscope/internal/models"
	"github.com/alimgiray/mrscope/pkg/logger"
)

// SchedulerService queues a contributor scan of the stored repository once a
// day at a fixed hour
type SchedulerService struct {
	repositoryService *RepositoryService
	jobService        *ScanJobService
	hour              int
}

// NewSchedulerService creates a scheduler; an hour outside 0-23 disables it
func NewSchedulerService(repositoryService *RepositoryService, jobService *ScanJobService, hour int) *SchedulerService {
	return &SchedulerService{
		repositoryService: repositoryService,
		jobService:        jobService,
		hour:              hour,
	}
}

// Enabled reports whether a schedule hour is configured
func (s *SchedulerService) Enabled() bool {
	return s.hour >= 0 && s.hour <= 23
}

// StartScheduler starts the automatic scan scheduler; it stops with ctx
func (s *SchedulerService) StartScheduler(ctx context.Context) {
	if !s.Enabled() {
		return
	}

	logger.Infof("Scheduling daily contributor scans at %02d:00", s.hour)
	go func() {
		for {
			now := time.Now()
			if _, err := s.RunDue(now); err != nil {
				logger.WithError(err).Warn("Error scheduling contributor scan")
			}

			// Sleep until the next hour
			nextHour := now.Add(1 * time.Hour)
			nextHour = time.Date(nextHour.Year(), nextHour.Month(), nextHour.Day(), nextHour.Hour(), 0, 0, 0, nextHour.Location())

			select {
			case <-ctx.Done():
				return
			case <-time.After(nextHour.Sub(now)):
			}
		}
	}()
}

// RunDue queues a scan when now falls in the scheduled hour. It returns nil
// when nothing was due.
func (s *SchedulerService) RunDue(now time.Time) (*models.ScanJob, error) {
	if !s.Enabled() || now.Hour() != s.hour {
		return nil, nil
	}

	projectID, err := s.repositoryService.ResolveProject("")
	if err != nil {
		return nil, err
	}

	job, err := s.jobService.Create(projectID)
	if err != nil {
		return nil, err
	}

	logger.WithField("job_id", job.ID).WithField("project_id", projectID).Info("Created scheduled contributor scan")
	return job, nil
}
