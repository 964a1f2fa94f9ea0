package services

import (
	"fmt"
	"time"

	"github.com/alimgiray/mrscope/internal/apperr"
	"github.com/alimgiray/mrscope/internal/models"
	"github.com/alimgiray/mrscope/internal/repositories"
)

// ScanJobService handles scan job creation and state transitions
type ScanJobService struct {
	jobRepo *repositories.ScanJobRepository
	wake    chan struct{}
}

// NewScanJobService creates a new scan job service
func NewScanJobService(jobRepo *repositories.ScanJobRepository) *ScanJobService {
	return &ScanJobService{
		jobRepo: jobRepo,
		wake:    make(chan struct{}, 1),
	}
}

// Create stores a pending scan job for the project and signals the workers
func (s *ScanJobService) Create(projectID string) (*models.ScanJob, error) {
	job := models.NewScanJob(projectID)
	if err := s.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create scan job: %w", err)
	}

	select {
	case s.wake <- struct{}{}:
	default:
	}

	return job, nil
}

// Get retrieves a scan job by ID
func (s *ScanJobService) Get(id string) (*models.ScanJob, error) {
	job, err := s.jobRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("%w: scan job %s", apperr.ErrNotFound, id)
	}
	return job, nil
}

// Wake is signalled whenever a job is created
func (s *ScanJobService) Wake() <-chan struct{} {
	return s.wake
}

// ClaimNext marks the oldest pending job as started and returns it, or nil
func (s *ScanJobService) ClaimNext() (*models.ScanJob, error) {
	return s.jobRepo.ClaimNextPendingJob()
}

// UpdateProgress records the progress of a running job
func (s *ScanJobService) UpdateProgress(id string, processed, total int, estimate time.Duration) error {
	return s.jobRepo.Update(id, func(job *models.ScanJob) {
		job.SetProgress(processed, total, estimate)
	})
}

// Complete stores the report and marks the job completed
func (s *ScanJobService) Complete(id string, report *models.ContributorReport) error {
	return s.jobRepo.Update(id, func(job *models.ScanJob) {
		job.MarkCompleted(report)
	})
}

// Fail marks the job failed with the error message
func (s *ScanJobService) Fail(id string, cause error) error {
	return s.jobRepo.Update(id, func(job *models.ScanJob) {
		job.MarkFailed(cause.Error())
	})
}

// ListByProject returns the scan jobs of a project, newest first
func (s *ScanJobService) ListByProject(projectID string) ([]*models.ScanJob, error) {
	jobs, err := s.jobRepo.GetByProjectID(projectID)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = make([]*models.ScanJob, 0)
	}
	return jobs, nil
}
