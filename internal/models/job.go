package models

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the status of a scan job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// ScanJob represents a background contributor scan
type ScanJob struct {
	ID                     string             `json:"id"`
	ProjectID              string             `json:"project_id"`
	Status                 JobStatus          `json:"status"`
	TotalMergeRequests     int                `json:"total_merge_requests"`
	ProcessedMergeRequests int                `json:"processed_merge_requests"`
	EstimatedSeconds       float64            `json:"estimated_total_time_seconds"`
	ErrorMessage           *string            `json:"error_message"`
	Result                 *ContributorReport `json:"result,omitempty"`
	StartedAt              *time.Time         `json:"started_at"`
	CompletedAt            *time.Time         `json:"completed_at"`
	CreatedAt              time.Time          `json:"created_at"`
	UpdatedAt              time.Time          `json:"updated_at"`
}

// NewScanJob creates a new pending ScanJob with a generated UUID
func NewScanJob(projectID string) *ScanJob {
	now := time.Now()
	return &ScanJob{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Status:    JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsPending checks if the job is pending
func (j *ScanJob) IsPending() bool {
	return j.Status == JobStatusPending
}

// IsFinished checks if the job has completed or failed
func (j *ScanJob) IsFinished() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// MarkStarted marks the job as started
func (j *ScanJob) MarkStarted() {
	now := time.Now()
	j.Status = JobStatusInProgress
	j.StartedAt = &now
	j.UpdatedAt = now
}

// MarkCompleted marks the job as completed and stores the report
func (j *ScanJob) MarkCompleted(report *ContributorReport) {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.Result = report
	j.ProcessedMergeRequests = report.ScannedMergeRequests
	j.TotalMergeRequests = report.TotalMergeRequests
	j.EstimatedSeconds = report.EstimatedSeconds
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// MarkFailed marks the job as failed with the given error message
func (j *ScanJob) MarkFailed(message string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.ErrorMessage = &message
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// SetProgress records how far a running scan has got
func (j *ScanJob) SetProgress(processed, total int, estimate time.Duration) {
	j.ProcessedMergeRequests = processed
	j.TotalMergeRequests = total
	j.EstimatedSeconds = estimate.Seconds()
	j.UpdatedAt = time.Now()
}
