package repositories

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alimgiray/mrscope/internal/models"
)

// ScanJobRepository keeps scan jobs in memory. Callers always receive copies;
// changes go through Update.
type ScanJobRepository struct {
	mu   sync.RWMutex
	jobs map[string]*models.ScanJob
}

// NewScanJobRepository creates a new ScanJobRepository
func NewScanJobRepository() *ScanJobRepository {
	return &ScanJobRepository{jobs: make(map[string]*models.ScanJob)}
}

// Create stores a new job
func (r *ScanJobRepository) Create(job *models.ScanJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[job.ID]; exists {
		return fmt.Errorf("scan job %s already exists", job.ID)
	}

	stored := *job
	r.jobs[job.ID] = &stored
	return nil
}

// GetByID retrieves a job by ID. It returns nil when the job does not exist.
func (r *ScanJobRepository) GetByID(id string) (*models.ScanJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}

	found := *job
	return &found, nil
}

// GetByProjectID retrieves all jobs for a project, newest first
func (r *ScanJobRepository) GetByProjectID(projectID string) ([]*models.ScanJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var jobs []*models.ScanJob
	for _, job := range r.jobs {
		if job.ProjectID == projectID {
			found := *job
			jobs = append(jobs, &found)
		}
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}

// ClaimNextPendingJob marks the oldest pending job as started and returns it.
// It returns nil when no job is pending.
func (r *ScanJobRepository) ClaimNextPendingJob() (*models.ScanJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var next *models.ScanJob
	for _, job := range r.jobs {
		if !job.IsPending() {
			continue
		}
		if next == nil || job.CreatedAt.Before(next.CreatedAt) ||
			(job.CreatedAt.Equal(next.CreatedAt) && job.ID < next.ID) {
			next = job
		}
	}
	if next == nil {
		return nil, nil
	}

	next.MarkStarted()
	claimed := *next
	return &claimed, nil
}

// Update applies fn to the stored job under the repository lock
func (r *ScanJobRepository) Update(id string, fn func(job *models.ScanJob)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return fmt.Errorf("scan job %s not found", id)
	}

	fn(job)
	return nil
}

