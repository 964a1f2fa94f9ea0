package gitlab

import (
	"context"

	"github.com/alimgiray/mrscope/internal/models"
)

// API defines the GitLab operations the scanner depends on
type API interface {
	GetProject(ctx context.Context, projectID string) (*models.Project, error)
	ListMergeRequests(ctx context.Context, projectID string, opts ListMergeRequestsOptions) ([]models.MergeRequest, *PageInfo, error)
	CountMergeRequests(ctx context.Context, projectID, state string) (int, bool, error)
	GetMergeRequest(ctx context.Context, projectID string, iid int) (*models.MergeRequest, error)
	ListMergeRequestNotes(ctx context.Context, projectID string, iid int) ([]models.Note, error)
	ListMergeRequestCommits(ctx context.Context, projectID string, iid int) ([]models.Commit, error)
}

// Ensure Client implements API interface
var _ API = (*Client)(nil)
