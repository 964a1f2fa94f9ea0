package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alimgiray/mrscope/internal/gitlab"
	"github.com/alimgiray/mrscope/internal/models"
	"golang.org/x/sync/errgroup"
)

// MergeRequestService fetches merge request listings from GitLab
type MergeRequestService struct {
	api gitlab.API
	now func() time.Time
}

// NewMergeRequestService creates a new merge request service
func NewMergeRequestService(api gitlab.API) *MergeRequestService {
	return &MergeRequestService{
		api: api,
		now: time.Now,
	}
}

// FetchMergeRequests pages through merge requests of one state, newest first,
// until limit items are collected or GitLab returns an empty page.
// maxAgeDays <= 0 disables the age filter.
func (s *MergeRequestService) FetchMergeRequests(ctx context.Context, projectID, state string, limit, maxAgeDays int) ([]models.MergeRequest, error) {
	result := make([]models.MergeRequest, 0)
	if limit <= 0 {
		return result, nil
	}

	opts := gitlab.ListMergeRequestsOptions{
		State:   state,
		PerPage: gitlab.MaxPageSize,
	}
	if maxAgeDays > 0 {
		cutoff := s.now().AddDate(0, 0, -maxAgeDays)
		opts.CreatedAfter = &cutoff
	}

	for page := 1; len(result) < limit; page++ {
		opts.Page = page
		mrs, _, err := s.api.ListMergeRequests(ctx, projectID, opts)
		if err != nil {
			return nil, err
		}
		if len(mrs) == 0 {
			break
		}
		result = append(result, mrs...)
	}

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ScanMergeRequests fetches opened and closed merge requests, merges them
// newest first and truncates to limit.
func (s *MergeRequestService) ScanMergeRequests(ctx context.Context, projectID string, limit, maxAgeDays int) ([]models.MergeRequest, error) {
	if limit <= 0 {
		return make([]models.MergeRequest, 0), nil
	}

	var opened, closed []models.MergeRequest
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		opened, err = s.FetchMergeRequests(gctx, projectID, models.StateOpened, limit, maxAgeDays)
		return err
	})
	g.Go(func() error {
		var err error
		closed, err = s.FetchMergeRequests(gctx, projectID, models.StateClosed, limit, maxAgeDays)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to scan merge requests: %w", err)
	}

	merged := make([]models.MergeRequest, 0, len(opened)+len(closed))
	merged = append(merged, opened...)
	merged = append(merged, closed...)
	sortNewestFirst(merged)

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// CountMergeRequests returns the number of merge requests in any state.
// ok is false when GitLab did not report a total.
func (s *MergeRequestService) CountMergeRequests(ctx context.Context, projectID string) (int, bool, error) {
	total, ok, err := s.api.CountMergeRequests(ctx, projectID, models.StateAll)
	if err != nil {
		return 0, false, fmt.Errorf("failed to count merge requests: %w", err)
	}
	return total, ok, nil
}

// sortNewestFirst orders by created_at descending, ties by iid descending
func sortNewestFirst(mrs []models.MergeRequest) {
	sort.SliceStable(mrs, func(i, j int) bool {
		if !mrs[i].CreatedAt.Equal(mrs[j].CreatedAt) {
			return mrs[i].CreatedAt.After(mrs[j].CreatedAt)
		}
		return mrs[i].IID > mrs[j].IID
	})
}
