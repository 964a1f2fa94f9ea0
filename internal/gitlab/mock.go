package gitlab

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alimgiray/mrscope/internal/apperr"
	"github.com/alimgiray/mrscope/internal/models"
)

// MockClient implements API over in-memory data for testing.
// It is safe for concurrent use.
type MockClient struct {
	Project       *models.Project
	MergeRequests []models.MergeRequest
	Notes         map[int][]models.Note
	Commits       map[int][]models.Commit

	// OmitTotal makes list responses behave as if X-Total was not sent
	OmitTotal bool
	// Errors returned by the named method, e.g. "ListMergeRequestNotes"
	Errors map[string]error
	// Delay is applied to every call that honours the context
	Delay time.Duration

	mu    sync.Mutex
	calls map[string]int
	last  ListMergeRequestsOptions
}

// Ensure MockClient implements API interface
var _ API = (*MockClient)(nil)

// Calls returns how many times the named method was called
func (m *MockClient) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// TotalCalls returns the number of calls across all methods
func (m *MockClient) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

// LastListOptions returns the options of the most recent ListMergeRequests call
func (m *MockClient) LastListOptions() ListMergeRequestsOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

func (m *MockClient) enter(ctx context.Context, method string) error {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
	err := m.Errors[method]
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

// GetProject mocks the project lookup
func (m *MockClient) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	if err := m.enter(ctx, "GetProject"); err != nil {
		return nil, err
	}
	if m.Project == nil {
		return nil, fmt.Errorf("%w: project %s", apperr.ErrNotFound, projectID)
	}
	project := *m.Project
	return &project, nil
}

// ListMergeRequests mocks one page of the merge request listing
func (m *MockClient) ListMergeRequests(ctx context.Context, projectID string, opts ListMergeRequestsOptions) ([]models.MergeRequest, *PageInfo, error) {
	if err := m.enter(ctx, "ListMergeRequests"); err != nil {
		return nil, nil, err
	}
	m.mu.Lock()
	m.last = opts
	m.mu.Unlock()

	var matched []models.MergeRequest
	for _, mr := range m.MergeRequests {
		if opts.State != "" && opts.State != models.StateAll && mr.State != opts.State {
			continue
		}
		if opts.CreatedAfter != nil && !mr.CreatedAt.After(*opts.CreatedAfter) {
			continue
		}
		matched = append(matched, mr)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	perPage := opts.PerPage
	if perPage <= 0 || perPage > MaxPageSize {
		perPage = MaxPageSize
	}
	page := opts.Page
	if page <= 0 {
		page = 1
	}

	info := &PageInfo{Total: len(matched), HasTotal: !m.OmitTotal}
	if m.OmitTotal {
		info.Total = 0
	}

	start := (page - 1) * perPage
	if start >= len(matched) {
		return []models.MergeRequest{}, info, nil
	}
	end := start + perPage
	if end < len(matched) {
		info.NextPage = page + 1
	} else {
		end = len(matched)
	}

	out := make([]models.MergeRequest, end-start)
	copy(out, matched[start:end])
	return out, info, nil
}

// CountMergeRequests mocks the X-Total lookup
func (m *MockClient) CountMergeRequests(ctx context.Context, projectID, state string) (int, bool, error) {
	_, info, err := m.ListMergeRequests(ctx, projectID, ListMergeRequestsOptions{State: state, Page: 1, PerPage: 1})
	if err != nil {
		return 0, false, err
	}
	return info.Total, info.HasTotal, nil
}

// GetMergeRequest mocks the merge request detail lookup
func (m *MockClient) GetMergeRequest(ctx context.Context, projectID string, iid int) (*models.MergeRequest, error) {
	if err := m.enter(ctx, "GetMergeRequest"); err != nil {
		return nil, err
	}
	for _, mr := range m.MergeRequests {
		if mr.IID == iid {
			found := mr
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: merge request !%d", apperr.ErrNotFound, iid)
}

// ListMergeRequestNotes mocks the notes listing
func (m *MockClient) ListMergeRequestNotes(ctx context.Context, projectID string, iid int) ([]models.Note, error) {
	if err := m.enter(ctx, "ListMergeRequestNotes"); err != nil {
		return nil, err
	}
	return append([]models.Note(nil), m.Notes[iid]...), nil
}

// ListMergeRequestCommits mocks the commits listing
func (m *MockClient) ListMergeRequestCommits(ctx context.Context, projectID string, iid int) ([]models.Commit, error) {
	if err := m.enter(ctx, "ListMergeRequestCommits"); err != nil {
		return nil, err
	}
	return append([]models.Commit(nil), m.Commits[iid]...), nil
}
