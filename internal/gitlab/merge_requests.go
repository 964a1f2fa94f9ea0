package gitlab

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/alimgiray/mrscope/internal/models"
)

// ListMergeRequestsOptions selects one page of a project's merge requests
type ListMergeRequestsOptions struct {
	State        string
	Page         int
	PerPage      int
	CreatedAfter *time.Time
}

// PageInfo carries the pagination headers of a list response
type PageInfo struct {
	Total    int  // X-Total
	HasTotal bool // false when GitLab omitted X-Total (very large collections)
	NextPage int  // X-Next-Page, 0 on the last page
}

// GetProject retrieves a single project
func (c *Client) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	var glp gitlabProject
	if _, err := c.getJSON(ctx, "/projects/"+projectID, nil, &glp); err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &models.Project{
		ID:                glp.ID,
		Name:              glp.Name,
		PathWithNamespace: glp.PathWithNamespace,
		WebURL:            glp.WebURL,
	}, nil
}

// ListMergeRequests retrieves one page of merge requests, newest first
func (c *Client) ListMergeRequests(ctx context.Context, projectID string, opts ListMergeRequestsOptions) ([]models.MergeRequest, *PageInfo, error) {
	query := url.Values{}
	if opts.State != "" {
		query.Set("state", opts.State)
	}
	perPage := opts.PerPage
	if perPage <= 0 || perPage > MaxPageSize {
		perPage = MaxPageSize
	}
	page := opts.Page
	if page <= 0 {
		page = 1
	}
	query.Set("per_page", strconv.Itoa(perPage))
	query.Set("page", strconv.Itoa(page))
	query.Set("order_by", "created_at")
	query.Set("sort", "desc")
	if opts.CreatedAfter != nil {
		query.Set("created_after", opts.CreatedAfter.UTC().Format(time.RFC3339))
	}

	var glMRs []gitlabMergeRequest
	resp, err := c.getJSON(ctx, "/projects/"+projectID+"/merge_requests", query, &glMRs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list %s merge requests: %w", opts.State, err)
	}

	return convertMergeRequests(glMRs), pageInfo(resp), nil
}

// CountMergeRequests returns X-Total for the given state using a one-item page.
// ok is false when GitLab did not report a total.
func (c *Client) CountMergeRequests(ctx context.Context, projectID, state string) (total int, ok bool, err error) {
	_, info, err := c.ListMergeRequests(ctx, projectID, ListMergeRequestsOptions{
		State:   state,
		Page:    1,
		PerPage: 1,
	})
	if err != nil {
		return 0, false, err
	}
	return info.Total, info.HasTotal, nil
}

// GetMergeRequest retrieves a single merge request by its project-level iid
func (c *Client) GetMergeRequest(ctx context.Context, projectID string, iid int) (*models.MergeRequest, error) {
	var glMR gitlabMergeRequest
	path := fmt.Sprintf("/projects/%s/merge_requests/%d", projectID, iid)
	if _, err := c.getJSON(ctx, path, nil, &glMR); err != nil {
		return nil, fmt.Errorf("failed to get merge request !%d: %w", iid, err)
	}

	mr := convertMergeRequest(glMR)
	return &mr, nil
}

// ListMergeRequestNotes retrieves every note of a merge request
func (c *Client) ListMergeRequestNotes(ctx context.Context, projectID string, iid int) ([]models.Note, error) {
	path := fmt.Sprintf("/projects/%s/merge_requests/%d/notes", projectID, iid)

	var notes []models.Note
	err := eachPage(func(page int) (int, error) {
		var glNotes []gitlabNote
		resp, err := c.getJSON(ctx, path, pageQuery(page), &glNotes)
		if err != nil {
			return 0, err
		}
		for _, gln := range glNotes {
			notes = append(notes, convertNote(gln))
		}
		return pageInfo(resp).NextPage, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notes of merge request !%d: %w", iid, err)
	}

	return notes, nil
}

// ListMergeRequestCommits retrieves every commit of a merge request
func (c *Client) ListMergeRequestCommits(ctx context.Context, projectID string, iid int) ([]models.Commit, error) {
	path := fmt.Sprintf("/projects/%s/merge_requests/%d/commits", projectID, iid)

	var commits []models.Commit
	err := eachPage(func(page int) (int, error) {
		var glCommits []gitlabCommit
		resp, err := c.getJSON(ctx, path, pageQuery(page), &glCommits)
		if err != nil {
			return 0, err
		}
		for _, glc := range glCommits {
			commits = append(commits, convertCommit(glc))
		}
		return pageInfo(resp).NextPage, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list commits of merge request !%d: %w", iid, err)
	}

	return commits, nil
}

// eachPage calls fetch for page 1, 2, ... while GitLab reports a next page.
func eachPage(fetch func(page int) (int, error)) error {
	page := 1
	for {
		next, err := fetch(page)
		if err != nil {
			return err
		}
		if next <= page {
			return nil
		}
		page = next
	}
}

func pageQuery(page int) url.Values {
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(MaxPageSize))
	query.Set("page", strconv.Itoa(page))
	return query
}

func pageInfo(resp *Response) *PageInfo {
	info := &PageInfo{}
	info.Total, info.HasTotal = headerInt(resp.Header, "X-Total")
	info.NextPage, _ = headerInt(resp.Header, "X-Next-Page")
	return info
}
