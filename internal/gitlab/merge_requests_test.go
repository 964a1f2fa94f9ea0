package gitlab

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/alimgiray/mrscope/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMergeRequests(t *testing.T) {
	cutoff := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	responseBody := `[
		{"id": 1001, "iid": 7, "title": "Add scanner", "state": "opened",
		 "author": {"username": "alice"}, "created_at": "2024-04-10T10:00:00Z",
		 "web_url": "https://gitlab.example.com/group/demo/-/merge_requests/7"}
	]`

	mock := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.Equal(t, "/api/v4/projects/group%2Fdemo/merge_requests", req.URL.EscapedPath())
			assert.Equal(t, "opened", q.Get("state"))
			assert.Equal(t, "100", q.Get("per_page"))
			assert.Equal(t, "2", q.Get("page"))
			assert.Equal(t, "2024-04-01T00:00:00Z", q.Get("created_after"))
			return jsonResponse(http.StatusOK, responseBody, http.Header{
				"X-Total":     []string{"101"},
				"X-Next-Page": []string{""},
			}), nil
		},
	}

	mrs, info, err := newTestClient(mock).ListMergeRequests(context.Background(), "group%2Fdemo", ListMergeRequestsOptions{
		State:        "opened",
		Page:         2,
		CreatedAfter: &cutoff,
	})

	require.NoError(t, err)
	require.Len(t, mrs, 1)
	assert.Equal(t, 7, mrs[0].IID)
	assert.Equal(t, "alice", mrs[0].Author)
	assert.Equal(t, time.Date(2024, 4, 10, 10, 0, 0, 0, time.UTC), mrs[0].CreatedAt.UTC())
	assert.True(t, info.HasTotal)
	assert.Equal(t, 101, info.Total)
	assert.Equal(t, 0, info.NextPage)
}

func TestCountMergeRequests(t *testing.T) {
	testCases := []struct {
		name      string
		header    http.Header
		wantTotal int
		wantOK    bool
	}{
		{"with total", http.Header{"X-Total": []string{"250"}}, 250, true},
		{"without total", http.Header{}, 0, false},
		{"malformed total", http.Header{"X-Total": []string{"many"}}, 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockHTTPClient{
				doFunc: func(req *http.Request) (*http.Response, error) {
					assert.Equal(t, "1", req.URL.Query().Get("per_page"))
					assert.Equal(t, "all", req.URL.Query().Get("state"))
					return jsonResponse(http.StatusOK, `[]`, tc.header), nil
				},
			}

			total, ok, err := newTestClient(mock).CountMergeRequests(context.Background(), "42", "all")

			require.NoError(t, err)
			assert.Equal(t, tc.wantTotal, total)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestGetProject_NotFound(t *testing.T) {
	mock := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusNotFound, `{"message":"404 Project Not Found"}`, nil), nil
		},
	}

	project, err := newTestClient(mock).GetProject(context.Background(), "42")

	assert.Nil(t, project)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.False(t, errors.Is(err, apperr.ErrTransient))
}

func TestListMergeRequestNotes_FollowsNextPage(t *testing.T) {
	pages := map[string]string{
		"1": `[{"id": 1, "author": {"username": "bob"}, "created_at": "2024-04-11T09:00:00Z",
		        "award_emoji": [{"name": "thumbsup", "user": {"username": "carol"}},
		                        {"name": "tada", "user": {"username": "dave"}}]}]`,
		"2": `[{"id": 2, "author": {"username": "alice"}, "created_at": "2024-04-12T09:00:00Z", "system": true}]`,
	}

	mock := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			page := req.URL.Query().Get("page")
			assert.Equal(t, "/api/v4/projects/42/merge_requests/7/notes", req.URL.Path)
			header := http.Header{}
			if n, _ := strconv.Atoi(page); n < 2 {
				header.Set("X-Next-Page", strconv.Itoa(n+1))
			}
			return jsonResponse(http.StatusOK, pages[page], header), nil
		},
	}

	notes, err := newTestClient(mock).ListMergeRequestNotes(context.Background(), "42", 7)

	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, 2, mock.calls)
	assert.Equal(t, "bob", notes[0].Author)
	assert.Equal(t, []string{"carol", "dave"}, notes[0].Reactors)
	assert.True(t, notes[1].System)
	assert.Empty(t, notes[1].Reactors)
}

func TestListMergeRequestCommits(t *testing.T) {
	mock := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "/api/v4/projects/42/merge_requests/7/commits", req.URL.Path)
			return jsonResponse(http.StatusOK, `[
				{"id": "abc123", "author_name": "Erin", "created_at": "2024-04-10T11:00:00Z"},
				{"id": "def456", "author_name": "alice", "created_at": "2024-04-10T12:00:00Z"}
			]`, nil), nil
		},
	}

	commits, err := newTestClient(mock).ListMergeRequestCommits(context.Background(), "42", 7)

	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "Erin", commits[0].AuthorName)
	assert.Equal(t, "def456", commits[1].SHA)
}

func TestListMergeRequestCommits_DecodeErrorIsTransient(t *testing.T) {
	mock := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `not json`, nil), nil
		},
	}

	_, err := newTestClient(mock).ListMergeRequestCommits(context.Background(), "42", 7)

	assert.True(t, errors.Is(err, apperr.ErrTransient))
}
