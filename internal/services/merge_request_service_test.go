package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alimgiray/mrscope/internal/apperr"
	"github.com/alimgiray/mrscope/internal/gitlab"
	"github.com/alimgiray/mrscope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMergeRequestService(api gitlab.API) *MergeRequestService {
	s := NewMergeRequestService(api)
	s.now = fixedNow
	return s
}

func TestFetchMergeRequests(t *testing.T) {
	t.Run("Non-positive limit makes no request", func(t *testing.T) {
		client := newScenarioClient()
		s := newTestMergeRequestService(client)

		mrs, err := s.FetchMergeRequests(context.Background(), "42", models.StateOpened, 0, 30)

		require.NoError(t, err)
		assert.Empty(t, mrs)
		assert.Equal(t, 0, client.TotalCalls())
	})

	t.Run("Stops paging once the limit is reached", func(t *testing.T) {
		client := &gitlab.MockClient{}
		for i := 1; i <= 250; i++ {
			client.MergeRequests = append(client.MergeRequests,
				newMR(i, models.StateOpened, "alice", baseTime.Add(-time.Duration(i)*time.Minute)))
		}
		s := newTestMergeRequestService(client)

		mrs, err := s.FetchMergeRequests(context.Background(), "42", models.StateOpened, 120, 0)

		require.NoError(t, err)
		assert.Len(t, mrs, 120)
		assert.Equal(t, 2, client.Calls("ListMergeRequests"))
		assert.Equal(t, 1, mrs[0].IID)
	})

	t.Run("Stops on an empty page", func(t *testing.T) {
		client := newScenarioClient()
		s := newTestMergeRequestService(client)

		mrs, err := s.FetchMergeRequests(context.Background(), "42", models.StateOpened, 100, 0)

		require.NoError(t, err)
		assert.Len(t, mrs, 2)
		assert.Equal(t, 2, client.Calls("ListMergeRequests"))
	})

	t.Run("Sends the age cutoff", func(t *testing.T) {
		client := newScenarioClient()
		s := newTestMergeRequestService(client)

		_, err := s.FetchMergeRequests(context.Background(), "42", models.StateClosed, 10, 30)
		require.NoError(t, err)

		opts := client.LastListOptions()
		require.NotNil(t, opts.CreatedAfter)
		assert.True(t, opts.CreatedAfter.Equal(baseTime.AddDate(0, 0, -30)))
		assert.Equal(t, gitlab.MaxPageSize, opts.PerPage)
	})

	t.Run("Zero max age disables the cutoff", func(t *testing.T) {
		client := newScenarioClient()
		s := newTestMergeRequestService(client)

		_, err := s.FetchMergeRequests(context.Background(), "42", models.StateClosed, 10, 0)
		require.NoError(t, err)

		assert.Nil(t, client.LastListOptions().CreatedAfter)
	})

	t.Run("Old merge requests are filtered out", func(t *testing.T) {
		client := newScenarioClient()
		client.MergeRequests = append(client.MergeRequests,
			newMR(9, models.StateOpened, "zoe", baseTime.AddDate(0, 0, -60)))
		s := newTestMergeRequestService(client)

		mrs, err := s.FetchMergeRequests(context.Background(), "42", models.StateOpened, 10, 30)

		require.NoError(t, err)
		for _, mr := range mrs {
			assert.NotEqual(t, 9, mr.IID)
		}
	})
}

func TestScanMergeRequests(t *testing.T) {
	t.Run("Returns opened and closed newest first", func(t *testing.T) {
		s := newTestMergeRequestService(newScenarioClient())

		mrs, err := s.ScanMergeRequests(context.Background(), "42", 10, 30)

		require.NoError(t, err)
		require.Len(t, mrs, 3)
		assert.Equal(t, []int{3, 2, 1}, iids(mrs))
	})

	t.Run("Truncates to the limit", func(t *testing.T) {
		s := newTestMergeRequestService(newScenarioClient())

		mrs, err := s.ScanMergeRequests(context.Background(), "42", 2, 30)

		require.NoError(t, err)
		assert.Equal(t, []int{3, 2}, iids(mrs))
	})

	t.Run("Ties are broken by iid descending", func(t *testing.T) {
		client := &gitlab.MockClient{
			MergeRequests: []models.MergeRequest{
				newMR(4, models.StateOpened, "alice", baseTime.Add(-time.Hour)),
				newMR(7, models.StateClosed, "bob", baseTime.Add(-time.Hour)),
				newMR(5, models.StateOpened, "carol", baseTime.Add(-2*time.Hour)),
			},
		}
		s := newTestMergeRequestService(client)

		mrs, err := s.ScanMergeRequests(context.Background(), "42", 10, 0)

		require.NoError(t, err)
		assert.Equal(t, []int{7, 4, 5}, iids(mrs))
	})

	t.Run("Upstream not found is surfaced", func(t *testing.T) {
		client := newScenarioClient()
		client.Errors = map[string]error{
			"ListMergeRequests": fmt.Errorf("%w: GET /projects/42/merge_requests returned 404", apperr.ErrNotFound),
		}
		s := newTestMergeRequestService(client)

		_, err := s.ScanMergeRequests(context.Background(), "42", 10, 30)

		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.Classify(err))
	})
}

func TestCountMergeRequests(t *testing.T) {
	s := newTestMergeRequestService(newScenarioClient())

	total, ok, err := s.CountMergeRequests(context.Background(), "42")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, total)
}

func iids(mrs []models.MergeRequest) []int {
	result := make([]int, len(mrs))
	for i, mr := range mrs {
		result[i] = mr.IID
	}
	return result
}
