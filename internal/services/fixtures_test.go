package services

import (
	"time"

	"github.com/alimgiray/mrscope/internal/gitlab"
	"github.com/alimgiray/mrscope/internal/models"
)

var baseTime = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func newMR(iid int, state, author string, createdAt time.Time) models.MergeRequest {
	return models.MergeRequest{
		ID:        1000 + iid,
		IID:       iid,
		Title:     "Merge request",
		State:     state,
		Author:    author,
		CreatedAt: createdAt,
	}
}

// newScenarioClient returns a project with three merge requests:
//
//	!1 opened by alice, no activity
//	!2 closed by bob, one comment by alice reacted to by bob and carol
//	!3 opened by alice, two comments by bob (the first reacted to by carol)
//	   and one commit by dave
func newScenarioClient() *gitlab.MockClient {
	day := 24 * time.Hour
	return &gitlab.MockClient{
		Project: &models.Project{ID: 42, Name: "demo", PathWithNamespace: "group/demo"},
		MergeRequests: []models.MergeRequest{
			newMR(1, models.StateOpened, "alice", baseTime.Add(-3*day)),
			newMR(2, models.StateClosed, "bob", baseTime.Add(-2*day)),
			newMR(3, models.StateOpened, "alice", baseTime.Add(-1*day)),
		},
		Notes: map[int][]models.Note{
			2: {
				{ID: 21, Author: "alice", CreatedAt: baseTime.Add(-2*day + time.Hour), Reactors: []string{"bob", "carol"}},
			},
			3: {
				{ID: 31, Author: "bob", CreatedAt: baseTime.Add(-1*day + time.Hour), Reactors: []string{"carol"}},
				{ID: 32, Author: "bob", CreatedAt: baseTime.Add(-1*day + 2*time.Hour)},
			},
		},
		Commits: map[int][]models.Commit{
			3: {
				{SHA: "abc123", AuthorName: "dave", CreatedAt: baseTime.Add(-1 * day)},
			},
		},
	}
}

func fixedNow() time.Time {
	return baseTime
}
