package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContributorRecord(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c := NewContributor("alice")

	assert.Equal(t, 0, c.Total())
	assert.NotNil(t, c.Timeline)

	c.Record(ActionOpened, at)
	c.Record(ActionCommitted, at)
	c.Record(ActionCommented, at.Add(time.Hour))
	c.Record(ActionReacted, at.Add(time.Hour))
	c.Record(ActionReacted, at.Add(2*time.Hour))
	c.Record(Action("approved"), at)

	assert.Equal(t, 1, c.Opened)
	assert.Equal(t, 1, c.Committed)
	assert.Equal(t, 1, c.Commented)
	assert.Equal(t, 2, c.Reacted)
	assert.Equal(t, 5, c.Total())
	assert.Len(t, c.Timeline, 5, "unknown actions are not recorded")
	assert.Equal(t, TimelineEvent{Timestamp: at.Add(2 * time.Hour), Action: ActionReacted}, c.Timeline[4])
}

func TestUserSet(t *testing.T) {
	s := NewUserSet("bob", "alice", "", "bob")
	s.Add("carol")
	s.Add("")

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has("alice"))
	assert.False(t, s.Has(""))
	assert.Equal(t, []string{"alice", "bob", "carol"}, s.Sorted())
}

func TestContributorReportSetEstimate(t *testing.T) {
	r := &ContributorReport{}
	r.SetEstimate(1500*time.Millisecond, 10)

	assert.Equal(t, 15*time.Second, r.EstimatedTotalTime)
	assert.Equal(t, float64(15), r.EstimatedSeconds)
	assert.Equal(t, 1500*time.Millisecond, r.SampleDuration)
}

func TestScanJobLifecycle(t *testing.T) {
	job := NewScanJob("group%2Fproject")
	assert.NotEmpty(t, job.ID)
	assert.True(t, job.IsPending())

	job.MarkStarted()
	assert.Equal(t, JobStatusInProgress, job.Status)
	assert.NotNil(t, job.StartedAt)

	job.SetProgress(3, 10, 20*time.Second)
	assert.Equal(t, 3, job.ProcessedMergeRequests)
	assert.Equal(t, float64(20), job.EstimatedSeconds)

	job.MarkCompleted(&ContributorReport{TotalMergeRequests: 10, ScannedMergeRequests: 10})
	assert.True(t, job.IsFinished())
	assert.Equal(t, 10, job.ProcessedMergeRequests)

	failed := NewScanJob("1")
	failed.MarkFailed("unauthorized")
	assert.True(t, failed.IsFinished())
	assert.Equal(t, "unauthorized", *failed.ErrorMessage)
}
