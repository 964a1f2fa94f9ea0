package ui

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/alimgiray/mrscope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadRight(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"pad short string", "hello", 10, "hello     "},
		{"no padding needed", "hello", 5, "hello"},
		{"string longer than width", "hello world", 5, "hello world"},
		{"empty string", "", 5, "     "},
		{"unicode characters", "こんにちは", 15, "こんにちは     "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PadRight(tt.input, tt.width))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "hello...", Truncate("hello world", 8))
}

func sampleReport() *models.ContributorReport {
	report := &models.ContributorReport{
		ProjectID:            "group%2Fdemo",
		TotalMergeRequests:   2,
		ScannedMergeRequests: 2,
		Contributors: []*models.Contributor{
			{Username: "alice", Opened: 2, Commented: 1, Timeline: []models.TimelineEvent{}},
			{Username: "bob", Committed: 1, Reacted: 3, Timeline: []models.TimelineEvent{}},
		},
	}
	report.SetEstimate(1500*time.Millisecond, 2)
	return report
}

func TestRender(t *testing.T) {
	report := sampleReport()
	table := func(w io.Writer) error { return WriteContributorTable(w, report) }

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, OutputJSON, report, table))

		var decoded models.ContributorReport
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Len(t, decoded.Contributors, 2)
		assert.Equal(t, 3.0, decoded.EstimatedSeconds)
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, OutputYAML, report, table))

		assert.Contains(t, buf.String(), "username: alice")
		assert.Contains(t, buf.String(), "scanned_merge_requests: 2")
	})

	t.Run("Table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, OutputTable, report, table))

		lines := strings.Split(buf.String(), "\n")
		assert.Equal(t, "USERNAME  OPENED  COMMITTED  COMMENTED  REACTED  TOTAL", lines[0])
		assert.Equal(t, "alice     2       0          1          0        3", lines[1])
		assert.Equal(t, "bob       0       1          0          3        4", lines[2])
		assert.Contains(t, buf.String(), "2 merge requests scanned of 2, estimated scan time 3s")
	})

	t.Run("Unknown format", func(t *testing.T) {
		err := Render(io.Discard, "xml", report, table)
		assert.Error(t, err)
	})
}

func TestWriteMergeRequestTable(t *testing.T) {
	created := time.Date(2026, 9, 30, 8, 15, 0, 0, time.UTC)
	mrs := []models.MergeRequest{
		{IID: 12, State: "opened", Author: "alice", CreatedAt: created, Title: "Add scanner"},
		{IID: 7, State: "closed", Author: "bob", CreatedAt: created.Add(-time.Hour), Title: "Fix"},
	}

	t.Run("Without participants", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteMergeRequestTable(&buf, mrs))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.NotContains(t, lines[0], "PARTICIPANTS")
		assert.True(t, strings.HasPrefix(lines[1], "!12"))
		assert.Contains(t, lines[1], "2026-09-30 08:15")
	})

	t.Run("With participants", func(t *testing.T) {
		withParticipants := append([]models.MergeRequest(nil), mrs...)
		withParticipants[0].Participants = []string{"alice", "bob"}

		var buf bytes.Buffer
		require.NoError(t, WriteMergeRequestTable(&buf, withParticipants))

		assert.Contains(t, buf.String(), "PARTICIPANTS")
		assert.Contains(t, buf.String(), "alice, bob")
	})
}

func TestWriteParticipantTable(t *testing.T) {
	mr := &models.MergeRequest{IID: 3, Title: "Refactor", Author: "alice"}

	var buf bytes.Buffer
	require.NoError(t, WriteParticipantTable(&buf, mr, []string{"alice", "bob"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"!3 Refactor (alice)",
		"PARTICIPANT  ROLE",
		"alice        author",
		"bob",
	}, lines)
}
