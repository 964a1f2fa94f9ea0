package services

import (
	"context"
	"fmt"

	"github.com/alimgiray/mrscope/internal/gitlab"
	"github.com/alimgiray/mrscope/internal/models"
)

// MergeRequestDetails bundles everything fetched for one merge request
type MergeRequestDetails struct {
	MergeRequest *models.MergeRequest
	Notes        []models.Note
	Commits      []models.Commit
	Participants *models.UserSet
}

// ParticipantService resolves who took part in a merge request
type ParticipantService struct {
	api gitlab.API
}

// NewParticipantService creates a new participant service
func NewParticipantService(api gitlab.API) *ParticipantService {
	return &ParticipantService{api: api}
}

// ResolveParticipants returns the author, note authors, note reactors and
// commit author names of a merge request as a set.
func (s *ParticipantService) ResolveParticipants(ctx context.Context, projectID string, iid int) (*models.UserSet, error) {
	details, err := s.ResolveDetails(ctx, projectID, iid)
	if err != nil {
		return nil, err
	}
	return details.Participants, nil
}

// ResolveDetails fetches the merge request, its notes and its commits.
// The notes are returned so callers can attribute comments without a second fetch.
func (s *ParticipantService) ResolveDetails(ctx context.Context, projectID string, iid int) (*MergeRequestDetails, error) {
	mr, err := s.api.GetMergeRequest(ctx, projectID, iid)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve participants: %w", err)
	}

	notes, err := s.api.ListMergeRequestNotes(ctx, projectID, iid)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve participants: %w", err)
	}

	commits, err := s.api.ListMergeRequestCommits(ctx, projectID, iid)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve participants: %w", err)
	}

	participants := models.NewUserSet(mr.Author)
	for _, note := range notes {
		participants.Add(note.Author)
		for _, reactor := range note.Reactors {
			participants.Add(reactor)
		}
	}
	// Commit authors are git names, not GitLab usernames; kept as reported.
	for _, commit := range commits {
		participants.Add(commit.AuthorName)
	}

	return &MergeRequestDetails{
		MergeRequest: mr,
		Notes:        notes,
		Commits:      commits,
		Participants: participants,
	}, nil
}
