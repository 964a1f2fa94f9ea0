package ui

import "github.com/alimgiray/mrscope/internal/models"

// Prompter defines interface for user interaction
type Prompter interface {
	SelectMergeRequest(mrs []models.MergeRequest) (int, error)
}

// DefaultPrompter implements the actual prompting logic
type DefaultPrompter struct{}

// SelectMergeRequest prompts user to select a merge request
func (p *DefaultPrompter) SelectMergeRequest(mrs []models.MergeRequest) (int, error) {
	return SelectMergeRequest(mrs)
}

// MockPrompter for testing
type MockPrompter struct {
	SelectedIID    int
	SelectionError error

	// Call tracking
	SelectMergeRequestCalled bool
	Offered                  []models.MergeRequest
}

// SelectMergeRequest mocks merge request selection
func (m *MockPrompter) SelectMergeRequest(mrs []models.MergeRequest) (int, error) {
	m.SelectMergeRequestCalled = true
	m.Offered = mrs
	return m.SelectedIID, m.SelectionError
}
