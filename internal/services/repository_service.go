package services

import (
	"fmt"
	"strings"

	"github.com/alimgiray/mrscope/internal/apperr"
	"github.com/alimgiray/mrscope/internal/gitlab"
	"github.com/alimgiray/mrscope/internal/models"
	"github.com/alimgiray/mrscope/internal/repositories"
)

// RepositoryService manages which GitLab repository is scanned
type RepositoryService struct {
	settingsRepo *repositories.SettingsRepository
}

// NewRepositoryService creates a new repository service
func NewRepositoryService(settingsRepo *repositories.SettingsRepository) *RepositoryService {
	return &RepositoryService{settingsRepo: settingsRepo}
}

// Get returns the current repository settings
func (s *RepositoryService) Get() models.RepositorySettings {
	return s.settingsRepo.Get()
}

// Set validates and stores a new repository URL
func (s *RepositoryService) Set(repositoryURL string) (models.RepositorySettings, error) {
	repositoryURL = strings.TrimSpace(repositoryURL)
	if repositoryURL == "" {
		return models.RepositorySettings{}, fmt.Errorf("%w: repository_url is required", apperr.ErrConfiguration)
	}
	if _, err := gitlab.ProjectIDFromRepositoryURL(repositoryURL); err != nil {
		return models.RepositorySettings{}, err
	}

	return s.settingsRepo.SetRepositoryURL(repositoryURL), nil
}

// ResolveProject returns the GitLab project ID for override, or for the
// stored repository URL when override is empty.
func (s *RepositoryService) ResolveProject(override string) (string, error) {
	repositoryURL := strings.TrimSpace(override)
	if repositoryURL == "" {
		repositoryURL = s.settingsRepo.Get().RepositoryURL
	}
	if repositoryURL == "" {
		return "", fmt.Errorf("%w: REPOSITORY_URL is not set", apperr.ErrConfiguration)
	}

	return gitlab.ProjectIDFromRepositoryURL(repositoryURL)
}
