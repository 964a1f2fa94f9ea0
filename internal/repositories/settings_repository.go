package repositories

import (
	"sync"
	"time"

	"github.com/alimgiray/mrscope/internal/models"
)

// SettingsRepository keeps the repository settings in memory
type SettingsRepository struct {
	mu       sync.RWMutex
	settings models.RepositorySettings
}

// NewSettingsRepository creates a new SettingsRepository seeded with repositoryURL
func NewSettingsRepository(repositoryURL string) *SettingsRepository {
	return &SettingsRepository{
		settings: models.RepositorySettings{
			RepositoryURL: repositoryURL,
			UpdatedAt:     time.Now(),
		},
	}
}

// Get returns a copy of the current settings
func (r *SettingsRepository) Get() models.RepositorySettings {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.settings
}

// SetRepositoryURL replaces the stored repository URL
func (r *SettingsRepository) SetRepositoryURL(repositoryURL string) models.RepositorySettings {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings.RepositoryURL = repositoryURL
	r.settings.UpdatedAt = time.Now()
	return r.settings
}
