package models

import (
	"time"
)

// RepositorySettings holds the repository the scanner targets by default
type RepositorySettings struct {
	RepositoryURL string    `json:"repository_url" yaml:"repository_url"`
	UpdatedAt     time.Time `json:"updated_at" yaml:"updated_at"`
}
