package models

import (
	"time"
)

// Commit represents a commit that belongs to a merge request
type Commit struct {
	SHA        string    `json:"sha"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}
