package models

import (
	"time"
)

// MergeRequest states as used by the GitLab API
const (
	StateOpened = "opened"
	StateClosed = "closed"
	StateMerged = "merged"
	StateAll    = "all"
)

// MergeRequest represents a GitLab merge request
type MergeRequest struct {
	ID           int       `json:"id" yaml:"id"`
	IID          int       `json:"iid" yaml:"iid"`
	Title        string    `json:"title" yaml:"title"`
	State        string    `json:"state" yaml:"state"`
	Author       string    `json:"author" yaml:"author"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
	WebURL       string    `json:"web_url" yaml:"web_url"`
	Participants []string  `json:"participants,omitempty" yaml:"participants,omitempty"` // sorted usernames, set once attached
}

// Note represents a comment on a merge request together with its award emoji
type Note struct {
	ID        int       `json:"id"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	System    bool      `json:"system"`
	Reactors  []string  `json:"reactors"` // one entry per award emoji, in API order
}
