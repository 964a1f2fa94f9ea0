package models

import (
	"time"
)

// Action is the kind of participation recorded on a contributor timeline
type Action string

const (
	ActionOpened    Action = "opened"
	ActionCommitted Action = "committed"
	ActionCommented Action = "commented"
	ActionReacted   Action = "reacted"
)

// TimelineEvent is a single participation event
type TimelineEvent struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Action    Action    `json:"action" yaml:"action"`
}

// Contributor holds the aggregated participation of one username
type Contributor struct {
	Username  string          `json:"username" yaml:"username"`
	Opened    int             `json:"opened" yaml:"opened"`
	Committed int             `json:"committed" yaml:"committed"`
	Commented int             `json:"commented" yaml:"commented"`
	Reacted   int             `json:"reacted" yaml:"reacted"`
	Timeline  []TimelineEvent `json:"timeline" yaml:"timeline"`
}

// NewContributor creates a contributor with zero counters and an empty timeline
func NewContributor(username string) *Contributor {
	return &Contributor{
		Username: username,
		Timeline: make([]TimelineEvent, 0),
	}
}

// Record increments the counter for action and appends the event to the timeline
func (c *Contributor) Record(action Action, at time.Time) {
	switch action {
	case ActionOpened:
		c.Opened++
	case ActionCommitted:
		c.Committed++
	case ActionCommented:
		c.Commented++
	case ActionReacted:
		c.Reacted++
	default:
		return
	}
	c.Timeline = append(c.Timeline, TimelineEvent{Timestamp: at, Action: action})
}

// Total returns the sum of all counters
func (c *Contributor) Total() int {
	return c.Opened + c.Committed + c.Commented + c.Reacted
}
