package models

import (
	"time"
)

// ScanRequest describes which project to scan and how much of it
type ScanRequest struct {
	RepositoryURL string `json:"repository_url" form:"repository_url"`
	Total         int    `json:"total" form:"total"`
	MaxAgeDays    int    `json:"max_age_days" form:"max_age_days"`
}

// ContributorReport is the result of a full-project contributor scan.
// EstimatedTotalTime is extrapolated from a single timed merge request and is
// only a rough guide.
type ContributorReport struct {
	ProjectID            string         `json:"project_id" yaml:"project_id"`
	Contributors         []*Contributor `json:"contributors" yaml:"contributors"`
	TotalMergeRequests   int            `json:"total_merge_requests" yaml:"total_merge_requests"`
	ScannedMergeRequests int            `json:"scanned_merge_requests" yaml:"scanned_merge_requests"`
	EstimatedTotalTime   time.Duration  `json:"-" yaml:"-"`
	SampleDuration       time.Duration  `json:"-" yaml:"-"`
	EstimatedSeconds     float64        `json:"estimated_total_time_seconds" yaml:"estimated_total_time_seconds"`
	ElapsedSeconds       float64        `json:"elapsed_seconds" yaml:"elapsed_seconds"`
}

// SetEstimate stores the single-sample extrapolation
func (r *ContributorReport) SetEstimate(sample time.Duration, total int) {
	r.SampleDuration = sample
	r.EstimatedTotalTime = sample * time.Duration(total)
	r.EstimatedSeconds = r.EstimatedTotalTime.Seconds()
}
