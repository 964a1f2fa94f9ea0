package services

import (
	"context"
	"sort"
	"time"

	"github.com/alimgiray/mrscope/internal/gitlab"
	"github.com/alimgiray/mrscope/internal/models"
	"github.com/alimgiray/mrscope/pkg/logger"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const defaultScanWorkers = 4

// ProgressFunc receives scan progress. It may be called from a worker
// goroutine and must be safe for concurrent use.
type ProgressFunc func(processed, total int, estimate time.Duration)

// ContributorService aggregates participation across a project's merge requests
type ContributorService struct {
	api           gitlab.API
	mergeRequests *MergeRequestService
	participants  *ParticipantService
	workers       int
}

// NewContributorService creates a new contributor service. workers bounds the
// number of merge requests processed concurrently.
func NewContributorService(api gitlab.API, mergeRequests *MergeRequestService, participants *ParticipantService, workers int) *ContributorService {
	if workers < 1 {
		workers = defaultScanWorkers
	}
	return &ContributorService{
		api:           api,
		mergeRequests: mergeRequests,
		participants:  participants,
		workers:       workers,
	}
}

// contribution is one attributed action
type contribution struct {
	username string
	action   models.Action
	at       time.Time
}

// mergeRequestDelta holds the contributions of one merge request
type mergeRequestDelta struct {
	contributions []contribution
	duration      time.Duration
}

// ScanAndAttachParticipants scans recent merge requests and fills in the
// participants of each. Order is that of ScanMergeRequests.
func (s *ContributorService) ScanAndAttachParticipants(ctx context.Context, projectID string, total, maxAgeDays int) ([]models.MergeRequest, error) {
	mrs, err := s.mergeRequests.ScanMergeRequests(ctx, projectID, total, maxAgeDays)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range mrs {
		i := i
		g.Go(func() error {
			participants, err := s.participants.ResolveParticipants(gctx, projectID, mrs[i].IID)
			if err != nil {
				return err
			}
			mrs[i].Participants = participants.Sorted()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mrs, nil
}

// AggregateContributors walks every merge request of the project and builds
// per-user counters and timelines. The first failure aborts the scan.
func (s *ContributorService) AggregateContributors(ctx context.Context, projectID string, progress ProgressFunc) (*models.ContributorReport, error) {
	started := time.Now()
	log := logger.WithField("project_id", projectID)

	total, hasTotal, err := s.api.CountMergeRequests(ctx, projectID, models.StateAll)
	if err != nil {
		return nil, err
	}
	if !hasTotal {
		log.Warn("GitLab did not report X-Total; estimate unavailable")
	}

	report := &models.ContributorReport{
		ProjectID:          projectID,
		TotalMergeRequests: total,
	}
	contributors := make(map[string]*models.Contributor)
	processed := 0
	sampled := false

	for page := 1; ; page++ {
		mrs, _, err := s.api.ListMergeRequests(ctx, projectID, gitlab.ListMergeRequestsOptions{
			State:   models.StateAll,
			Page:    page,
			PerPage: gitlab.MaxPageSize,
		})
		if err != nil {
			return nil, err
		}
		if len(mrs) == 0 {
			break
		}

		deltas, err := s.processPage(ctx, projectID, mrs, !sampled, func(sample time.Duration) {
			if progress != nil {
				progress(processed, total, sample*time.Duration(total))
			}
		})
		if err != nil {
			return nil, err
		}

		if !sampled {
			sampled = true
			report.SetEstimate(deltas[0].duration, total)
			log.WithFields(logrus.Fields{
				"sample":   report.SampleDuration.String(),
				"estimate": report.EstimatedTotalTime.String(),
				"total":    total,
			}).Info("Estimated contributor scan time")
		}

		for _, delta := range deltas {
			applyDelta(contributors, delta)
		}
		processed += len(mrs)

		if progress != nil {
			progress(processed, total, report.EstimatedTotalTime)
		}
		log.Debugf("Merged page %d (%d merge requests processed)", page, processed)
	}

	if !hasTotal {
		report.TotalMergeRequests = processed
	}
	report.ScannedMergeRequests = processed
	report.Contributors = sortedContributors(contributors)
	report.ElapsedSeconds = time.Since(started).Seconds()

	log.WithFields(logrus.Fields{
		"contributors":   len(report.Contributors),
		"merge_requests": processed,
		"elapsed":        time.Since(started).String(),
	}).Info("Contributor scan completed")

	return report, nil
}

// processPage resolves every merge request of a page through the bounded pool.
// Deltas are returned in page order. When timeFirst is set the first merge
// request is timed and onSample is called as soon as it finishes.
func (s *ContributorService) processPage(ctx context.Context, projectID string, mrs []models.MergeRequest, timeFirst bool, onSample func(time.Duration)) ([]*mergeRequestDelta, error) {
	deltas := make([]*mergeRequestDelta, len(mrs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range mrs {
		i := i
		timed := timeFirst && i == 0
		g.Go(func() error {
			begin := time.Now()
			delta, err := s.processMergeRequest(gctx, projectID, mrs[i])
			if err != nil {
				return err
			}
			if timed {
				delta.duration = time.Since(begin)
				onSample(delta.duration)
			}
			deltas[i] = delta
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return deltas, nil
}

// processMergeRequest computes the contributions of a single merge request
func (s *ContributorService) processMergeRequest(ctx context.Context, projectID string, mr models.MergeRequest) (*mergeRequestDelta, error) {
	details, err := s.participants.ResolveDetails(ctx, projectID, mr.IID)
	if err != nil {
		return nil, err
	}

	author := details.MergeRequest.Author
	createdAt := mr.CreatedAt
	delta := &mergeRequestDelta{}

	if author != "" {
		delta.add(author, models.ActionOpened, createdAt)
	}
	for _, participant := range details.Participants.Sorted() {
		if participant == author {
			continue
		}
		delta.add(participant, models.ActionCommitted, createdAt)
	}
	for _, note := range details.Notes {
		if note.Author != "" {
			delta.add(note.Author, models.ActionCommented, note.CreatedAt)
		}
		for _, reactor := range note.Reactors {
			if reactor != "" {
				delta.add(reactor, models.ActionReacted, note.CreatedAt)
			}
		}
	}

	return delta, nil
}

func (d *mergeRequestDelta) add(username string, action models.Action, at time.Time) {
	d.contributions = append(d.contributions, contribution{username: username, action: action, at: at})
}

// applyDelta merges one delta into the contributor map
func applyDelta(contributors map[string]*models.Contributor, delta *mergeRequestDelta) {
	for _, c := range delta.contributions {
		contributor, ok := contributors[c.username]
		if !ok {
			contributor = models.NewContributor(c.username)
			contributors[c.username] = contributor
		}
		contributor.Record(c.action, c.at)
	}
}

func sortedContributors(contributors map[string]*models.Contributor) []*models.Contributor {
	result := make([]*models.Contributor, 0, len(contributors))
	for _, c := range contributors {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Username < result[j].Username
	})
	return result
}

