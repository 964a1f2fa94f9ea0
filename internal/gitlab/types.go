package gitlab

import (
	"time"

	"github.com/alimgiray/mrscope/internal/models"
)

// GitLab API response types
type gitlabUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type gitlabProject struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	PathWithNamespace string `json:"path_with_namespace"`
	WebURL            string `json:"web_url"`
}

type gitlabMergeRequest struct {
	ID        int        `json:"id"`
	IID       int        `json:"iid"`
	Title     string     `json:"title"`
	State     string     `json:"state"`
	Author    gitlabUser `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
	WebURL    string     `json:"web_url"`
}

type gitlabAwardEmoji struct {
	ID   int        `json:"id"`
	Name string     `json:"name"`
	User gitlabUser `json:"user"`
}

type gitlabNote struct {
	ID         int                `json:"id"`
	Author     gitlabUser         `json:"author"`
	CreatedAt  time.Time          `json:"created_at"`
	System     bool               `json:"system"`
	AwardEmoji []gitlabAwardEmoji `json:"award_emoji"`
}

type gitlabCommit struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

func convertMergeRequest(glMR gitlabMergeRequest) models.MergeRequest {
	return models.MergeRequest{
		ID:        glMR.ID,
		IID:       glMR.IID,
		Title:     glMR.Title,
		State:     glMR.State,
		Author:    glMR.Author.Username,
		CreatedAt: glMR.CreatedAt,
		WebURL:    glMR.WebURL,
	}
}

func convertMergeRequests(glMRs []gitlabMergeRequest) []models.MergeRequest {
	mrs := make([]models.MergeRequest, len(glMRs))
	for i, glMR := range glMRs {
		mrs[i] = convertMergeRequest(glMR)
	}
	return mrs
}

func convertNote(gln gitlabNote) models.Note {
	reactors := make([]string, 0, len(gln.AwardEmoji))
	for _, award := range gln.AwardEmoji {
		reactors = append(reactors, award.User.Username)
	}
	return models.Note{
		ID:        gln.ID,
		Author:    gln.Author.Username,
		CreatedAt: gln.CreatedAt,
		System:    gln.System,
		Reactors:  reactors,
	}
}

func convertCommit(glc gitlabCommit) models.Commit {
	return models.Commit{
		SHA:        glc.ID,
		AuthorName: glc.AuthorName,
		CreatedAt:  glc.CreatedAt,
	}
}
