package handlers

import (
	"net/http"

	"github.com/alimgiray/mrscope/internal/models"
	"github.com/alimgiray/mrscope/internal/services"
	"github.com/alimgiray/mrscope/pkg/config"
	"github.com/gin-gonic/gin"
)

type MergeRequestHandler struct {
	repositoryService   *services.RepositoryService
	mergeRequestService *services.MergeRequestService
	contributorService  *services.ContributorService
	scanConfig          config.ScanConfig
}

func NewMergeRequestHandler(repositoryService *services.RepositoryService, mergeRequestService *services.MergeRequestService,
	contributorService *services.ContributorService, scanConfig config.ScanConfig) *MergeRequestHandler {
	return &MergeRequestHandler{
		repositoryService:   repositoryService,
		mergeRequestService: mergeRequestService,
		contributorService:  contributorService,
		scanConfig:          scanConfig,
	}
}

// mergeRequestsQuery holds the query parameters of the listing endpoint
type mergeRequestsQuery struct {
	RepositoryURL string `form:"repository_url"`
	Limit         int    `form:"limit"`
	MaxAgeDays    int    `form:"max_age_days"`
}

// ListMergeRequests returns recent opened and closed merge requests, newest first
func (h *MergeRequestHandler) ListMergeRequests(c *gin.Context) {
	query := mergeRequestsQuery{
		Limit:      h.scanConfig.DefaultLimit,
		MaxAgeDays: h.scanConfig.DefaultMaxAgeDays,
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, "limit and max_age_days must be integers")
		return
	}

	projectID, err := h.repositoryService.ResolveProject(query.RepositoryURL)
	if err != nil {
		respondError(c, err)
		return
	}

	mrs, err := h.mergeRequestService.ScanMergeRequests(c.Request.Context(), projectID, query.Limit, query.MaxAgeDays)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mrs)
}

// ListMergeRequestsWithParticipants returns recent merge requests with their participants
func (h *MergeRequestHandler) ListMergeRequestsWithParticipants(c *gin.Context) {
	request := models.ScanRequest{
		Total:      h.scanConfig.DefaultLimit,
		MaxAgeDays: h.scanConfig.DefaultMaxAgeDays,
	}
	if err := c.ShouldBindQuery(&request); err != nil {
		badRequest(c, "total and max_age_days must be integers")
		return
	}

	projectID, err := h.repositoryService.ResolveProject(request.RepositoryURL)
	if err != nil {
		respondError(c, err)
		return
	}

	mrs, err := h.contributorService.ScanAndAttachParticipants(c.Request.Context(), projectID, request.Total, request.MaxAgeDays)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mrs)
}

// TotalMergeRequests returns the number of merge requests in the project
func (h *MergeRequestHandler) TotalMergeRequests(c *gin.Context) {
	projectID, err := h.repositoryService.ResolveProject(c.Query("repository_url"))
	if err != nil {
		respondError(c, err)
		return
	}

	total, known, err := h.mergeRequestService.CountMergeRequests(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_merge_requests": total,
		"total_known":          known,
	})
}
