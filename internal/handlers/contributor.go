package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alimgiray/mrscope/internal/apperr"
	"github.com/alimgiray/mrscope/internal/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ContributorHandler struct {
	repositoryService  *services.RepositoryService
	contributorService *services.ContributorService
	exportService      *services.ExportService
	jobService         *services.ScanJobService
}

func NewContributorHandler(repositoryService *services.RepositoryService, contributorService *services.ContributorService,
	exportService *services.ExportService, jobService *services.ScanJobService) *ContributorHandler {
	return &ContributorHandler{
		repositoryService:  repositoryService,
		contributorService: contributorService,
		exportService:      exportService,
		jobService:         jobService,
	}
}

// GetContributors scans the whole project and returns the contributor report
func (h *ContributorHandler) GetContributors(c *gin.Context) {
	projectID, err := h.repositoryService.ResolveProject(c.Query("repository_url"))
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.contributorService.AggregateContributors(c.Request.Context(), projectID, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportContributors scans the whole project and returns the report as XLSX
func (h *ContributorHandler) ExportContributors(c *gin.Context) {
	projectID, err := h.repositoryService.ResolveProject(c.Query("repository_url"))
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.contributorService.AggregateContributors(c.Request.Context(), projectID, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.exportService.WriteContributors(&buf, report); err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("contributors-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// CreateScanJob starts a background contributor scan
func (h *ContributorHandler) CreateScanJob(c *gin.Context) {
	projectID, err := h.repositoryService.ResolveProject(c.Query("repository_url"))
	if err != nil {
		respondError(c, err)
		return
	}

	job, err := h.jobService.Create(projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, job)
}

// GetScanJob returns a scan job with its progress and, once finished, its result
func (h *ContributorHandler) GetScanJob(c *gin.Context) {
	job, err := h.jobService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Scan job not found"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListScanJobs returns the scan jobs of the project, newest first
func (h *ContributorHandler) ListScanJobs(c *gin.Context) {
	projectID, err := h.repositoryService.ResolveProject(c.Query("repository_url"))
	if err != nil {
		respondError(c, err)
		return
	}

	jobs, err := h.jobService.ListByProject(projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}
