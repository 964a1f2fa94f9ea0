package handlers

import (
	"errors"
	"net/http"

	"github.com/alimgiray/mrscope/internal/apperr"
	"github.com/alimgiray/mrscope/internal/services"
	"github.com/gin-gonic/gin"
)

type RepositoryHandler struct {
	repositoryService *services.RepositoryService
}

func NewRepositoryHandler(repositoryService *services.RepositoryService) *RepositoryHandler {
	return &RepositoryHandler{repositoryService: repositoryService}
}

type repositoryURLRequest struct {
	RepositoryURL string `json:"repository_url" form:"repository_url" binding:"required"`
}

// GetRepositoryURL returns the repository currently scanned
func (h *RepositoryHandler) GetRepositoryURL(c *gin.Context) {
	c.JSON(http.StatusOK, h.repositoryService.Get())
}

// SetRepositoryURL changes the repository scanned by default
func (h *RepositoryHandler) SetRepositoryURL(c *gin.Context) {
	var request repositoryURLRequest
	if err := c.ShouldBind(&request); err != nil {
		badRequest(c, "repository_url is required")
		return
	}

	settings, err := h.repositoryService.Set(request.RepositoryURL)
	if err != nil {
		if errors.Is(err, apperr.ErrConfiguration) {
			badRequest(c, err.Error())
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}
