package handlers

import (
	"net/http"

	"github.com/alimgiray/mrscope/internal/apperr"
	"github.com/alimgiray/mrscope/pkg/logger"
	"github.com/gin-gonic/gin"
)

const (
	unauthorizedMessage = "Unauthorized. Please check your GitLab token."
	notFoundMessage     = "Project not found. Please check your REPOSITORY_URL."
)

// respondError translates err into the API's error response
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	kind := apperr.Classify(err)
	status := apperr.HTTPStatus(kind)

	switch kind {
	case apperr.KindUnauthorized:
		c.JSON(status, gin.H{"error": unauthorizedMessage})
	case apperr.KindNotFound:
		c.JSON(status, gin.H{"error": notFoundMessage})
	default:
		logger.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
		c.JSON(status, gin.H{
			"error":   "Internal Server Error",
			"message": err.Error(),
		})
	}
}

// badRequest responds with 400 and message
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Bad Request",
		"message": message,
	})
}
