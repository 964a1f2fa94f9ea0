package handlers

import (
	"github.com/alimgiray/mrscope/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler of the API
type Handlers struct {
	MergeRequests *MergeRequestHandler
	Contributors  *ContributorHandler
	Repository    *RepositoryHandler
	Health        *HealthHandler
	NotFound      *NotFoundHandler
}

// SetupRoutes registers middleware and routes on router
func SetupRoutes(router *gin.Engine, h *Handlers) {
	router.Use(middleware.RequestLogger(), gin.Recovery(), middleware.CORS())

	api := router.Group("/api")
	{
		api.GET("/merge-requests", h.MergeRequests.ListMergeRequests)
		api.GET("/merge-requests-with-participants", h.MergeRequests.ListMergeRequestsWithParticipants)
		api.GET("/total-merge-requests", h.MergeRequests.TotalMergeRequests)

		api.GET("/contributors", h.Contributors.GetContributors)
		api.GET("/contributors/export", h.Contributors.ExportContributors)
		api.GET("/contributors/jobs", h.Contributors.ListScanJobs)
		api.POST("/contributors/jobs", h.Contributors.CreateScanJob)
		api.GET("/contributors/jobs/:id", h.Contributors.GetScanJob)

		api.GET("/repository-url", h.Repository.GetRepositoryURL)
		api.PUT("/repository-url", h.Repository.SetRepositoryURL)
		api.POST("/repository-url", h.Repository.SetRepositoryURL)
	}

	// Health check endpoint
	router.GET("/health", h.Health.HealthCheck)

	router.NoRoute(h.NotFound.NotFound)
}
