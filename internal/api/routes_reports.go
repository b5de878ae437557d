package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mquintal/aitutor/internal/handlers"
)

func registerReportRoutes(r *gin.Engine, requireAuth gin.HandlerFunc, h *handlers.ReportHandler) {
	reports := r.Group("/api/reports")
	reports.Use(requireAuth)
	{
		reports.POST("", h.Add)
		reports.GET("", h.List)
		reports.POST("/:id/email", h.Email)
	}
}
