package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mquintal/aitutor/internal/handlers"
	"github.com/mquintal/aitutor/internal/middleware"
)

func registerInviteRoutes(r *gin.Engine, requireAuth gin.HandlerFunc, h *handlers.InviteHandler) {
	// Public validity check used by the registration form.
	r.GET("/api/invites/:token", h.Peek)

	invites := r.Group("/api/invites")
	invites.Use(requireAuth)
	{
		// Only admins mint invites; creators manage their own.
		invites.POST("", middleware.RequireAdmin(), h.Create)
		invites.GET("", h.List)
		invites.DELETE("/:id", h.Delete)
	}
}
