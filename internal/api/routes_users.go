package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mquintal/aitutor/internal/handlers"
	"github.com/mquintal/aitutor/internal/middleware"
)

func registerUserRoutes(r *gin.Engine, requireAuth gin.HandlerFunc, h *handlers.UserHandler) {
	users := r.Group("/api/users")
	users.Use(requireAuth, middleware.RequireAdmin())
	{
		users.GET("", h.List)
		users.PATCH("/:id/subscription", h.UpdateSubscription)
	}
}
