package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mquintal/aitutor/internal/handlers"
)

func registerAuthRoutes(r *gin.Engine, requireAuth gin.HandlerFunc, h *handlers.AuthHandler) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", requireAuth, h.Me)
	}
}
