package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mquintal/aitutor/internal/handlers"
)

func registerQuizRoutes(r *gin.Engine, requireAuth gin.HandlerFunc, h *handlers.QuizHandler) {
	quizzes := r.Group("/api/quizzes")
	quizzes.Use(requireAuth)
	{
		quizzes.POST("", h.Create)
		quizzes.GET("/:id", h.Get)
		quizzes.POST("/:id/attempts", h.StartAttempt)
	}

	attempts := r.Group("/api/attempts")
	attempts.Use(requireAuth)
	{
		attempts.POST("/:id/responses", h.RecordResponse)
		attempts.POST("/:id/complete", h.CompleteAttempt)
	}

	r.GET("/api/history", requireAuth, h.History)
}
