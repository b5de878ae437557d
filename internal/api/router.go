package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/mquintal/aitutor/internal/app"
	iauth "github.com/mquintal/aitutor/internal/auth"
	"github.com/mquintal/aitutor/internal/handlers"
	"github.com/mquintal/aitutor/internal/middleware"
	"github.com/mquintal/aitutor/internal/services"
	"github.com/mquintal/aitutor/pkg/mail"
)

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, cfg *app.Config, mailer mail.Mailer) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	users, err := services.NewUserService(db)
	if err != nil {
		return nil, err
	}

	inviteOpts := []services.InviteOption{}
	if cfg.Invites.TTL > 0 {
		inviteOpts = append(inviteOpts, services.WithInviteTTL(cfg.Invites.TTL))
	}
	if cfg.Invites.BaseURL != "" {
		inviteOpts = append(inviteOpts, services.WithInviteBaseURL(cfg.Invites.BaseURL))
	}
	invites, err := services.NewInviteService(db, mailer, inviteOpts...)
	if err != nil {
		return nil, err
	}

	quizzes, err := services.NewQuizService(db)
	if err != nil {
		return nil, err
	}

	reports, err := services.NewReportService(db, mailer)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	r.NoRoute(middleware.NotFoundHandler)

	// Health endpoint (public)
	r.GET("/health", handlers.Health())

	if cfg.Metrics.Enabled {
		endpoint := cfg.Metrics.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	requireAuth := middleware.Auth(jwt)

	registerAuthRoutes(r, requireAuth, handlers.NewAuthHandler(users, invites, jwt))
	registerInviteRoutes(r, requireAuth, handlers.NewInviteHandler(invites))
	registerQuizRoutes(r, requireAuth, handlers.NewQuizHandler(quizzes))
	registerReportRoutes(r, requireAuth, handlers.NewReportHandler(reports))
	registerUserRoutes(r, requireAuth, handlers.NewUserHandler(users))

	return r, nil
}
