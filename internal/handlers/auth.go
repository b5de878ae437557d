package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	iauth "github.com/mquintal/aitutor/internal/auth"
	"github.com/mquintal/aitutor/internal/models"
	"github.com/mquintal/aitutor/internal/services"
	"github.com/mquintal/aitutor/pkg/crypto"
	"github.com/mquintal/aitutor/pkg/errors"
	"github.com/mquintal/aitutor/pkg/metrics"
	"github.com/mquintal/aitutor/pkg/response"
)

// AuthHandler manages account registration, login and identity lookups.
type AuthHandler struct {
	users   *services.UserService
	invites *services.InviteService
	jwt     *iauth.JWTService
}

func NewAuthHandler(users *services.UserService, invites *services.InviteService, jwt *iauth.JWTService) *AuthHandler {
	return &AuthHandler{users: users, invites: invites, jwt: jwt}
}

type registerRequest struct {
	Username    string  `json:"username" validate:"required,min=3,max=64"`
	Password    string  `json:"password" validate:"required,min=8,max=128"`
	Email       *string `json:"email" validate:"omitempty,email"`
	InviteToken string  `json:"invite_token"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":                  user.ID,
		"username":            user.Username,
		"email":               user.Email,
		"subscription_active": user.SubscriptionActive,
		"is_admin":            user.IsAdmin,
		"created_at":          user.CreatedAt,
	}
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ctx := requestContext(c)

	inviteToken := strings.TrimSpace(req.InviteToken)
	if inviteToken != "" {
		// Reject up front so we never create an account against a dead invite.
		invite, err := h.invites.Peek(ctx, inviteToken)
		if err != nil {
			response.Error(c, err)
			return
		}
		if invite == nil || invite.Used || !invite.ExpiresAt.After(time.Now()) {
			response.Error(c, errors.NewBadRequest("invite token is not valid"))
			return
		}
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		response.Error(c, errors.ErrInternalServer)
		return
	}

	user, err := h.users.Create(ctx, services.CreateUserInput{
		Username:     req.Username,
		PasswordHash: hash,
		Email:        req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if inviteToken != "" {
		redeemed, err := h.invites.Redeem(ctx, inviteToken, user.ID)
		if err != nil {
			response.Error(c, err)
			return
		}
		if !redeemed {
			// Someone else consumed the invite between peek and redeem.
			response.Error(c, errors.NewBadRequest("invite token is not valid"))
			return
		}
	}

	response.Success(c, http.StatusCreated, gin.H{"user": userPayload(user)})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ctx := requestContext(c)

	user, err := h.users.GetByUsername(ctx, req.Username)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		response.Error(c, errors.ErrInternalServer)
		return
	}
	if user == nil || !crypto.VerifyPassword(user.PasswordHash, req.Password) {
		// Normalise auth errors to 401
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		response.Error(c, errors.ErrInvalidCredentials)
		return
	}

	token, err := h.jwt.GenerateAccessToken(iauth.AccessTokenInput{
		UserID:    user.ID,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		response.Error(c, errors.ErrInternalServer)
		return
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()

	response.Success(c, http.StatusOK, gin.H{
		"tokens": tokenResponse{AccessToken: token, TokenType: "Bearer"},
		"user":   userPayload(user),
	})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	user, err := h.users.GetByID(requestContext(c), userID)
	if err != nil {
		response.Error(c, errors.ErrInternalServer)
		return
	}
	if user == nil {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": userPayload(user)})
}
