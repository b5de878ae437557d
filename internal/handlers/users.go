package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mquintal/aitutor/internal/services"
	"github.com/mquintal/aitutor/pkg/response"
)

// UserHandler exposes administrative user management endpoints.
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}

type subscriptionRequest struct {
	Active  bool       `json:"active"`
	Expires *time.Time `json:"expires"`
}

// PATCH /api/users/:id/subscription
func (h *UserHandler) UpdateSubscription(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req subscriptionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	// Missing ids are treated as a no-op, matching the store semantics.
	if err := h.users.UpdateSubscription(requestContext(c), userID, req.Active, req.Expires); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": true})
}
