package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mquintal/aitutor/internal/services"
	"github.com/mquintal/aitutor/pkg/errors"
	"github.com/mquintal/aitutor/pkg/response"
)

// InviteHandler exposes invite link management for authenticated users and a
// public validity check used by the registration form.
type InviteHandler struct {
	invites *services.InviteService
}

func NewInviteHandler(invites *services.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

type createInviteRequest struct {
	Email *string `json:"email" validate:"omitempty,email"`
}

// POST /api/invites
func (h *InviteHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req createInviteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	invite, token, err := h.invites.Create(requestContext(c), userID, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	// The raw token is only ever returned here.
	response.Success(c, http.StatusCreated, gin.H{
		"invite": invite,
		"token":  token,
	})
}

// GET /api/invites
func (h *InviteHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	invites, err := h.invites.ListActive(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invites": invites})
}

// DELETE /api/invites/:id
//
// Revocation is restricted to the invite's creator; admins may revoke any
// invite.
func (h *InviteHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	inviteID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	ctx := requestContext(c)

	invite, err := h.invites.GetByID(ctx, inviteID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if invite == nil {
		response.Error(c, errors.ErrNotFound)
		return
	}
	if invite.CreatedBy != userID && !isAdminRequest(c) {
		response.Error(c, errors.ErrForbidden)
		return
	}

	deleted, err := h.invites.Delete(ctx, inviteID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.Error(c, errors.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// GET /api/invites/:token
//
// Public endpoint; reports whether an invite can still be redeemed without
// consuming it.
func (h *InviteHandler) Peek(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		response.Error(c, errors.NewBadRequest("token is required"))
		return
	}

	invite, err := h.invites.Peek(requestContext(c), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	if invite == nil || invite.Used || !invite.ExpiresAt.After(time.Now()) {
		response.Success(c, http.StatusOK, gin.H{"valid": false})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"valid":      true,
		"email":      invite.Email,
		"expires_at": invite.ExpiresAt,
	})
}
