package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mquintal/aitutor/internal/middleware"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// currentUserID extracts the authenticated user id placed by the auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(middleware.CtxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// isAdminRequest reports whether the authenticated caller holds the admin flag.
func isAdminRequest(c *gin.Context) bool {
	return c.GetBool(middleware.CtxIsAdminKey)
}
