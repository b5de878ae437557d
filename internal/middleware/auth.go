package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/mquintal/aitutor/internal/auth"
	"github.com/mquintal/aitutor/pkg/errors"
	"github.com/mquintal/aitutor/pkg/response"
)

const (
	CtxClaimsKey  = "authClaims"
	CtxUserIDKey  = "userID"
	CtxIsAdminKey = "isAdmin"
)

// Auth enforces JWT authentication using the supplied JWT service.
func Auth(jwt *iauth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if len(authz) < 8 || !strings.EqualFold(authz[:7], "Bearer ") {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authz[7:])
		claims, err := jwt.ValidateAccessToken(token)
		if err != nil {
			// Normalise all validation failures to 401
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		// Propagate identity into request context
		c.Set(CtxClaimsKey, claims)
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxIsAdminKey, claims.IsAdmin)

		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin flag.
// It must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(CtxIsAdminKey) {
			response.Error(c, errors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
