package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ratinto/agri-credit-backend/internal/auth"
)

// Context keys set by the auth middleware.
const (
	ctxSubjectID = "subject_id"
	ctxRole      = "role"
)

// RequireAuth verifies the bearer token and stashes the caller identity.
func RequireAuth(jwt *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		claims, err := jwt.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(ctxSubjectID, claims.SubjectID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// RequireRole allows only callers holding one of the given roles. It must
// run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ctxRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}
