package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys set by Middleware for downstream handlers.
const (
	ContextSubjectKey = "auth.subject"
	ContextRoleKey    = "auth.role"
)

// Middleware extracts and verifies the bearer token, then stores the caller's
// subject and role on the request context. Requests without a valid token get
// 401.
func Middleware(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header must use the Bearer scheme"})
			c.Abort()
			return
		}
		claims, err := m.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}
		c.Set(ContextSubjectKey, claims.Subject)
		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole gates a route to the given roles. It runs after Middleware and
// answers 403 for authenticated callers whose role is not listed.
func RequireRole(roles ...Role) gin.HandlerFunc {
	allowed := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		v, ok := c.Get(ContextRoleKey)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			c.Abort()
			return
		}
		role, _ := v.(Role)
		if _, ok := allowed[role]; !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("role %s may not perform this operation", role)})
			c.Abort()
			return
		}
		c.Next()
	}
}

// SubjectFromContext returns the verified caller name, if any.
func SubjectFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextSubjectKey)
	if !ok {
		return "", false
	}
	sub, ok := v.(string)
	return sub, ok
}
