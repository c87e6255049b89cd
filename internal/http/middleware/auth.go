// README: Bearer-token auth middleware; resolves caller identity and role.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripdesk/internal/infra"
)

const identityKey = "caller_identity"

// Auth verifies the Authorization bearer token and stores the resolved
// identity in the request context. Requests without a valid token never reach
// a handler.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		identity, err := verifier.Verify(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRole gates a route group on the caller's role claim.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := Caller(c)
		if id == nil || id.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// Caller returns the verified identity, or nil when the request skipped Auth.
func Caller(c *gin.Context) *infra.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*infra.Identity)
	return id
}
