// README: Auth middleware — optional bearer-token guard backed by Firebase.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"itinerary/internal/infra"
)

// Auth verifies a Firebase bearer token when verifier is non-nil. A nil
// verifier (no Firebase credentials configured) makes this a no-op, so the
// API degrades to unauthenticated access rather than refusing to start.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimPrefix(header, prefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("uid", token.UID)
		c.Next()
	}
}
