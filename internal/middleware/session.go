package middleware

import (
	"errors"   // Sentinel comparison
	"net/http" // HTTP status codes

	"kodbank/internal/auth"   // Token authority
	"kodbank/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// CookieName is the cookie carrying the session token.
const CookieName = "token"

// SessionAuth validates the cookie-carried session token and injects
// the decoded claims into the request context
func SessionAuth(authority *auth.TokenAuthority) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName) // Get the session cookie
		// Check if the cookie is present
		if err != nil || token == "" {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		claims, err := authority.Validate(c.Request.Context(), token) // Validate the token
		if err != nil {
			// Revoked or unknown record: the signature may still verify
			if errors.Is(err, domain.ErrSessionNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
				return
			}
			// Bad signature or expired claim
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set("username", claims.Username) // Store username in context
		c.Set("role", claims.Role)         // Store role in context
		c.Set("uid", claims.UID)           // Store account UID in context
		c.Next()                           // Proceed to the next handler
	}
}
