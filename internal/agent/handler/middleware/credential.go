package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const credentialKey = "todo-agent/credential"

// Credential extracts the end user's bearer token. A missing or malformed
// Authorization header is not an error: the request simply runs without
// tools.
func Credential() gin.HandlerFunc {
	return func(c *gin.Context) {
		const prefix = "Bearer "
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, prefix) {
			if token := strings.TrimSpace(auth[len(prefix):]); token != "" {
				c.Set(credentialKey, token)
			}
		}
		c.Next()
	}
}

// GetCredential returns the token stored by Credential, or "".
func GetCredential(c *gin.Context) string {
	return c.GetString(credentialKey)
}
