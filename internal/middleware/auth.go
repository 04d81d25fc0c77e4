package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUsername is the gin context key holding the authenticated username.
const ContextUsername = "username"

// TokenAuthenticator resolves a bearer token to a username.
type TokenAuthenticator interface {
	Authenticate(token string) (string, error)
}

// AuthMiddleware requires an "Authorization: Bearer <token>" header.
func AuthMiddleware(auth TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// preflight
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token não fornecido"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Formato de token inválido"})
			return
		}

		username, err := auth.Authenticate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido ou expirado"})
			return
		}

		c.Set(ContextUsername, username)
		c.Next()
	}
}

// Username returns the authenticated username, if any.
func Username(c *gin.Context) string {
	return c.GetString(ContextUsername)
}
