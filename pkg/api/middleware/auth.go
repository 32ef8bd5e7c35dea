package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"newsletter-admin-go/pkg/api/response"
	"newsletter-admin-go/pkg/models"
)

// Authenticator resolves an API key to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, apiKey string) (*models.User, error)
}

// UserKey is the context key holding the authenticated *models.User.
const UserKey = "user"

func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Missing authorization header")
			return
		}

		// Accept "Bearer <key>" or just "<key>"
		apiKey := strings.TrimPrefix(authHeader, "Bearer ")
		apiKey = strings.TrimSpace(apiKey)

		user, err := auth.Authenticate(c.Request.Context(), apiKey)
		if err != nil {
			response.Unauthorized(c, "Invalid API key")
			return
		}

		c.Set("userID", user.ID)
		c.Set(UserKey, user)
		c.Next()
	}
}
