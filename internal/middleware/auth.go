package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/teamtasker/backend/internal/models"
	"github.com/teamtasker/backend/internal/services"
	"github.com/teamtasker/backend/pkg/response"
)

const (
	ContextUserID = "user_id"
	ContextUser   = "user"
)

// AuthRequired resolves the session cookie to a principal before any
// handler logic runs. Requests without a live session are rejected with
// 401; the middleware establishes who is calling, not what they may
// access.
func AuthRequired(sessions *services.SessionService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if err != nil || sessionID == "" {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		user, err := sessions.Resolve(sessionID)
		if err != nil {
			if errors.Is(err, services.ErrNoSession) {
				response.Unauthorized(c, "invalid or expired session")
			} else {
				response.Error(c, err)
			}
			c.Abort()
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUser, user)

		c.Next()
	}
}

// GetUserID gets the current user ID from context.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}

// GetUser gets the resolved principal from context.
func GetUser(c *gin.Context) *models.User {
	if user, exists := c.Get(ContextUser); exists {
		return user.(*models.User)
	}
	return nil
}
