package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamtasker/backend/internal/config"
	"github.com/teamtasker/backend/internal/services"
	"github.com/teamtasker/backend/pkg/response"
)

type AuthHandler struct {
	auth       *services.AuthService
	sessions   *services.SessionService
	cookieName string
	secure     bool
}

func NewAuthHandler(db *gorm.DB, sessions *services.SessionService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		auth:       services.NewAuthService(db),
		sessions:   sessions,
		cookieName: cfg.Session.CookieName,
		secure:     cfg.Server.Mode == gin.ReleaseMode,
	}
}

// Register handles user registration
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	user, err := h.auth.Register(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "registration successful",
		"user":    user,
	})
}

// Login verifies credentials and opens a session
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	user, err := h.auth.Login(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	session, err := h.sessions.Create(user.ID, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, session.ID, int(h.sessions.TTL().Seconds()))
	response.Success(c, gin.H{
		"message": "login successful",
		"user":    user,
	})
}

// Logout invalidates the session server-side. Repeating a logout is not an
// error.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(h.cookieName); err == nil && sessionID != "" {
		if err := h.sessions.Revoke(sessionID); err != nil {
			response.Error(c, err)
			return
		}
	}

	h.setSessionCookie(c, "", -1)
	response.Success(c, gin.H{"message": "logged out successfully"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, value, maxAge, "/", "", h.secure, true)
}
