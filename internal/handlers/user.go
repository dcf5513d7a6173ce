package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamtasker/backend/internal/middleware"
	"github.com/teamtasker/backend/internal/services"
	"github.com/teamtasker/backend/pkg/response"
)

type UserHandler struct {
	auth *services.AuthService
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{auth: services.NewAuthService(db)}
}

// GetProfile returns the current user's profile
// GET /api/users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	response.Success(c, gin.H{"user": middleware.GetUser(c)})
}

// UpdateProfile changes the current user's name
// PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	user, err := h.auth.UpdateProfile(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"message": "profile updated successfully",
		"user":    user,
	})
}
