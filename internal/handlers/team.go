package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamtasker/backend/internal/middleware"
	"github.com/teamtasker/backend/internal/services"
	"github.com/teamtasker/backend/pkg/response"
)

type TeamHandler struct {
	teams *services.TeamService
}

func NewTeamHandler(db *gorm.DB) *TeamHandler {
	return &TeamHandler{teams: services.NewTeamService(db)}
}

// List returns all teams visible to the current user
// GET /api/teams
func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.teams.List(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"teams": teams})
}

// Get returns a team with its member list
// GET /api/teams/:id
func (h *TeamHandler) Get(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id", "invalid team id")
	if !ok {
		return
	}

	team, err := h.teams.Get(middleware.GetUserID(c), teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"team": team})
}

// Create creates a team owned by the current user
// POST /api/teams
func (h *TeamHandler) Create(c *gin.Context) {
	var req services.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	team, err := h.teams.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "team created successfully",
		"team":    team,
	})
}

// AddMember adds a user to the team by email (owner only)
// POST /api/teams/:id/members
func (h *TeamHandler) AddMember(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id", "invalid team id")
	if !ok {
		return
	}

	var req services.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	if err := h.teams.AddMember(middleware.GetUserID(c), teamID, &req); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"message": "member added successfully"})
}

// RemoveMember removes a member from the team (owner only)
// DELETE /api/teams/:id/members/:userId
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id", "invalid team id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId", "invalid user id")
	if !ok {
		return
	}

	if err := h.teams.RemoveMember(middleware.GetUserID(c), teamID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "member removed successfully"})
}

// Delete removes the team with its members and tasks (owner only)
// DELETE /api/teams/:id
func (h *TeamHandler) Delete(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id", "invalid team id")
	if !ok {
		return
	}

	if err := h.teams.Delete(middleware.GetUserID(c), teamID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "team deleted successfully"})
}

// parseIDParam parses a numeric path parameter, replying 400 on failure.
func parseIDParam(c *gin.Context, name, errMsg string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, errMsg)
		return 0, false
	}
	return uint(id), true
}
