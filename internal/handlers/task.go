package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamtasker/backend/internal/middleware"
	"github.com/teamtasker/backend/internal/services"
	"github.com/teamtasker/backend/pkg/response"
)

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(db *gorm.DB) *TaskHandler {
	teams := services.NewTeamService(db)
	return &TaskHandler{tasks: services.NewTaskService(db, teams)}
}

// List returns visible tasks, optionally filtered
// GET /api/tasks?team_id=&assigned_to=&status=
func (h *TaskHandler) List(c *gin.Context) {
	var req services.TaskListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tasks, err := h.tasks.List(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"tasks": tasks})
}

// Get returns a single visible task
// GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id", "invalid task id")
	if !ok {
		return
	}

	task, err := h.tasks.Get(middleware.GetUserID(c), taskID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"task": task})
}

// Create creates a task in a team the user can access
// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	task, err := h.tasks.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "task created successfully",
		"task":    task,
	})
}

// Update applies a partial update to a visible task
// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id", "invalid task id")
	if !ok {
		return
	}

	var req services.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.tasks.Update(middleware.GetUserID(c), taskID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"message": "task updated successfully",
		"task":    task,
	})
}

// Delete removes a visible task
// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id", "invalid task id")
	if !ok {
		return
	}

	if err := h.tasks.Delete(middleware.GetUserID(c), taskID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "task deleted successfully"})
}
