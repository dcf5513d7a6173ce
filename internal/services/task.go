package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/teamtasker/backend/internal/models"
	"github.com/teamtasker/backend/pkg/response"
)

// TaskService implements task CRUD under the team visibility predicate.
// Absent and inaccessible tasks are both reported as not-found so task
// existence never leaks across team boundaries.
type TaskService struct {
	db    *gorm.DB
	teams *TeamService
}

func NewTaskService(db *gorm.DB, teams *TeamService) *TaskService {
	return &TaskService{db: db, teams: teams}
}

type TaskListRequest struct {
	TeamID     *uint  `form:"team_id"`
	AssignedTo *uint  `form:"assigned_to"`
	Status     string `form:"status"`
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	Status      string `json:"status" binding:"omitempty,oneof=todo in-progress completed"`
	AssignedTo  *uint  `json:"assigned_to"`
	TeamID      uint   `json:"team_id" binding:"required"`
	DueDate     string `json:"due_date"`
}

// UpdateTaskRequest is a patch: only supplied fields change, and a field
// explicitly set to null clears the column.
type UpdateTaskRequest struct {
	Title       *string        `json:"title"`
	Description OptionalString `json:"description"`
	Status      *string        `json:"status"`
	AssignedTo  OptionalUint   `json:"assigned_to"`
	DueDate     OptionalString `json:"due_date"`
}

var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDueDate(value string) (*time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, response.NewBadRequest("due_date must be a valid date")
}

// assigneeAllowed checks the data-integrity rule for assignments: the
// target user must be the team's owner or one of its members. A violation
// is a validation error on the payload, not an access failure of the
// caller.
func (s *TaskService) assigneeAllowed(tx *gorm.DB, assigneeID, teamID uint) error {
	ok, err := s.teams.HasAccess(tx, assigneeID, teamID)
	if err != nil {
		return err
	}
	if !ok {
		return response.NewBadRequest("assigned user must be a team member")
	}
	return nil
}

// List returns tasks in teams visible to the user, newest first, narrowed
// by the optional exact-match filters. A filter that matches nothing
// (including an inaccessible or unknown team_id) yields an empty result,
// never an error.
func (s *TaskService) List(userID uint, req *TaskListRequest) ([]models.Task, error) {
	query := s.db.Model(&models.Task{}).
		Scopes(s.teams.TeamVisibility(userID)).
		Preload("Assignee").
		Preload("Team")

	if req.TeamID != nil {
		query = query.Where("team_id = ?", *req.TeamID)
	}
	if req.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *req.AssignedTo)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	var tasks []models.Task
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// Get returns a single visible task.
func (s *TaskService) Get(userID, taskID uint) (*models.Task, error) {
	var task models.Task
	err := s.db.Scopes(s.teams.TeamVisibility(userID)).
		Preload("Assignee").
		Preload("Team").
		First(&task, taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("task not found")
		}
		return nil, err
	}
	return &task, nil
}

// Create inserts a task into a team the user can access. The access check
// and the insert run in one transaction.
func (s *TaskService) Create(userID uint, req *CreateTaskRequest) (*models.Task, error) {
	var dueDate *time.Time
	if req.DueDate != "" {
		var err error
		if dueDate, err = parseDueDate(req.DueDate); err != nil {
			return nil, err
		}
	}

	status := req.Status
	if status == "" {
		status = models.TaskStatusTodo
	}

	// Length bounds apply to the trimmed value; binding only sees the raw
	// payload, so a whitespace-padded title has to be re-checked here.
	title := strings.TrimSpace(req.Title)
	if title == "" || utf8.RuneCountInString(title) > 255 {
		return nil, response.NewBadRequest("title must be 1-255 characters")
	}

	task := models.Task{
		Title:       title,
		Description: req.Description,
		Status:      status,
		AssignedTo:  req.AssignedTo,
		TeamID:      req.TeamID,
		DueDate:     dueDate,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		ok, err := s.teams.HasAccess(tx, userID, req.TeamID)
		if err != nil {
			return err
		}
		if !ok {
			return response.NewForbidden("access denied to this team")
		}

		if req.AssignedTo != nil {
			if err := s.assigneeAllowed(tx, *req.AssignedTo, req.TeamID); err != nil {
				return err
			}
		}

		return tx.Create(&task).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(userID, task.ID)
}

// Update applies a partial update to a visible task. updated_at is always
// refreshed, even for an empty patch.
func (s *TaskService) Update(userID, taskID uint, req *UpdateTaskRequest) (*models.Task, error) {
	updates := map[string]interface{}{}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" || utf8.RuneCountInString(title) > 255 {
			return nil, response.NewBadRequest("title must be 1-255 characters")
		}
		updates["title"] = title
	}
	if req.Description.Set {
		if req.Description.Value != nil && utf8.RuneCountInString(*req.Description.Value) > 1000 {
			return nil, response.NewBadRequest("description must be at most 1000 characters")
		}
		updates["description"] = req.Description.Value
	}
	if req.Status != nil {
		if !models.ValidTaskStatus(*req.Status) {
			return nil, response.NewBadRequest("status must be one of: todo, in-progress, completed")
		}
		updates["status"] = *req.Status
	}
	if req.DueDate.Set {
		if req.DueDate.Value == nil {
			updates["due_date"] = nil
		} else {
			dueDate, err := parseDueDate(*req.DueDate.Value)
			if err != nil {
				return nil, err
			}
			updates["due_date"] = dueDate
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		err := tx.Scopes(s.teams.TeamVisibility(userID)).First(&task, taskID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("task not found")
			}
			return err
		}

		if req.AssignedTo.Set {
			if req.AssignedTo.Value != nil {
				if err := s.assigneeAllowed(tx, *req.AssignedTo.Value, task.TeamID); err != nil {
					return err
				}
			}
			updates["assigned_to"] = req.AssignedTo.Value
		}

		updates["updated_at"] = time.Now()
		return tx.Model(&task).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(userID, taskID)
}

// Delete removes a visible task. Any team participant may delete, not just
// the owner (unlike team deletion).
func (s *TaskService) Delete(userID, taskID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		err := tx.Scopes(s.teams.TeamVisibility(userID)).First(&task, taskID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("task not found")
			}
			return err
		}
		return tx.Delete(&models.Task{}, task.ID).Error
	})
}
