package models

import "time"

// Task status values. Transitions are free; no ordering is enforced.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

// Task belongs to a team and may be assigned to one of its participants.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"size:1000" json:"description"`
	Status      string     `gorm:"size:50;default:todo;index" json:"status"`
	AssignedTo  *uint      `gorm:"index" json:"assigned_to"`
	Assignee    *User      `gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL" json:"assignee,omitempty"`
	TeamID      uint       `gorm:"index;not null" json:"team_id"`
	Team        *Team      `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"team,omitempty"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }

// ValidTaskStatus reports whether s is one of the fixed status values.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}
