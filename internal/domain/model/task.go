package model

import (
	"time"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in progress"
	TaskStatusCompleted  = "completed"
)

type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     time.Time    `json:"dueDate"`
	Status      string       `json:"status"`
	OwnerID     string       `json:"-"`
	Owner       *UserSummary `json:"user,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// TaskFilter scopes a list query. OwnerID empty means all users
// (admin dashboard). Status matches exactly, case-insensitively; Search
// is a case-insensitive substring match over title and description.
type TaskFilter struct {
	OwnerID string
	Status  string
	Search  string
}
