package model

import "time"

const (
	TodoStatusPending    = "pending"
	TodoStatusInProgress = "in-progress"
	TodoStatusCompleted  = "completed"

	TodoPriorityLow    = "low"
	TodoPriorityMedium = "medium"
	TodoPriorityHigh   = "high"
)

const DefaultTodoImage = "https://api.dicebear.com/9.x/avataaars/svg?seed=todo"

type Todo struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Name      string     `json:"todo_name"`
	Desc      string     `json:"todo_desc"`
	Image     string     `json:"todo_image"`
	Status    string     `json:"todo_status"`
	Priority  string     `json:"todo_priority"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func ValidTodoStatus(s string) bool {
	return s == TodoStatusPending || s == TodoStatusInProgress || s == TodoStatusCompleted
}

func ValidTodoPriority(p string) bool {
	return p == TodoPriorityLow || p == TodoPriorityMedium || p == TodoPriorityHigh
}
