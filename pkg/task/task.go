package task

import "time"

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusBlocked    Status = "blocked"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted, StatusBlocked:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type Task struct {
	ID             int
	ProjectID      int
	Name           string
	Description    string
	Status         Status
	Priority       Priority
	EstimatedHours float64
	ActualHours    float64
	StartDate      time.Time
	DueDate        time.Time
	Tags           []string
	EstimatedCost  float64
	ActualCost     float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
