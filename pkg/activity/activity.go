package activity

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Activity is one costed unit of work tracked against a task. Summed per
// project, activities form the project's working budget.
type Activity struct {
	ID             int
	TaskID         int
	Name           string
	Description    string
	EstimatedCost  float64
	ActualCost     float64
	EstimatedHours float64
	ActualHours    float64
	Status         Status
	AssignedTo     int // team member id, 0 when unassigned
	Date           time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
