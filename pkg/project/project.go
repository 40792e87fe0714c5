package project

import "time"

type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on_hold"
	StatusCancelled  Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusCompleted, StatusOnHold, StatusCancelled:
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

// Client is the customer the project is delivered for.
type Client struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Company string `json:"company,omitempty"`
}

// TeamAssignment links a team member to the project with a role and a rate.
type TeamAssignment struct {
	MemberID   int     `json:"memberId"`
	Role       string  `json:"role,omitempty"`
	HourlyRate float64 `json:"hourlyRate,omitempty"`
}

type Project struct {
	ID              int
	Name            string
	Description     string
	StartDate       time.Time
	EndDate         time.Time
	Status          Status
	Priority        Priority
	EstimatedBudget float64
	ActualCost      float64
	Client          Client
	Team            []TeamAssignment
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
