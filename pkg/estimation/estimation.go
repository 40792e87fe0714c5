package estimation

import "time"

type Status string

const (
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusInProgress, StatusCompleted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

type PhaseStatus string

const (
	PhasePlanned    PhaseStatus = "planned"
	PhaseInProgress PhaseStatus = "in_progress"
	PhaseCompleted  PhaseStatus = "completed"
	PhaseDelayed    PhaseStatus = "delayed"
)

// Phase is one named stage of the project timeline. Statuses outside the
// known set are tolerated and simply count as not completed.
type Phase struct {
	Name          string      `json:"name"`
	Status        PhaseStatus `json:"status"`
	DurationWeeks float64     `json:"durationWeeks"`
	Dependencies  []string    `json:"dependencies,omitempty"`
}

type Timeline struct {
	Phases             []Phase `json:"phases"`
	TotalDurationWeeks float64 `json:"totalDurationWeeks"`
}

// ResourceLine is a resource allocation priced into the estimation.
type ResourceLine struct {
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Quantity  float64 `json:"quantity"`
	UnitCost  float64 `json:"unitCost"`
	TotalCost float64 `json:"totalCost"`
}

// CostCategory groups line items under one named section of the breakdown.
type CostCategory struct {
	Name  string     `json:"name"`
	Items []CostItem `json:"items"`
}

// Estimation is the costed plan for a project. Subtotal, ContingencyAmount,
// FinalCost and Progress are derived and recomputed on every write; callers
// never set them directly.
type Estimation struct {
	ID                 int
	ProjectID          int
	ProjectName        string
	Categories         []CostCategory
	Resources          []ResourceLine
	Timeline           Timeline
	ContingencyPercent float64
	Subtotal           float64
	ContingencyAmount  float64
	FinalCost          float64
	Progress           int
	Status             Status
	RiskLevel          RiskLevel
	TeamSize           int
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
