package report

import "time"

type ReportType string

const (
	TypeOverview  ReportType = "overview"
	TypeFinancial ReportType = "financial"
	TypeResources ReportType = "resources"
	TypeProjects  ReportType = "projects"
)

func (t ReportType) IsValid() bool {
	switch t {
	case TypeOverview, TypeFinancial, TypeResources, TypeProjects:
		return true
	}
	return false
}

type DateRange string

const (
	Last7Days  DateRange = "7days"
	Last30Days DateRange = "30days"
	Last90Days DateRange = "90days"
	LastYear   DateRange = "1year"
)

// Start resolves the range to its start instant relative to now. An unknown
// range falls back to the last 30 days.
func (r DateRange) Start(now time.Time) time.Time {
	switch r {
	case Last7Days:
		return now.AddDate(0, 0, -7)
	case Last90Days:
		return now.AddDate(0, 0, -90)
	case LastYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -30)
	}
}

// CostBucket is one point of the costs-over-time series.
type CostBucket struct {
	Name     string  `json:"name"`
	Costs    float64 `json:"costs"`
	Projects int     `json:"projects"`
}

// RevenueBucket is one period of the revenue breakdown.
type RevenueBucket struct {
	Period       string  `json:"period"`
	Amount       float64 `json:"amount"`
	ProjectCount int     `json:"projectCount"`
}

// Profitability is a per-estimation revenue/cost/margin row.
type Profitability struct {
	ProjectName string  `json:"projectName"`
	Revenue     float64 `json:"revenue"`
	Cost        float64 `json:"cost"`
	Profit      float64 `json:"profit"`
	Margin      int     `json:"margin"`
}

// AllocationSlice is one slice of the role distribution pie.
type AllocationSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// MemberPerformance is one row of the team performance table.
type MemberPerformance struct {
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	Projects     int     `json:"projects"`
	HourlyRate   float64 `json:"hourlyRate"`
	Availability string  `json:"availability"`
}

// StatusCount is one row of the project status distribution.
type StatusCount struct {
	Status     string `json:"status"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// RecentProject is one row of the recent projects table. Actual is the final
// cost of the project's estimation, zero when it has none.
type RecentProject struct {
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Budget    float64   `json:"budget"`
	Actual    float64   `json:"actual"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Data holds the computed figures of a report. Which fields are populated
// depends on the report type.
type Data struct {
	TotalRevenue         float64             `json:"totalRevenue,omitempty"`
	ActiveProjects       int                 `json:"activeProjects,omitempty"`
	TeamMembers          int                 `json:"teamMembers,omitempty"`
	AvgProjectValue      float64             `json:"avgProjectValue,omitempty"`
	ProjectCostsOverTime []CostBucket        `json:"projectCostsOverTime,omitempty"`
	RevenueBreakdown     []RevenueBucket     `json:"revenueBreakdown,omitempty"`
	ProjectProfitability []Profitability     `json:"projectProfitability,omitempty"`
	ResourceAllocation   []AllocationSlice   `json:"resourceAllocation,omitempty"`
	TeamPerformance      []MemberPerformance `json:"teamPerformance,omitempty"`
	ProjectStatus        []StatusCount       `json:"projectStatus,omitempty"`
	RecentProjects       []RecentProject     `json:"recentProjects,omitempty"`
}

// Document is a computed report ready for rendering.
type Document struct {
	Type        ReportType
	DateRange   DateRange
	GeneratedAt time.Time
	Data        Data
}

// Report is a saved report row.
type Report struct {
	ID          int
	Name        string
	Type        ReportType
	Description string
	DateRange   DateRange
	Data        Data
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
