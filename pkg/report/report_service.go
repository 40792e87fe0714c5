package report

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/estimatepro/estimatepro/internal/utils"
	"github.com/estimatepro/estimatepro/pkg/estimation"
	"github.com/estimatepro/estimatepro/pkg/project"
	"github.com/estimatepro/estimatepro/pkg/team_member"
	"github.com/estimatepro/estimatepro/pkg/user"
)

var (
	ErrReportNotFound    = errors.New("report not found")
	ErrReportTypeUnknown = errors.New("unknown report type")
	ErrReportDataInvalid = errors.New("report data is invalid")
)

type Service interface {
	Generate(ctx context.Context, reportType ReportType, dateRange DateRange) (Document, error)
	GetAll(ctx context.Context) ([]Report, error)
	Save(ctx context.Context, report Report) (Report, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo        Repo
	projects    project.Service
	estimations estimation.Service
	members     team_member.Service
	clock       utils.Clock
}

func NewReportService(
	repo Repo,
	projects project.Service,
	estimations estimation.Service,
	members team_member.Service,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		repo:        repo,
		projects:    projects,
		estimations: estimations,
		members:     members,
		clock:       clock,
	}
}

// Generate computes a report from the owner's current data. Projects and
// estimations are narrowed to the date range by creation time; the team
// roster is always taken in full.
func (s *ServiceImpl) Generate(ctx context.Context, reportType ReportType, dateRange DateRange) (Document, error) {
	if !reportType.IsValid() {
		return Document{}, fmt.Errorf("%w: %q", ErrReportTypeUnknown, reportType)
	}

	projects, err := s.projects.GetAll(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("could not load projects: %w", err)
	}
	estimations, err := s.estimations.GetAll(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("could not load estimations: %w", err)
	}
	members, err := s.members.GetAll(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("could not load team members: %w", err)
	}

	now := s.clock.Now()
	start := dateRange.Start(now)
	projects = filterProjects(projects, start, now)
	estimations = filterEstimations(estimations, start, now)

	var data Data
	switch reportType {
	case TypeOverview:
		data = computeOverview(projects, estimations, members)
	case TypeFinancial:
		data = computeFinancial(estimations)
	case TypeResources:
		data = computeResources(projects, members)
	case TypeProjects:
		data = computeProjects(projects, estimations)
	}

	return Document{
		Type:        reportType,
		DateRange:   dateRange,
		GeneratedAt: now,
		Data:        data,
	}, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Report, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) Save(ctx context.Context, report Report) (Report, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if report.Name == "" {
		return Report{}, fmt.Errorf("%w: name is required", ErrReportDataInvalid)
	}
	if !report.Type.IsValid() {
		return Report{}, fmt.Errorf("%w: %q", ErrReportTypeUnknown, report.Type)
	}

	id, err := s.repo.Store(ctx, userId, report)
	if err != nil {
		return Report{}, err
	}
	report.ID = id
	return report, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrReportNotFound
	}
	return nil
}

func filterProjects(projects []project.Project, start, end time.Time) []project.Project {
	filtered := make([]project.Project, 0, len(projects))
	for _, p := range projects {
		if !p.CreatedAt.Before(start) && !p.CreatedAt.After(end) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func filterEstimations(estimations []estimation.Estimation, start, end time.Time) []estimation.Estimation {
	filtered := make([]estimation.Estimation, 0, len(estimations))
	for _, e := range estimations {
		if !e.CreatedAt.Before(start) && !e.CreatedAt.After(end) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// monthlyRevenue buckets estimations by calendar month of creation, ignoring
// the year. Estimations created in the same month of different years land in
// the same bucket; the range filter keeps the window short enough that this
// only matters for the 1year range.
func monthlyRevenue(estimations []estimation.Estimation, months int) []RevenueBucket {
	buckets := make([]RevenueBucket, months)
	for i := range buckets {
		buckets[i].Period = monthNames[i]
	}
	for _, e := range estimations {
		month := int(e.CreatedAt.Month()) - 1
		if month >= months {
			continue
		}
		buckets[month].Amount += e.FinalCost
		buckets[month].ProjectCount++
	}
	return buckets
}

func computeOverview(projects []project.Project, estimations []estimation.Estimation, members []team_member.TeamMember) Data {
	totalRevenue := 0.0
	for _, e := range estimations {
		totalRevenue += e.FinalCost
	}
	activeProjects := 0
	for _, p := range projects {
		if p.Status == project.StatusPlanning || p.Status == project.StatusInProgress {
			activeProjects++
		}
	}
	avgProjectValue := 0.0
	if len(estimations) > 0 {
		avgProjectValue = totalRevenue / float64(len(estimations))
	}

	costsOverTime := make([]CostBucket, 0, 6)
	for _, bucket := range monthlyRevenue(estimations, 6) {
		costsOverTime = append(costsOverTime, CostBucket{
			Name:     bucket.Period,
			Costs:    bucket.Amount,
			Projects: bucket.ProjectCount,
		})
	}

	return Data{
		TotalRevenue:         totalRevenue,
		ActiveProjects:       activeProjects,
		TeamMembers:          len(members),
		AvgProjectValue:      avgProjectValue,
		ProjectCostsOverTime: costsOverTime,
		ResourceAllocation:   roleDistribution(members),
	}
}

func computeFinancial(estimations []estimation.Estimation) Data {
	profitability := make([]Profitability, 0, len(estimations))
	for _, e := range estimations {
		revenue := e.FinalCost
		cost := e.Subtotal
		profit := revenue - cost
		margin := 0
		if revenue > 0 {
			margin = int(math.Round(100 * profit / revenue))
		}
		profitability = append(profitability, Profitability{
			ProjectName: e.ProjectName,
			Revenue:     revenue,
			Cost:        cost,
			Profit:      profit,
			Margin:      margin,
		})
	}

	return Data{
		RevenueBreakdown:     monthlyRevenue(estimations, 12),
		ProjectProfitability: profitability,
	}
}

// roleDistribution turns the roster's role counts into whole percentages.
func roleDistribution(members []team_member.TeamMember) []AllocationSlice {
	if len(members) == 0 {
		return nil
	}
	counts := make(map[team_member.Role]int)
	for _, member := range members {
		counts[member.Role]++
	}
	var slices []AllocationSlice
	for _, role := range team_member.Roles() {
		count := counts[role]
		if count == 0 {
			continue
		}
		slices = append(slices, AllocationSlice{
			Name:  string(role),
			Value: int(math.Round(100 * float64(count) / float64(len(members)))),
		})
	}
	return slices
}

func computeResources(projects []project.Project, members []team_member.TeamMember) Data {
	performance := make([]MemberPerformance, 0, len(members))
	for _, member := range members {
		assigned := 0
		for _, p := range projects {
			for _, assignment := range p.Team {
				if assignment.MemberID == member.ID {
					assigned++
					break
				}
			}
		}
		performance = append(performance, MemberPerformance{
			Name:         member.Name,
			Role:         string(member.Role),
			Projects:     assigned,
			HourlyRate:   member.HourlyRate,
			Availability: string(member.Availability),
		})
	}

	return Data{
		TeamPerformance:    performance,
		ResourceAllocation: roleDistribution(members),
	}
}

func computeProjects(projects []project.Project, estimations []estimation.Estimation) Data {
	statusCounts := []StatusCount{
		{Status: "Completed"},
		{Status: "In Progress"},
		{Status: "Planning"},
	}
	for _, p := range projects {
		switch p.Status {
		case project.StatusCompleted:
			statusCounts[0].Count++
		case project.StatusInProgress:
			statusCounts[1].Count++
		case project.StatusPlanning:
			statusCounts[2].Count++
		}
	}
	counted := 0
	for _, s := range statusCounts {
		counted += s.Count
	}
	for i := range statusCounts {
		if counted > 0 {
			statusCounts[i].Percentage = int(math.Round(100 * float64(statusCounts[i].Count) / float64(counted)))
		}
	}

	// Projects arrive newest first (repo orders by created_at DESC), so the
	// five most recent are the head of the slice.
	recent := projects
	if len(recent) > 5 {
		recent = recent[:5]
	}
	recentProjects := make([]RecentProject, 0, len(recent))
	for _, p := range recent {
		actual := 0.0
		for _, e := range estimations {
			if e.ProjectID == p.ID {
				actual = e.FinalCost
				break
			}
		}
		recentProjects = append(recentProjects, RecentProject{
			Name:      p.Name,
			Status:    string(p.Status),
			Budget:    p.EstimatedBudget,
			Actual:    actual,
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
		})
	}

	return Data{
		ProjectStatus:  statusCounts,
		RecentProjects: recentProjects,
	}
}
