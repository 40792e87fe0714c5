package report

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/estimatepro/estimatepro/internal/utils"
	"github.com/estimatepro/estimatepro/pkg/estimation"
	"github.com/estimatepro/estimatepro/pkg/project"
	"github.com/estimatepro/estimatepro/pkg/team_member"
	"github.com/estimatepro/estimatepro/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})

var reportRepoStub = NewStubRepo()

var (
	service            Service
	projectService     project.Service
	estimationService  estimation.Service
	teamMemberService  team_member.Service
	clock              *utils.MockClock
	projectRepoStub    = project.NewStubRepo()
	estimationRepoStub = estimation.NewStubRepo()
	teamMemberRepoStub = team_member.NewStubRepo()
)

func setup(t *testing.T) func() {
	projectService = project.NewProjectService(projectRepoStub, nil)
	estimationService = estimation.NewEstimationService(estimationRepoStub, nil)
	teamMemberService = team_member.NewTeamMemberService(teamMemberRepoStub)
	clock = &utils.MockClock{FixedNow: time.Now().UTC().Add(time.Minute)}
	service = NewReportService(reportRepoStub, projectService, estimationService, teamMemberService, clock)
	return func() {
		t.Log("Teardown after test")
		reportRepoStub.Cleanup()
		projectRepoStub.Cleanup()
		estimationRepoStub.Cleanup()
		teamMemberRepoStub.Cleanup()
	}
}

func storedEstimation(t *testing.T, projectId int, name string, hours, rate float64) estimation.Estimation {
	t.Helper()
	created, err := estimationService.Create(ctx, estimation.Estimation{
		ProjectID:   projectId,
		ProjectName: name,
		Categories: []estimation.CostCategory{
			{Name: "Labor", Items: []estimation.CostItem{
				{Name: "Development", Cost: estimation.Labor{Hours: hours, Rate: rate}},
			}},
		},
	})
	require.NoError(t, err)
	return created
}

func TestServiceImpl_Generate(t *testing.T) {
	t.Run("should reject an unknown report type", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Generate(ctx, ReportType("quarterly"), Last30Days)

		assert.ErrorIs(t, err, ErrReportTypeUnknown)
	})

	t.Run("should stamp the document with type, range and generation time", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		doc, err := service.Generate(ctx, TypeOverview, Last90Days)

		require.NoError(t, err)
		assert.Equal(t, TypeOverview, doc.Type)
		assert.Equal(t, Last90Days, doc.DateRange)
		assert.Equal(t, clock.FixedNow, doc.GeneratedAt)
	})

	t.Run("should aggregate an overview from the owner's data", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := projectService.Create(ctx, project.Project{
			Name:      "Website Relaunch",
			StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		storedEstimation(t, 1, "Website Relaunch", 10, 50)
		storedEstimation(t, 1, "Website Relaunch", 20, 50)
		_, err = teamMemberService.Create(ctx, team_member.TeamMember{
			Name: "Dana", Email: "dana@example.com", Role: team_member.RoleDeveloper,
		})
		require.NoError(t, err)

		doc, err := service.Generate(ctx, TypeOverview, Last30Days)

		require.NoError(t, err)
		assert.Equal(t, 1500.0, doc.Data.TotalRevenue)
		assert.Equal(t, 1, doc.Data.ActiveProjects)
		assert.Equal(t, 1, doc.Data.TeamMembers)
		assert.Equal(t, 750.0, doc.Data.AvgProjectValue)
		assert.Len(t, doc.Data.ProjectCostsOverTime, 6)
	})

	t.Run("should list the newest projects in the projects report", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		for i := 1; i <= 6; i++ {
			_, err := projectService.Create(ctx, project.Project{
				Name:      fmt.Sprintf("Project %d", i),
				StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			})
			require.NoError(t, err)
		}

		doc, err := service.Generate(ctx, TypeProjects, Last30Days)

		require.NoError(t, err)
		require.Len(t, doc.Data.RecentProjects, 5)
		assert.Equal(t, "Project 6", doc.Data.RecentProjects[0].Name)
		assert.Equal(t, "Project 2", doc.Data.RecentProjects[4].Name)
	})

	t.Run("should not leak another user's data", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		storedEstimation(t, 1, "Website Relaunch", 10, 50)

		otherCtx := user.WithUser(context.Background(), user.User{Id: 2})
		doc, err := service.Generate(otherCtx, TypeOverview, Last30Days)

		require.NoError(t, err)
		assert.Equal(t, 0.0, doc.Data.TotalRevenue)
	})
}

func TestComputeOverview(t *testing.T) {
	t.Run("should keep second-half-year estimations out of the six-month series but in the totals", func(t *testing.T) {
		estimations := []estimation.Estimation{
			{FinalCost: 400, CreatedAt: time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)},
			{FinalCost: 900, CreatedAt: time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC)},
		}

		data := computeOverview(nil, estimations, nil)

		assert.Equal(t, 1300.0, data.TotalRevenue)
		require.Len(t, data.ProjectCostsOverTime, 6)
		assert.Equal(t, 400.0, data.ProjectCostsOverTime[2].Costs)
		charted := 0.0
		for _, bucket := range data.ProjectCostsOverTime {
			charted += bucket.Costs
		}
		assert.Equal(t, 400.0, charted)
	})
}

func TestComputeFinancial(t *testing.T) {
	t.Run("should derive profit and margin from revenue and cost", func(t *testing.T) {
		estimations := []estimation.Estimation{
			{ProjectName: "Website Relaunch", FinalCost: 1000, Subtotal: 800},
		}

		data := computeFinancial(estimations)

		require.Len(t, data.ProjectProfitability, 1)
		row := data.ProjectProfitability[0]
		assert.Equal(t, 1000.0, row.Revenue)
		assert.Equal(t, 800.0, row.Cost)
		assert.Equal(t, 200.0, row.Profit)
		assert.Equal(t, 20, row.Margin)
	})

	t.Run("should report a zero margin when there is no revenue", func(t *testing.T) {
		estimations := []estimation.Estimation{
			{ProjectName: "Unbilled", FinalCost: 0, Subtotal: 300},
		}

		data := computeFinancial(estimations)

		require.Len(t, data.ProjectProfitability, 1)
		assert.Equal(t, 0, data.ProjectProfitability[0].Margin)
	})

	t.Run("should always return twelve revenue periods", func(t *testing.T) {
		data := computeFinancial(nil)

		require.Len(t, data.RevenueBreakdown, 12)
		assert.Equal(t, "Jan", data.RevenueBreakdown[0].Period)
		assert.Equal(t, "Dec", data.RevenueBreakdown[11].Period)
	})
}

func TestMonthlyRevenue(t *testing.T) {
	t.Run("should bucket estimations by creation month", func(t *testing.T) {
		estimations := []estimation.Estimation{
			{FinalCost: 100, CreatedAt: time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)},
			{FinalCost: 200, CreatedAt: time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC)},
			{FinalCost: 500, CreatedAt: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)},
		}

		buckets := monthlyRevenue(estimations, 6)

		assert.Equal(t, 300.0, buckets[1].Amount)
		assert.Equal(t, 2, buckets[1].ProjectCount)
		assert.Equal(t, 500.0, buckets[4].Amount)
		assert.Equal(t, 0.0, buckets[0].Amount)
	})

	t.Run("should drop estimations outside the bucket window", func(t *testing.T) {
		estimations := []estimation.Estimation{
			{FinalCost: 900, CreatedAt: time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC)},
		}

		buckets := monthlyRevenue(estimations, 6)

		for _, bucket := range buckets {
			assert.Equal(t, 0.0, bucket.Amount)
		}
	})
}

func TestRoleDistribution(t *testing.T) {
	t.Run("should return whole percentages per role", func(t *testing.T) {
		members := []team_member.TeamMember{
			{Role: team_member.RoleDeveloper},
			{Role: team_member.RoleDeveloper},
			{Role: team_member.RoleDesigner},
			{Role: team_member.RoleManager},
		}

		slices := roleDistribution(members)

		require.Len(t, slices, 3)
		assert.Equal(t, AllocationSlice{Name: "developer", Value: 50}, slices[0])
		assert.Equal(t, AllocationSlice{Name: "designer", Value: 25}, slices[1])
		assert.Equal(t, AllocationSlice{Name: "manager", Value: 25}, slices[2])
	})

	t.Run("should return nil for an empty roster", func(t *testing.T) {
		assert.Nil(t, roleDistribution(nil))
	})
}

func TestComputeResources(t *testing.T) {
	t.Run("should count projects a member is assigned to", func(t *testing.T) {
		members := []team_member.TeamMember{
			{ID: 3, Name: "Dana", Role: team_member.RoleDeveloper, HourlyRate: 95, Availability: team_member.Busy},
		}
		projects := []project.Project{
			{ID: 1, Team: []project.TeamAssignment{{MemberID: 3}}},
			{ID: 2, Team: []project.TeamAssignment{{MemberID: 4}}},
		}

		data := computeResources(projects, members)

		require.Len(t, data.TeamPerformance, 1)
		row := data.TeamPerformance[0]
		assert.Equal(t, "Dana", row.Name)
		assert.Equal(t, 1, row.Projects)
		assert.Equal(t, 95.0, row.HourlyRate)
		assert.Equal(t, "busy", row.Availability)
	})
}

func TestComputeProjects(t *testing.T) {
	t.Run("should distribute percentages over the counted statuses", func(t *testing.T) {
		projects := []project.Project{
			{ID: 1, Status: project.StatusCompleted},
			{ID: 2, Status: project.StatusInProgress},
			{ID: 3, Status: project.StatusInProgress},
			{ID: 4, Status: project.StatusPlanning},
			{ID: 5, Status: project.StatusCancelled},
		}

		data := computeProjects(projects, nil)

		require.Len(t, data.ProjectStatus, 3)
		assert.Equal(t, StatusCount{Status: "Completed", Count: 1, Percentage: 25}, data.ProjectStatus[0])
		assert.Equal(t, StatusCount{Status: "In Progress", Count: 2, Percentage: 50}, data.ProjectStatus[1])
		assert.Equal(t, StatusCount{Status: "Planning", Count: 1, Percentage: 25}, data.ProjectStatus[2])
	})

	t.Run("should keep the five newest projects and match their estimations", func(t *testing.T) {
		// Input arrives newest first, as the repos deliver it.
		var projects []project.Project
		for i := 7; i >= 1; i-- {
			projects = append(projects, project.Project{ID: i, Name: fmt.Sprintf("Project %d", i), Status: project.StatusPlanning})
		}
		estimations := []estimation.Estimation{{ProjectID: 6, FinalCost: 4200}}

		data := computeProjects(projects, estimations)

		require.Len(t, data.RecentProjects, 5)
		assert.Equal(t, "Project 7", data.RecentProjects[0].Name)
		assert.Equal(t, "Project 3", data.RecentProjects[4].Name)
		assert.Equal(t, 4200.0, data.RecentProjects[1].Actual)
		assert.Equal(t, 0.0, data.RecentProjects[2].Actual)
	})
}

func TestDateRange_Start(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.AddDate(0, 0, -7), Last7Days.Start(now))
	assert.Equal(t, now.AddDate(0, 0, -30), Last30Days.Start(now))
	assert.Equal(t, now.AddDate(0, 0, -90), Last90Days.Start(now))
	assert.Equal(t, now.AddDate(-1, 0, 0), LastYear.Start(now))
	assert.Equal(t, now.AddDate(0, 0, -30), DateRange("fortnight").Start(now))
}

func TestFilterEstimations(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -30)
	estimations := []estimation.Estimation{
		{ID: 1, CreatedAt: now.AddDate(0, 0, -5)},
		{ID: 2, CreatedAt: now.AddDate(0, 0, -45)},
		{ID: 3, CreatedAt: start},
	}

	filtered := filterEstimations(estimations, start, now)

	require.Len(t, filtered, 2)
	assert.Equal(t, 1, filtered[0].ID)
	assert.Equal(t, 3, filtered[1].ID)
}

func TestServiceImpl_Save(t *testing.T) {
	t.Run("should persist a named report", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		saved, err := service.Save(ctx, Report{
			Name:      "June financials",
			Type:      TypeFinancial,
			DateRange: Last30Days,
		})

		require.NoError(t, err)
		assert.NotZero(t, saved.ID)
		all, err := service.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("should reject a report without a name", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Save(ctx, Report{Type: TypeFinancial})

		assert.ErrorIs(t, err, ErrReportDataInvalid)
	})

	t.Run("should reject an unknown type", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Save(ctx, Report{Name: "June", Type: ReportType("quarterly")})

		assert.ErrorIs(t, err, ErrReportTypeUnknown)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should return not found for an unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		err := service.Delete(ctx, 404)

		assert.ErrorIs(t, err, ErrReportNotFound)
	})
}
