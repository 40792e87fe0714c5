package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/estimatepro/estimatepro/pkg/estimation"
	"github.com/estimatepro/estimatepro/pkg/project"
	"github.com/estimatepro/estimatepro/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})

func TestCompute(t *testing.T) {
	t.Run("should return all zeros for empty inputs", func(t *testing.T) {
		stats := Compute(nil, nil)

		assert.Equal(t, Stats{}, stats)
	})

	t.Run("should count statuses and sum final costs", func(t *testing.T) {
		projects := []project.Project{
			{ID: 1, Status: project.StatusPlanning},
			{ID: 2, Status: project.StatusInProgress},
			{ID: 3, Status: project.StatusCompleted},
			{ID: 4, Status: project.StatusOnHold},
		}
		estimations := []estimation.Estimation{
			{ID: 1, FinalCost: 550, Status: estimation.StatusDraft},
			{ID: 2, FinalCost: 1200, Status: estimation.StatusInProgress},
			{ID: 3, FinalCost: 800, Status: estimation.StatusCompleted},
			{ID: 4, FinalCost: 100, Status: estimation.StatusRejected},
		}

		stats := Compute(projects, estimations)

		assert.Equal(t, 4, stats.TotalProjects)
		assert.Equal(t, 4, stats.TotalEstimations)
		assert.Equal(t, 2650.0, stats.TotalValue)
		assert.Equal(t, 2, stats.ActiveProjects)
		assert.Equal(t, 1, stats.CompletedProjects)
		assert.Equal(t, 2, stats.ActiveEstimations)
		assert.Equal(t, 1, stats.CompletedEstimations)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		projects := []project.Project{{ID: 1, Status: project.StatusPlanning}}
		estimations := []estimation.Estimation{{ID: 1, FinalCost: 100, Status: estimation.StatusDraft}}

		first := Compute(projects, estimations)
		second := Compute(projects, estimations)

		assert.Equal(t, first, second)
	})
}

func TestServiceImpl_GetStats(t *testing.T) {
	t.Run("should aggregate the current user's data", func(t *testing.T) {
		projectRepo := project.NewStubRepo()
		estimationRepo := estimation.NewStubRepo()
		projectService := project.NewProjectService(projectRepo, nil)
		estimationService := estimation.NewEstimationService(estimationRepo, nil)
		service := NewDashboardService(projectService, estimationService)

		_, err := projectService.Create(ctx, project.Project{
			Name:      "Website Relaunch",
			StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		_, err = estimationService.Create(ctx, estimation.Estimation{
			ProjectID:   1,
			ProjectName: "Website Relaunch",
			Categories: []estimation.CostCategory{
				{Name: "Labor", Items: []estimation.CostItem{
					{Name: "Development", Cost: estimation.Labor{Hours: 10, Rate: 50}},
				}},
			},
			ContingencyPercent: 10,
		})
		require.NoError(t, err)

		stats, err := service.GetStats(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalProjects)
		assert.Equal(t, 1, stats.TotalEstimations)
		assert.Equal(t, 550.0, stats.TotalValue)
		assert.Equal(t, 1, stats.ActiveProjects)
		assert.Equal(t, 1, stats.ActiveEstimations)
	})

	t.Run("should return zeros for a user without data", func(t *testing.T) {
		projectService := project.NewProjectService(project.NewStubRepo(), nil)
		estimationService := estimation.NewEstimationService(estimation.NewStubRepo(), nil)
		service := NewDashboardService(projectService, estimationService)

		stats, err := service.GetStats(ctx)

		require.NoError(t, err)
		assert.Equal(t, Stats{}, stats)
	})
}
