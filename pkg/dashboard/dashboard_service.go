package dashboard

import (
	"context"
	"fmt"

	"github.com/estimatepro/estimatepro/pkg/estimation"
	"github.com/estimatepro/estimatepro/pkg/project"
)

type Service interface {
	GetStats(ctx context.Context) (Stats, error)
}

type ServiceImpl struct {
	projects    project.Service
	estimations estimation.Service
}

func NewDashboardService(projects project.Service, estimations estimation.Service) *ServiceImpl {
	return &ServiceImpl{projects: projects, estimations: estimations}
}

// GetStats recomputes the summary from the owner's full project and
// estimation snapshots. With no data every counter is zero.
func (s *ServiceImpl) GetStats(ctx context.Context) (Stats, error) {
	projects, err := s.projects.GetAll(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("could not load projects: %w", err)
	}
	estimations, err := s.estimations.GetAll(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("could not load estimations: %w", err)
	}
	return Compute(projects, estimations), nil
}

// Compute derives the stats from the given snapshots. Pure; calling it twice
// on the same input yields the same result.
func Compute(projects []project.Project, estimations []estimation.Estimation) Stats {
	stats := Stats{
		TotalProjects:    len(projects),
		TotalEstimations: len(estimations),
	}
	for _, p := range projects {
		switch p.Status {
		case project.StatusPlanning, project.StatusInProgress:
			stats.ActiveProjects++
		case project.StatusCompleted:
			stats.CompletedProjects++
		}
	}
	for _, e := range estimations {
		stats.TotalValue += e.FinalCost
		switch e.Status {
		case estimation.StatusDraft, estimation.StatusInProgress:
			stats.ActiveEstimations++
		case estimation.StatusCompleted:
			stats.CompletedEstimations++
		}
	}
	return stats
}
