package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/estimatepro/estimatepro/internal/event_bus"
	"github.com/estimatepro/estimatepro/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectDataInvalid   = errors.New("project data is invalid")
	ErrProjectStatusUnknown = errors.New("unknown project status")
)

type Service interface {
	Create(ctx context.Context, project Project) (Project, error)
	GetAll(ctx context.Context) ([]Project, error)
	GetById(ctx context.Context, id int) (Project, error)
	Update(ctx context.Context, project Project) (Project, error)
	UpdateStatus(ctx context.Context, id int, status Status) error
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repo
	bus  *event_bus.EventBus
}

func NewProjectService(repo Repo, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus}
}

func validate(project Project) error {
	if len(project.Name) < 3 {
		return fmt.Errorf("%w: name must be at least 3 characters long", ErrProjectDataInvalid)
	}
	if project.StartDate.IsZero() || project.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrProjectDataInvalid)
	}
	if project.EndDate.Before(project.StartDate) {
		return fmt.Errorf("%w: end date must not be before start date", ErrProjectDataInvalid)
	}
	if project.EstimatedBudget < 0 || project.ActualCost < 0 {
		return fmt.Errorf("%w: budget and cost must not be negative", ErrProjectDataInvalid)
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, project Project) (Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Project{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(project); err != nil {
		return Project{}, err
	}
	if project.Status == "" {
		project.Status = StatusPlanning
	}
	if !project.Status.IsValid() {
		return Project{}, ErrProjectStatusUnknown
	}
	if project.Priority == "" {
		project.Priority = PriorityMedium
	}
	if !project.Priority.IsValid() {
		return Project{}, fmt.Errorf("%w: unknown priority %q", ErrProjectDataInvalid, project.Priority)
	}

	id, err := s.repo.Store(ctx, userId, project)
	if err != nil {
		return Project{}, err
	}
	project.ID = id

	s.publish(ctx, event_bus.ProjectCreated, project)
	return project, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) GetById(ctx context.Context, id int) (Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Project{}, fmt.Errorf("failed to get current user: %w", err)
	}
	found, err := s.repo.FindById(ctx, userId, id)
	if err != nil {
		return Project{}, err
	}
	if found == nil {
		return Project{}, ErrProjectNotFound
	}
	return *found, nil
}

func (s *ServiceImpl) Update(ctx context.Context, project Project) (Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Project{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(project); err != nil {
		return Project{}, err
	}
	if !project.Status.IsValid() {
		return Project{}, ErrProjectStatusUnknown
	}
	if !project.Priority.IsValid() {
		return Project{}, fmt.Errorf("%w: unknown priority %q", ErrProjectDataInvalid, project.Priority)
	}

	updated, err := s.repo.Update(ctx, userId, project)
	if err != nil {
		return Project{}, err
	}
	if !updated {
		log.Warnf("project not updated, probably because it does not exist (%d) or the user (%d) is not the owner", project.ID, userId)
		return Project{}, ErrProjectNotFound
	}

	s.publish(ctx, event_bus.ProjectUpdated, project)
	return project, nil
}

func (s *ServiceImpl) UpdateStatus(ctx context.Context, id int, status Status) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if !status.IsValid() {
		return ErrProjectStatusUnknown
	}
	updated, err := s.repo.UpdateStatus(ctx, userId, id, status)
	if err != nil {
		return err
	}
	if !updated {
		return ErrProjectNotFound
	}

	found, err := s.repo.FindById(ctx, userId, id)
	if err == nil && found != nil {
		s.publish(ctx, event_bus.ProjectUpdated, *found)
	}
	return nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	found, err := s.repo.FindById(ctx, userId, id)
	if err != nil {
		return err
	}
	if found == nil {
		return ErrProjectNotFound
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProjectNotFound
	}

	s.publish(ctx, event_bus.ProjectDeleted, *found)
	return nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, project Project) {
	if s.bus == nil {
		return
	}
	event := event_bus.NewEvent(ctx, eventType, event_bus.ProjectEvent{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Status:      string(project.Status),
	})
	if err := s.bus.Publish(event); err != nil {
		log.Warnf("failed to publish %s event: %v", eventType, err)
	}
}
