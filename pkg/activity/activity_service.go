package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/estimatepro/estimatepro/pkg/task"
	"github.com/estimatepro/estimatepro/pkg/user"
)

var (
	ErrActivityNotFound    = errors.New("activity not found")
	ErrActivityDataInvalid = errors.New("activity data is invalid")
)

type Service interface {
	Create(ctx context.Context, activity Activity) (Activity, error)
	GetByTask(ctx context.Context, taskId int) ([]Activity, error)
	Delete(ctx context.Context, id int) error
	ProjectBudget(ctx context.Context, projectId int) (float64, error)
}

type ServiceImpl struct {
	repo  Repo
	tasks task.Service
}

func NewActivityService(repo Repo, tasks task.Service) *ServiceImpl {
	return &ServiceImpl{repo: repo, tasks: tasks}
}

func validate(activity Activity) error {
	if activity.TaskID == 0 {
		return fmt.Errorf("%w: task reference is required", ErrActivityDataInvalid)
	}
	if activity.Name == "" {
		return fmt.Errorf("%w: name is required", ErrActivityDataInvalid)
	}
	if activity.EstimatedCost < 0 || activity.ActualCost < 0 {
		return fmt.Errorf("%w: costs must not be negative", ErrActivityDataInvalid)
	}
	if activity.EstimatedHours < 0 || activity.ActualHours < 0 {
		return fmt.Errorf("%w: hours must not be negative", ErrActivityDataInvalid)
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, activity Activity) (Activity, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Activity{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if activity.Status == "" {
		activity.Status = StatusPending
	}
	if !activity.Status.IsValid() {
		return Activity{}, fmt.Errorf("%w: unknown status %q", ErrActivityDataInvalid, activity.Status)
	}
	if activity.Date.IsZero() {
		activity.Date = time.Now().UTC()
	}
	if err := validate(activity); err != nil {
		return Activity{}, err
	}

	id, err := s.repo.Store(ctx, userId, activity)
	if err != nil {
		return Activity{}, err
	}
	activity.ID = id
	return activity, nil
}

func (s *ServiceImpl) GetByTask(ctx context.Context, taskId int) ([]Activity, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetByTask(ctx, userId, taskId)
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
		return ErrActivityNotFound
	}
	return nil
}

// ProjectBudget sums the estimated cost of every activity on the project's
// tasks. A project without tasks or activities has a budget of zero.
func (s *ServiceImpl) ProjectBudget(ctx context.Context, projectId int) (float64, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}
	tasks, err := s.tasks.GetByProject(ctx, projectId)
	if err != nil {
		return 0, fmt.Errorf("could not load project tasks: %w", err)
	}
	taskIds := make([]int, 0, len(tasks))
	for _, t := range tasks {
		taskIds = append(taskIds, t.ID)
	}
	return s.repo.SumEstimatedCost(ctx, userId, taskIds)
}
