package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/estimatepro/estimatepro/pkg/user"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTaskDataInvalid = errors.New("task data is invalid")
)

type Service interface {
	Create(ctx context.Context, task Task) (Task, error)
	GetAll(ctx context.Context) ([]Task, error)
	GetByProject(ctx context.Context, projectId int) ([]Task, error)
	GetById(ctx context.Context, id int) (Task, error)
	Update(ctx context.Context, task Task) (Task, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repo
}

func NewTaskService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func validate(task Task) error {
	if task.ProjectID == 0 {
		return fmt.Errorf("%w: project reference is required", ErrTaskDataInvalid)
	}
	if len(task.Name) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters long", ErrTaskDataInvalid)
	}
	if task.EstimatedHours < 0 || task.ActualHours < 0 {
		return fmt.Errorf("%w: hours must not be negative", ErrTaskDataInvalid)
	}
	if task.EstimatedCost < 0 || task.ActualCost < 0 {
		return fmt.Errorf("%w: costs must not be negative", ErrTaskDataInvalid)
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, task Task) (Task, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Task{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if task.Status == "" {
		task.Status = StatusTodo
	}
	if !task.Status.IsValid() {
		return Task{}, fmt.Errorf("%w: unknown status %q", ErrTaskDataInvalid, task.Status)
	}
	if task.Priority == "" {
		task.Priority = PriorityMedium
	}
	if !task.Priority.IsValid() {
		return Task{}, fmt.Errorf("%w: unknown priority %q", ErrTaskDataInvalid, task.Priority)
	}
	if err := validate(task); err != nil {
		return Task{}, err
	}

	id, err := s.repo.Store(ctx, userId, task)
	if err != nil {
		return Task{}, err
	}
	task.ID = id
	return task, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Task, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) GetByProject(ctx context.Context, projectId int) ([]Task, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetByProject(ctx, userId, projectId)
}

func (s *ServiceImpl) GetById(ctx context.Context, id int) (Task, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Task{}, fmt.Errorf("failed to get current user: %w", err)
	}
	found, err := s.repo.FindById(ctx, userId, id)
	if err != nil {
		return Task{}, err
	}
	if found == nil {
		return Task{}, ErrTaskNotFound
	}
	return *found, nil
}

func (s *ServiceImpl) Update(ctx context.Context, task Task) (Task, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Task{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if !task.Status.IsValid() {
		return Task{}, fmt.Errorf("%w: unknown status %q", ErrTaskDataInvalid, task.Status)
	}
	if !task.Priority.IsValid() {
		return Task{}, fmt.Errorf("%w: unknown priority %q", ErrTaskDataInvalid, task.Priority)
	}
	if err := validate(task); err != nil {
		return Task{}, err
	}

	updated, err := s.repo.Update(ctx, userId, task)
	if err != nil {
		return Task{}, err
	}
	if !updated {
		return Task{}, ErrTaskNotFound
	}
	return task, nil
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
		return ErrTaskNotFound
	}
	return nil
}
