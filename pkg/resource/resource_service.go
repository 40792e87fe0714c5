package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/estimatepro/estimatepro/pkg/user"
)

var (
	ErrResourceNotFound    = errors.New("resource not found")
	ErrResourceDataInvalid = errors.New("resource data is invalid")
)

type Service interface {
	Create(ctx context.Context, resource Resource) (Resource, error)
	GetAll(ctx context.Context) ([]Resource, error)
	GetById(ctx context.Context, id int) (Resource, error)
	Update(ctx context.Context, resource Resource) (Resource, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repo
}

func NewResourceService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func validate(resource Resource) error {
	if resource.Name == "" {
		return fmt.Errorf("%w: name is required", ErrResourceDataInvalid)
	}
	if !resource.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q", ErrResourceDataInvalid, resource.Type)
	}
	if resource.UnitCost < 0 {
		return fmt.Errorf("%w: unit cost must not be negative", ErrResourceDataInvalid)
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, resource Resource) (Resource, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Resource{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(resource); err != nil {
		return Resource{}, err
	}

	id, err := s.repo.Store(ctx, userId, resource)
	if err != nil {
		return Resource{}, err
	}
	resource.ID = id
	return resource, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Resource, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) GetById(ctx context.Context, id int) (Resource, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Resource{}, fmt.Errorf("failed to get current user: %w", err)
	}
	found, err := s.repo.FindById(ctx, userId, id)
	if err != nil {
		return Resource{}, err
	}
	if found == nil {
		return Resource{}, ErrResourceNotFound
	}
	return *found, nil
}

func (s *ServiceImpl) Update(ctx context.Context, resource Resource) (Resource, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Resource{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(resource); err != nil {
		return Resource{}, err
	}

	updated, err := s.repo.Update(ctx, userId, resource)
	if err != nil {
		return Resource{}, err
	}
	if !updated {
		return Resource{}, ErrResourceNotFound
	}
	return resource, nil
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
		return ErrResourceNotFound
	}
	return nil
}
