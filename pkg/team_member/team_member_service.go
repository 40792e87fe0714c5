package team_member

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/estimatepro/estimatepro/pkg/user"
)

var (
	ErrMemberNotFound    = errors.New("team member not found")
	ErrMemberDataInvalid = errors.New("team member data is invalid")
)

type Service interface {
	Create(ctx context.Context, member TeamMember) (TeamMember, error)
	GetAll(ctx context.Context) ([]TeamMember, error)
	GetById(ctx context.Context, id int) (TeamMember, error)
	Update(ctx context.Context, member TeamMember) (TeamMember, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repo
}

func NewTeamMemberService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func validate(member TeamMember) error {
	if member.Name == "" {
		return fmt.Errorf("%w: name is required", ErrMemberDataInvalid)
	}
	if !strings.Contains(member.Email, "@") {
		return fmt.Errorf("%w: a valid email is required", ErrMemberDataInvalid)
	}
	if !member.Role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", ErrMemberDataInvalid, member.Role)
	}
	if member.HourlyRate < 0 || member.ExperienceYears < 0 {
		return fmt.Errorf("%w: rate and experience must not be negative", ErrMemberDataInvalid)
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, member TeamMember) (TeamMember, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return TeamMember{}, fmt.Errorf("failed to get current user: %w", err)
	}
	member.Email = strings.ToLower(strings.TrimSpace(member.Email))
	if member.Availability == "" {
		member.Availability = Available
	}
	if !member.Availability.IsValid() {
		return TeamMember{}, fmt.Errorf("%w: unknown availability %q", ErrMemberDataInvalid, member.Availability)
	}
	if err := validate(member); err != nil {
		return TeamMember{}, err
	}

	id, err := s.repo.Store(ctx, userId, member)
	if err != nil {
		return TeamMember{}, err
	}
	member.ID = id
	return member, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]TeamMember, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) GetById(ctx context.Context, id int) (TeamMember, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return TeamMember{}, fmt.Errorf("failed to get current user: %w", err)
	}
	found, err := s.repo.FindById(ctx, userId, id)
	if err != nil {
		return TeamMember{}, err
	}
	if found == nil {
		return TeamMember{}, ErrMemberNotFound
	}
	return *found, nil
}

func (s *ServiceImpl) Update(ctx context.Context, member TeamMember) (TeamMember, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return TeamMember{}, fmt.Errorf("failed to get current user: %w", err)
	}
	member.Email = strings.ToLower(strings.TrimSpace(member.Email))
	if !member.Availability.IsValid() {
		return TeamMember{}, fmt.Errorf("%w: unknown availability %q", ErrMemberDataInvalid, member.Availability)
	}
	if err := validate(member); err != nil {
		return TeamMember{}, err
	}

	updated, err := s.repo.Update(ctx, userId, member)
	if err != nil {
		return TeamMember{}, err
	}
	if !updated {
		return TeamMember{}, ErrMemberNotFound
	}
	return member, nil
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
		return ErrMemberNotFound
	}
	return nil
}
