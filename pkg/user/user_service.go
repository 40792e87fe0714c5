package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserDataInvalid = errors.New("user data is invalid")
)

type Service interface {
	CreateUser(ctx context.Context, user User) (User, error)
	GetCurrentUser(ctx context.Context) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
	GetAvailableUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, uid string) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	if user.Username == "" || user.DisplayName == "" {
		return User{}, ErrUserDataInvalid
	}
	existing, err := s.repo.FindByUsername(ctx, user.Username)
	if err != nil {
		return User{}, err
	}
	if existing != nil {
		return User{}, fmt.Errorf("%w: username already taken", ErrUserDataInvalid)
	}

	user.Uid = uuid.New().String()
	id, err := s.repo.Store(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.Id = id
	log.Infof("Created user %s (%s)", user.Username, user.Uid)
	return user, nil
}

func (s *ServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	current, err := CurrentUser(ctx)
	if err != nil {
		return User{}, ErrUserNotFound
	}
	return current, nil
}

func (s *ServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	found, err := s.repo.FindByUid(ctx, uid)
	if err != nil {
		return User{}, err
	}
	if found == nil {
		return User{}, ErrUserNotFound
	}
	return *found, nil
}

func (s *ServiceImpl) UpdateUser(ctx context.Context, user User) (User, error) {
	current, err := CurrentUser(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	user.Id = current.Id
	user.Uid = current.Uid

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return User{}, err
	}
	if !updated {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *ServiceImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	found, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return found == nil, nil
}

func (s *ServiceImpl) GetAvailableUsers(ctx context.Context) ([]User, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) DeleteUser(ctx context.Context, uid string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, uid)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("user not deleted, probably because it does not exist (%s)", uid)
		return false, ErrUserNotFound
	}
	return true, nil
}
