package user

import (
	"context"
)

type StubRepo struct {
	nextId int
	users  map[int]User
}

func NewStubUserRepo() *StubRepo {
	return &StubRepo{users: map[int]User{}}
}

func (s *StubRepo) Store(ctx context.Context, user User) (int, error) {
	s.nextId++
	user.Id = s.nextId
	s.users[user.Id] = user
	return user.Id, nil
}

func (s *StubRepo) FindByUid(ctx context.Context, uid string) (*User, error) {
	for _, u := range s.users {
		if u.Uid == uid {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *StubRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *StubRepo) Update(ctx context.Context, user User) (bool, error) {
	if _, exists := s.users[user.Id]; !exists {
		return false, nil
	}
	s.users[user.Id] = user
	return true, nil
}

func (s *StubRepo) GetAll(ctx context.Context) ([]User, error) {
	users := make([]User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

func (s *StubRepo) Delete(ctx context.Context, uid string) (bool, error) {
	for id, u := range s.users {
		if u.Uid == uid {
			delete(s.users, id)
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) Cleanup() {
	s.users = map[int]User{}
	s.nextId = 0
}
