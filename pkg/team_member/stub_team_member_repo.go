package team_member

import (
	"context"
	"time"
)

// StubRepo is an in-memory Repo for tests.
type StubRepo struct {
	members map[int]TeamMember
	owners  map[int]int
	nextId  int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{
		members: make(map[int]TeamMember),
		owners:  make(map[int]int),
		nextId:  1,
	}
}

func (r *StubRepo) Store(_ context.Context, userId int, member TeamMember) (int, error) {
	id := r.nextId
	r.nextId++
	member.ID = id
	now := time.Now().UTC()
	member.CreatedAt = now
	member.UpdatedAt = now
	r.members[id] = member
	r.owners[id] = userId
	return id, nil
}

func (r *StubRepo) GetAll(_ context.Context, userId int) ([]TeamMember, error) {
	var result []TeamMember
	for id, member := range r.members {
		if r.owners[id] == userId {
			result = append(result, member)
		}
	}
	return result, nil
}

func (r *StubRepo) FindById(_ context.Context, userId int, id int) (*TeamMember, error) {
	member, ok := r.members[id]
	if !ok || r.owners[id] != userId {
		return nil, nil
	}
	return &member, nil
}

func (r *StubRepo) Update(_ context.Context, userId int, member TeamMember) (bool, error) {
	existing, ok := r.members[member.ID]
	if !ok || r.owners[member.ID] != userId {
		return false, nil
	}
	member.CreatedAt = existing.CreatedAt
	member.UpdatedAt = time.Now().UTC()
	r.members[member.ID] = member
	return true, nil
}

func (r *StubRepo) Delete(_ context.Context, userId int, id int) (bool, error) {
	if _, ok := r.members[id]; !ok || r.owners[id] != userId {
		return false, nil
	}
	delete(r.members, id)
	delete(r.owners, id)
	return true, nil
}

func (r *StubRepo) Cleanup() {
	r.members = make(map[int]TeamMember)
	r.owners = make(map[int]int)
	r.nextId = 1
}
