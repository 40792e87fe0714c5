package resource

import (
	"context"
	"time"
)

// StubRepo is an in-memory Repo for tests.
type StubRepo struct {
	resources map[int]Resource
	owners    map[int]int
	nextId    int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{
		resources: make(map[int]Resource),
		owners:    make(map[int]int),
		nextId:    1,
	}
}

func (r *StubRepo) Store(_ context.Context, userId int, resource Resource) (int, error) {
	id := r.nextId
	r.nextId++
	resource.ID = id
	now := time.Now().UTC()
	resource.CreatedAt = now
	resource.UpdatedAt = now
	r.resources[id] = resource
	r.owners[id] = userId
	return id, nil
}

func (r *StubRepo) GetAll(_ context.Context, userId int) ([]Resource, error) {
	var result []Resource
	for id, resource := range r.resources {
		if r.owners[id] == userId {
			result = append(result, resource)
		}
	}
	return result, nil
}

func (r *StubRepo) FindById(_ context.Context, userId int, id int) (*Resource, error) {
	resource, ok := r.resources[id]
	if !ok || r.owners[id] != userId {
		return nil, nil
	}
	return &resource, nil
}

func (r *StubRepo) Update(_ context.Context, userId int, resource Resource) (bool, error) {
	existing, ok := r.resources[resource.ID]
	if !ok || r.owners[resource.ID] != userId {
		return false, nil
	}
	resource.CreatedAt = existing.CreatedAt
	resource.UpdatedAt = time.Now().UTC()
	r.resources[resource.ID] = resource
	return true, nil
}

func (r *StubRepo) Delete(_ context.Context, userId int, id int) (bool, error) {
	if _, ok := r.resources[id]; !ok || r.owners[id] != userId {
		return false, nil
	}
	delete(r.resources, id)
	delete(r.owners, id)
	return true, nil
}

func (r *StubRepo) Cleanup() {
	r.resources = make(map[int]Resource)
	r.owners = make(map[int]int)
	r.nextId = 1
}
