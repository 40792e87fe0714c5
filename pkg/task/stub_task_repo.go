package task

import (
	"context"
	"time"
)

// StubRepo is an in-memory Repo for tests.
type StubRepo struct {
	tasks  map[int]Task
	owners map[int]int
	nextId int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{
		tasks:  make(map[int]Task),
		owners: make(map[int]int),
		nextId: 1,
	}
}

func (r *StubRepo) Store(_ context.Context, userId int, task Task) (int, error) {
	id := r.nextId
	r.nextId++
	task.ID = id
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	r.tasks[id] = task
	r.owners[id] = userId
	return id, nil
}

func (r *StubRepo) GetAll(_ context.Context, userId int) ([]Task, error) {
	var result []Task
	for id, task := range r.tasks {
		if r.owners[id] == userId {
			result = append(result, task)
		}
	}
	return result, nil
}

func (r *StubRepo) GetByProject(_ context.Context, userId int, projectId int) ([]Task, error) {
	var result []Task
	for id, task := range r.tasks {
		if r.owners[id] == userId && task.ProjectID == projectId {
			result = append(result, task)
		}
	}
	return result, nil
}

func (r *StubRepo) FindById(_ context.Context, userId int, id int) (*Task, error) {
	task, ok := r.tasks[id]
	if !ok || r.owners[id] != userId {
		return nil, nil
	}
	return &task, nil
}

func (r *StubRepo) Update(_ context.Context, userId int, task Task) (bool, error) {
	existing, ok := r.tasks[task.ID]
	if !ok || r.owners[task.ID] != userId {
		return false, nil
	}
	task.CreatedAt = existing.CreatedAt
	task.UpdatedAt = time.Now().UTC()
	r.tasks[task.ID] = task
	return true, nil
}

func (r *StubRepo) Delete(_ context.Context, userId int, id int) (bool, error) {
	if _, ok := r.tasks[id]; !ok || r.owners[id] != userId {
		return false, nil
	}
	delete(r.tasks, id)
	delete(r.owners, id)
	return true, nil
}

func (r *StubRepo) Cleanup() {
	r.tasks = make(map[int]Task)
	r.owners = make(map[int]int)
	r.nextId = 1
}
