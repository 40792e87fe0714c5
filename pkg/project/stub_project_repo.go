package project

import (
	"context"
	"sort"
	"time"
)

// StubRepo is an in-memory Repo for tests.
type StubRepo struct {
	projects map[int]Project
	owners   map[int]int
	nextId   int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{
		projects: make(map[int]Project),
		owners:   make(map[int]int),
		nextId:   1,
	}
}

func (r *StubRepo) Store(_ context.Context, userId int, project Project) (int, error) {
	id := r.nextId
	r.nextId++
	project.ID = id
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now
	r.projects[id] = project
	r.owners[id] = userId
	return id, nil
}

// GetAll returns the user's projects newest first, matching the real repo's
// ORDER BY created_at DESC. Ids are monotonic, so they stand in for time.
func (r *StubRepo) GetAll(_ context.Context, userId int) ([]Project, error) {
	var result []Project
	for id, project := range r.projects {
		if r.owners[id] == userId {
			result = append(result, project)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r *StubRepo) FindById(_ context.Context, userId int, id int) (*Project, error) {
	project, ok := r.projects[id]
	if !ok || r.owners[id] != userId {
		return nil, nil
	}
	return &project, nil
}

func (r *StubRepo) Update(_ context.Context, userId int, project Project) (bool, error) {
	existing, ok := r.projects[project.ID]
	if !ok || r.owners[project.ID] != userId {
		return false, nil
	}
	project.CreatedAt = existing.CreatedAt
	project.UpdatedAt = time.Now().UTC()
	r.projects[project.ID] = project
	return true, nil
}

func (r *StubRepo) UpdateStatus(_ context.Context, userId int, id int, status Status) (bool, error) {
	project, ok := r.projects[id]
	if !ok || r.owners[id] != userId {
		return false, nil
	}
	project.Status = status
	project.UpdatedAt = time.Now().UTC()
	r.projects[id] = project
	return true, nil
}

func (r *StubRepo) Delete(_ context.Context, userId int, id int) (bool, error) {
	if _, ok := r.projects[id]; !ok || r.owners[id] != userId {
		return false, nil
	}
	delete(r.projects, id)
	delete(r.owners, id)
	return true, nil
}

func (r *StubRepo) Cleanup() {
	r.projects = make(map[int]Project)
	r.owners = make(map[int]int)
	r.nextId = 1
}
