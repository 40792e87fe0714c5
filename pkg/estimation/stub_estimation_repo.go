package estimation

import (
	"context"
	"sort"
	"time"
)

// StubRepo is an in-memory Repo for tests.
type StubRepo struct {
	estimations map[int]Estimation
	owners      map[int]int
	nextId      int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{
		estimations: make(map[int]Estimation),
		owners:      make(map[int]int),
		nextId:      1,
	}
}

func (r *StubRepo) Store(_ context.Context, userId int, estimation Estimation) (int, error) {
	id := r.nextId
	r.nextId++
	estimation.ID = id
	now := time.Now().UTC()
	estimation.CreatedAt = now
	estimation.UpdatedAt = now
	r.estimations[id] = estimation
	r.owners[id] = userId
	return id, nil
}

// GetAll returns the user's estimations newest first, matching the real
// repo's ORDER BY created_at DESC.
func (r *StubRepo) GetAll(_ context.Context, userId int) ([]Estimation, error) {
	var result []Estimation
	for id, estimation := range r.estimations {
		if r.owners[id] == userId {
			result = append(result, estimation)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r *StubRepo) FindById(_ context.Context, userId int, id int) (*Estimation, error) {
	estimation, ok := r.estimations[id]
	if !ok || r.owners[id] != userId {
		return nil, nil
	}
	return &estimation, nil
}

func (r *StubRepo) Update(_ context.Context, userId int, estimation Estimation) (bool, error) {
	existing, ok := r.estimations[estimation.ID]
	if !ok || r.owners[estimation.ID] != userId {
		return false, nil
	}
	estimation.CreatedAt = existing.CreatedAt
	estimation.UpdatedAt = time.Now().UTC()
	r.estimations[estimation.ID] = estimation
	return true, nil
}

func (r *StubRepo) UpdateStatus(_ context.Context, userId int, id int, status Status) (bool, error) {
	estimation, ok := r.estimations[id]
	if !ok || r.owners[id] != userId {
		return false, nil
	}
	estimation.Status = status
	estimation.UpdatedAt = time.Now().UTC()
	r.estimations[id] = estimation
	return true, nil
}

func (r *StubRepo) Delete(_ context.Context, userId int, id int) (bool, error) {
	if _, ok := r.estimations[id]; !ok || r.owners[id] != userId {
		return false, nil
	}
	delete(r.estimations, id)
	delete(r.owners, id)
	return true, nil
}

func (r *StubRepo) Cleanup() {
	r.estimations = make(map[int]Estimation)
	r.owners = make(map[int]int)
	r.nextId = 1
}
