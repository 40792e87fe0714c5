package report

import (
	"context"
	"time"
)

// StubRepo is an in-memory Repo for tests.
type StubRepo struct {
	reports map[int]Report
	owners  map[int]int
	nextId  int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{
		reports: make(map[int]Report),
		owners:  make(map[int]int),
		nextId:  1,
	}
}

func (r *StubRepo) Store(_ context.Context, userId int, report Report) (int, error) {
	id := r.nextId
	r.nextId++
	report.ID = id
	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now
	r.reports[id] = report
	r.owners[id] = userId
	return id, nil
}

func (r *StubRepo) GetAll(_ context.Context, userId int) ([]Report, error) {
	var result []Report
	for id, report := range r.reports {
		if r.owners[id] == userId {
			result = append(result, report)
		}
	}
	return result, nil
}

func (r *StubRepo) Delete(_ context.Context, userId int, id int) (bool, error) {
	if _, ok := r.reports[id]; !ok || r.owners[id] != userId {
		return false, nil
	}
	delete(r.reports, id)
	delete(r.owners, id)
	return true, nil
}

func (r *StubRepo) Cleanup() {
	r.reports = make(map[int]Report)
	r.owners = make(map[int]int)
	r.nextId = 1
}
