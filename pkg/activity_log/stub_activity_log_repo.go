package activity_log

import (
	"context"
	"sort"
	"time"
)

// StubRepo is an in-memory Repo for tests.
type StubRepo struct {
	entries map[int]ActivityLog
	owners  map[int]int
	nextId  int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{
		entries: make(map[int]ActivityLog),
		owners:  make(map[int]int),
		nextId:  1,
	}
}

func (r *StubRepo) Store(_ context.Context, userId int, entry ActivityLog) (int, error) {
	id := r.nextId
	r.nextId++
	entry.ID = id
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	r.entries[id] = entry
	r.owners[id] = userId
	return id, nil
}

func (r *StubRepo) GetRecent(_ context.Context, userId int, limit int) ([]ActivityLog, error) {
	var result []ActivityLog
	for id, entry := range r.entries {
		if r.owners[id] == userId {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *StubRepo) Cleanup() {
	r.entries = make(map[int]ActivityLog)
	r.owners = make(map[int]int)
	r.nextId = 1
}
