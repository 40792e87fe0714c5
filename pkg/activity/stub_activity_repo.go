package activity

import (
	"context"
	"sort"
	"time"
)

// StubRepo is an in-memory Repo for tests.
type StubRepo struct {
	activities map[int]Activity
	owners     map[int]int
	nextId     int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{
		activities: make(map[int]Activity),
		owners:     make(map[int]int),
		nextId:     1,
	}
}

func (r *StubRepo) Store(_ context.Context, userId int, activity Activity) (int, error) {
	id := r.nextId
	r.nextId++
	activity.ID = id
	now := time.Now().UTC()
	activity.CreatedAt = now
	activity.UpdatedAt = now
	r.activities[id] = activity
	r.owners[id] = userId
	return id, nil
}

// GetByTask returns the task's activities oldest first, matching the real
// repo's ORDER BY date.
func (r *StubRepo) GetByTask(_ context.Context, userId int, taskId int) ([]Activity, error) {
	var result []Activity
	for id, activity := range r.activities {
		if r.owners[id] == userId && activity.TaskID == taskId {
			result = append(result, activity)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (r *StubRepo) FindById(_ context.Context, userId int, id int) (*Activity, error) {
	activity, ok := r.activities[id]
	if !ok || r.owners[id] != userId {
		return nil, nil
	}
	return &activity, nil
}

func (r *StubRepo) Delete(_ context.Context, userId int, id int) (bool, error) {
	if _, ok := r.activities[id]; !ok || r.owners[id] != userId {
		return false, nil
	}
	delete(r.activities, id)
	delete(r.owners, id)
	return true, nil
}

func (r *StubRepo) SumEstimatedCost(_ context.Context, userId int, taskIds []int) (float64, error) {
	wanted := make(map[int]bool, len(taskIds))
	for _, taskId := range taskIds {
		wanted[taskId] = true
	}
	total := 0.0
	for id, activity := range r.activities {
		if r.owners[id] == userId && wanted[activity.TaskID] {
			total += activity.EstimatedCost
		}
	}
	return total, nil
}

func (r *StubRepo) Cleanup() {
	r.activities = make(map[int]Activity)
	r.owners = make(map[int]int)
	r.nextId = 1
}
