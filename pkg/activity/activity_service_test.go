package activity

import (
	"context"
	"testing"
	"time"

	"github.com/estimatepro/estimatepro/pkg/task"
	"github.com/estimatepro/estimatepro/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})

var activityRepoStub = NewStubRepo()
var taskRepoStub = task.NewStubRepo()

var service Service
var taskService task.Service

func setup(t *testing.T) func() {
	taskService = task.NewTaskService(taskRepoStub)
	service = NewActivityService(activityRepoStub, taskService)
	return func() {
		t.Log("Teardown after test")
		activityRepoStub.Cleanup()
		taskRepoStub.Cleanup()
	}
}

func storedTask(t *testing.T, projectId int, name string) task.Task {
	t.Helper()
	created, err := taskService.Create(ctx, task.Task{ProjectID: projectId, Name: name})
	require.NoError(t, err)
	return created
}

func validActivity(taskId int) Activity {
	return Activity{
		TaskID:         taskId,
		Name:           "Schema design",
		EstimatedCost:  400,
		EstimatedHours: 8,
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should apply status and date defaults", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validActivity(7))

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, StatusPending, created.Status)
		assert.False(t, created.Date.IsZero())
	})

	t.Run("should reject an activity without a task reference", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		activity := validActivity(0)

		_, err := service.Create(ctx, activity)

		assert.ErrorIs(t, err, ErrActivityDataInvalid)
	})

	t.Run("should reject an activity without a name", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		activity := validActivity(7)
		activity.Name = ""

		_, err := service.Create(ctx, activity)

		assert.ErrorIs(t, err, ErrActivityDataInvalid)
	})

	t.Run("should reject a negative cost", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		activity := validActivity(7)
		activity.ActualCost = -1

		_, err := service.Create(ctx, activity)

		assert.ErrorIs(t, err, ErrActivityDataInvalid)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		activity := validActivity(7)
		activity.Status = Status("archived")

		_, err := service.Create(ctx, activity)

		assert.ErrorIs(t, err, ErrActivityDataInvalid)
	})
}

func TestServiceImpl_GetByTask(t *testing.T) {
	t.Run("should return the task's activities oldest first", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		later := validActivity(7)
		later.Name = "Review"
		later.Date = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		_, err := service.Create(ctx, later)
		require.NoError(t, err)

		earlier := validActivity(7)
		earlier.Name = "Draft"
		earlier.Date = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		_, err = service.Create(ctx, earlier)
		require.NoError(t, err)

		other := validActivity(8)
		other.Name = "Unrelated"
		_, err = service.Create(ctx, other)
		require.NoError(t, err)

		activities, err := service.GetByTask(ctx, 7)

		require.NoError(t, err)
		require.Len(t, activities, 2)
		assert.Equal(t, "Draft", activities[0].Name)
		assert.Equal(t, "Review", activities[1].Name)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should delete an existing activity", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validActivity(7))
		require.NoError(t, err)

		err = service.Delete(ctx, created.ID)

		require.NoError(t, err)
		activities, err := service.GetByTask(ctx, 7)
		require.NoError(t, err)
		assert.Empty(t, activities)
	})

	t.Run("should return not found for an unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		err := service.Delete(ctx, 404)

		assert.ErrorIs(t, err, ErrActivityNotFound)
	})

	t.Run("should not delete another user's activity", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validActivity(7))
		require.NoError(t, err)

		otherCtx := user.WithUser(context.Background(), user.User{Id: 2})
		err = service.Delete(otherCtx, created.ID)

		assert.ErrorIs(t, err, ErrActivityNotFound)
	})
}

func TestServiceImpl_ProjectBudget(t *testing.T) {
	t.Run("should sum estimated costs across the project's tasks", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		first := storedTask(t, 3, "Set up database")
		second := storedTask(t, 3, "Build API")
		unrelated := storedTask(t, 4, "Other project work")

		a := validActivity(first.ID)
		a.EstimatedCost = 400
		_, err := service.Create(ctx, a)
		require.NoError(t, err)

		b := validActivity(second.ID)
		b.EstimatedCost = 250
		_, err = service.Create(ctx, b)
		require.NoError(t, err)

		c := validActivity(unrelated.ID)
		c.EstimatedCost = 999
		_, err = service.Create(ctx, c)
		require.NoError(t, err)

		total, err := service.ProjectBudget(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, 650.0, total)
	})

	t.Run("should return zero for a project without tasks", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		total, err := service.ProjectBudget(ctx, 42)

		require.NoError(t, err)
		assert.Equal(t, 0.0, total)
	})
}
