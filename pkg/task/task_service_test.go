package task

import (
	"context"
	"testing"

	"github.com/estimatepro/estimatepro/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})

var taskRepoStub = NewStubRepo()

var service Service

func setup(t *testing.T) func() {
	service = NewTaskService(taskRepoStub)
	return func() {
		t.Log("Teardown after test")
		taskRepoStub.Cleanup()
	}
}

func validTask() Task {
	return Task{
		ProjectID:      7,
		Name:           "Set up database",
		EstimatedHours: 8,
		EstimatedCost:  400,
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should apply status and priority defaults", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validTask())

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, StatusTodo, created.Status)
		assert.Equal(t, PriorityMedium, created.Priority)
	})

	t.Run("should reject a task without a project reference", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		task := validTask()
		task.ProjectID = 0

		_, err := service.Create(ctx, task)

		assert.ErrorIs(t, err, ErrTaskDataInvalid)
	})

	t.Run("should reject negative hours", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		task := validTask()
		task.ActualHours = -1

		_, err := service.Create(ctx, task)

		assert.ErrorIs(t, err, ErrTaskDataInvalid)
	})
}

func TestServiceImpl_GetByProject(t *testing.T) {
	t.Run("should only return the project's tasks", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Create(ctx, validTask())
		require.NoError(t, err)
		other := validTask()
		other.ProjectID = 8
		other.Name = "Write migration"
		_, err = service.Create(ctx, other)
		require.NoError(t, err)

		tasks, err := service.GetByProject(ctx, 7)

		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "Set up database", tasks[0].Name)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should return not found for an unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		err := service.Delete(ctx, 404)

		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}
