package project

import (
	"context"
	"testing"
	"time"

	"github.com/estimatepro/estimatepro/internal/event_bus"
	"github.com/estimatepro/estimatepro/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})

var projectRepoStub = NewStubRepo()

var service Service
var bus *event_bus.EventBus

func setup(t *testing.T) func() {
	bus = event_bus.NewEventBus()
	service = NewProjectService(projectRepoStub, bus)
	return func() {
		t.Log("Teardown after test")
		projectRepoStub.Cleanup()
	}
}

func validProject() Project {
	return Project{
		Name:            "Website Relaunch",
		StartDate:       time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		EstimatedBudget: 50000,
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should create a project with defaults and publish an event", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		var createdEvents []event_bus.ProjectEvent
		event_bus.SubscribeTyped(bus, event_bus.ProjectCreated, func(e event_bus.EventT[event_bus.ProjectEvent]) error {
			createdEvents = append(createdEvents, e.Data)
			return nil
		})

		created, err := service.Create(ctx, validProject())

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, StatusPlanning, created.Status)
		assert.Equal(t, PriorityMedium, created.Priority)
		require.Len(t, createdEvents, 1)
		assert.Equal(t, "Website Relaunch", createdEvents[0].ProjectName)
	})

	t.Run("should reject a too short name", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		project := validProject()
		project.Name = "Ab"

		_, err := service.Create(ctx, project)

		assert.ErrorIs(t, err, ErrProjectDataInvalid)
	})

	t.Run("should reject an end date before the start date", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		project := validProject()
		project.EndDate = project.StartDate.AddDate(0, 0, -1)

		_, err := service.Create(ctx, project)

		assert.ErrorIs(t, err, ErrProjectDataInvalid)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Create(context.Background(), validProject())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestServiceImpl_GetAll(t *testing.T) {
	t.Run("should return projects newest first", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		for _, name := range []string{"First", "Second", "Third"} {
			project := validProject()
			project.Name = name
			_, err := service.Create(ctx, project)
			require.NoError(t, err)
		}

		all, err := service.GetAll(ctx)

		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "Third", all[0].Name)
		assert.Equal(t, "Second", all[1].Name)
		assert.Equal(t, "First", all[2].Name)
	})
}

func TestServiceImpl_UpdateStatus(t *testing.T) {
	t.Run("should update the status", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validProject())
		require.NoError(t, err)

		err = service.UpdateStatus(ctx, created.ID, StatusCompleted)

		require.NoError(t, err)
		found, err := service.GetById(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, found.Status)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validProject())
		require.NoError(t, err)

		err = service.UpdateStatus(ctx, created.ID, Status("archived"))

		assert.ErrorIs(t, err, ErrProjectStatusUnknown)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should not delete another user's project", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validProject())
		require.NoError(t, err)

		otherCtx := user.WithUser(context.Background(), user.User{Id: 2})
		err = service.Delete(otherCtx, created.ID)

		assert.ErrorIs(t, err, ErrProjectNotFound)
		_, err = service.GetById(ctx, created.ID)
		assert.NoError(t, err)
	})
}
