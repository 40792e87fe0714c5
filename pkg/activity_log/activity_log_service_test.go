package activity_log

import (
	"context"
	"testing"

	"github.com/estimatepro/estimatepro/internal/event_bus"
	"github.com/estimatepro/estimatepro/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})

var activityLogRepoStub = NewStubRepo()

var service Service
var bus *event_bus.EventBus

func setup(t *testing.T) func() {
	bus = event_bus.NewEventBus()
	service = NewActivityLogService(activityLogRepoStub, bus)
	return func() {
		t.Log("Teardown after test")
		activityLogRepoStub.Cleanup()
	}
}

func TestServiceImpl_Events(t *testing.T) {
	t.Run("should record an entry for a project event", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		err := bus.Publish(event_bus.NewEvent(ctx, event_bus.ProjectCreated, event_bus.ProjectEvent{
			ProjectID:   42,
			ProjectName: "Website Relaunch",
			Status:      "planning",
		}))
		require.NoError(t, err)

		recent, err := service.GetRecent(ctx, 10)

		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, `created project "Website Relaunch"`, recent[0].Description)
		assert.Equal(t, "project", recent[0].EntityType)
		assert.Equal(t, 42, recent[0].EntityID)
	})

	t.Run("should record an entry for an estimation event", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		err := bus.Publish(event_bus.NewEvent(ctx, event_bus.EstimationDeleted, event_bus.EstimationEvent{
			EstimationID: 7,
			ProjectID:    42,
			ProjectName:  "Website Relaunch",
		}))
		require.NoError(t, err)

		recent, err := service.GetRecent(ctx, 10)

		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, `deleted estimation for "Website Relaunch"`, recent[0].Description)
		assert.Equal(t, "estimation", recent[0].EntityType)
	})

	t.Run("should drop events published without a user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		err := bus.Publish(event_bus.NewEvent(context.Background(), event_bus.ProjectCreated, event_bus.ProjectEvent{
			ProjectID:   42,
			ProjectName: "Website Relaunch",
		}))
		require.NoError(t, err)

		recent, err := service.GetRecent(ctx, 10)

		require.NoError(t, err)
		assert.Empty(t, recent)
	})
}

func TestServiceImpl_GetRecent(t *testing.T) {
	t.Run("should apply the default limit", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		for i := 0; i < 15; i++ {
			err := bus.Publish(event_bus.NewEvent(ctx, event_bus.ProjectUpdated, event_bus.ProjectEvent{
				ProjectID:   i + 1,
				ProjectName: "Website Relaunch",
			}))
			require.NoError(t, err)
		}

		recent, err := service.GetRecent(ctx, 0)

		require.NoError(t, err)
		assert.Len(t, recent, 10)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.GetRecent(context.Background(), 10)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}
