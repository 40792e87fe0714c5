package estimation

import (
	"context"
	"testing"

	"github.com/estimatepro/estimatepro/internal/event_bus"
	"github.com/estimatepro/estimatepro/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})

var estimationRepoStub = NewStubRepo()

var service Service
var bus *event_bus.EventBus

func setup(t *testing.T) func() {
	bus = event_bus.NewEventBus()
	service = NewEstimationService(estimationRepoStub, bus)
	return func() {
		t.Log("Teardown after test")
		estimationRepoStub.Cleanup()
	}
}

func validEstimation() Estimation {
	return Estimation{
		ProjectID:   7,
		ProjectName: "Website Relaunch",
		Categories: []CostCategory{
			{Name: "Labor", Items: []CostItem{
				{Name: "Development", Cost: Labor{Hours: 10, Rate: 50}},
			}},
		},
		Timeline: Timeline{Phases: []Phase{
			{Name: "Discovery", Status: PhaseCompleted},
			{Name: "Build", Status: PhasePlanned},
		}},
		ContingencyPercent: 10,
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should compute derived fields and apply defaults", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validEstimation())

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, 500.0, created.Subtotal)
		assert.Equal(t, 50.0, created.ContingencyAmount)
		assert.Equal(t, 550.0, created.FinalCost)
		assert.Equal(t, 50, created.Progress)
		assert.Equal(t, StatusDraft, created.Status)
		assert.Equal(t, RiskMedium, created.RiskLevel)
	})

	t.Run("should reject contingency outside 0-100", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		estimation := validEstimation()
		estimation.ContingencyPercent = 120

		_, err := service.Create(ctx, estimation)

		assert.ErrorIs(t, err, ErrContingencyOutOfRange)
	})

	t.Run("should reject an estimation without a project reference", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		estimation := validEstimation()
		estimation.ProjectID = 0

		_, err := service.Create(ctx, estimation)

		assert.ErrorIs(t, err, ErrEstimationDataInvalid)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		estimation := validEstimation()
		estimation.Status = Status("archived")

		_, err := service.Create(ctx, estimation)

		assert.ErrorIs(t, err, ErrEstimationStatusUnknown)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Create(context.Background(), validEstimation())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should recompute totals from the updated breakdown", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validEstimation())
		require.NoError(t, err)

		created.Categories = []CostCategory{
			{Name: "Labor", Items: []CostItem{
				{Name: "Development", Cost: Labor{Hours: 20, Rate: 50}},
			}},
		}
		created.ContingencyPercent = 20

		updated, err := service.Update(ctx, created)

		require.NoError(t, err)
		assert.Equal(t, 1000.0, updated.Subtotal)
		assert.Equal(t, 200.0, updated.ContingencyAmount)
		assert.Equal(t, 1200.0, updated.FinalCost)
	})

	t.Run("should return not found for a foreign estimation", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validEstimation())
		require.NoError(t, err)

		otherCtx := user.WithUser(context.Background(), user.User{Id: 2})
		_, err = service.Update(otherCtx, created)

		assert.ErrorIs(t, err, ErrEstimationNotFound)
	})
}

func TestServiceImpl_UpdateStatus(t *testing.T) {
	t.Run("should update the status of an existing estimation", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validEstimation())
		require.NoError(t, err)

		err = service.UpdateStatus(ctx, created.ID, StatusApproved)

		require.NoError(t, err)
		found, err := service.GetById(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, found.Status)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validEstimation())
		require.NoError(t, err)

		err = service.UpdateStatus(ctx, created.ID, Status("archived"))

		assert.ErrorIs(t, err, ErrEstimationStatusUnknown)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should delete and publish an event", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		var deletedEvents []event_bus.EstimationEvent
		event_bus.SubscribeTyped(bus, event_bus.EstimationDeleted, func(e event_bus.EventT[event_bus.EstimationEvent]) error {
			deletedEvents = append(deletedEvents, e.Data)
			return nil
		})

		created, err := service.Create(ctx, validEstimation())
		require.NoError(t, err)

		err = service.Delete(ctx, created.ID)

		require.NoError(t, err)
		_, err = service.GetById(ctx, created.ID)
		assert.ErrorIs(t, err, ErrEstimationNotFound)
		require.Len(t, deletedEvents, 1)
		assert.Equal(t, created.ID, deletedEvents[0].EstimationID)
	})

	t.Run("should return not found for an unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		err := service.Delete(ctx, 404)

		assert.ErrorIs(t, err, ErrEstimationNotFound)
	})
}
