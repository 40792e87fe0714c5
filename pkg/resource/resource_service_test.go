package resource

import (
	"context"
	"testing"

	"github.com/estimatepro/estimatepro/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})

var resourceRepoStub = NewStubRepo()

var service Service

func setup(t *testing.T) func() {
	service = NewResourceService(resourceRepoStub)
	return func() {
		t.Log("Teardown after test")
		resourceRepoStub.Cleanup()
	}
}

func validResource() Resource {
	return Resource{
		Name:     "CI build server",
		Type:     TypeEquipment,
		UnitCost: 120,
		Specifications: map[string]any{
			"cores": 16,
		},
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should create a resource", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validResource())

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
	})

	t.Run("should reject a resource without a name", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		resource := validResource()
		resource.Name = ""

		_, err := service.Create(ctx, resource)

		assert.ErrorIs(t, err, ErrResourceDataInvalid)
	})

	t.Run("should reject an unknown type", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		resource := validResource()
		resource.Type = Type("cloud")

		_, err := service.Create(ctx, resource)

		assert.ErrorIs(t, err, ErrResourceDataInvalid)
	})

	t.Run("should reject a negative unit cost", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		resource := validResource()
		resource.UnitCost = -1

		_, err := service.Create(ctx, resource)

		assert.ErrorIs(t, err, ErrResourceDataInvalid)
	})
}

func TestServiceImpl_GetById(t *testing.T) {
	t.Run("should not return another user's resource", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validResource())
		require.NoError(t, err)

		otherCtx := user.WithUser(context.Background(), user.User{Id: 2})
		_, err = service.GetById(otherCtx, created.ID)

		assert.ErrorIs(t, err, ErrResourceNotFound)
	})
}
