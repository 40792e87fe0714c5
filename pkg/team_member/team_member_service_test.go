package team_member

import (
	"context"
	"testing"

	"github.com/estimatepro/estimatepro/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})

var teamMemberRepoStub = NewStubRepo()

var service Service

func setup(t *testing.T) func() {
	service = NewTeamMemberService(teamMemberRepoStub)
	return func() {
		t.Log("Teardown after test")
		teamMemberRepoStub.Cleanup()
	}
}

func validMember() TeamMember {
	return TeamMember{
		Name:       "Dana Miller",
		Email:      "dana@example.com",
		Role:       RoleDeveloper,
		HourlyRate: 95,
		Skills:     []string{"go", "postgres"},
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should normalize the email and default to available", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		member := validMember()
		member.Email = "  Dana@Example.COM "

		created, err := service.Create(ctx, member)

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "dana@example.com", created.Email)
		assert.Equal(t, Available, created.Availability)
	})

	t.Run("should reject an invalid email", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		member := validMember()
		member.Email = "not-an-email"

		_, err := service.Create(ctx, member)

		assert.ErrorIs(t, err, ErrMemberDataInvalid)
	})

	t.Run("should reject an unknown role", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		member := validMember()
		member.Role = Role("intern")

		_, err := service.Create(ctx, member)

		assert.ErrorIs(t, err, ErrMemberDataInvalid)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should return not found for a foreign member", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validMember())
		require.NoError(t, err)

		otherCtx := user.WithUser(context.Background(), user.User{Id: 2})
		_, err = service.Update(otherCtx, created)

		assert.ErrorIs(t, err, ErrMemberNotFound)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should delete an existing member", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validMember())
		require.NoError(t, err)

		err = service.Delete(ctx, created.ID)

		require.NoError(t, err)
		_, err = service.GetById(ctx, created.ID)
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})
}
