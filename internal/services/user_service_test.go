package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhub_backend/internal/services/dto"
)

func TestUserUpdate_PartialFields(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := context.Background()
	actor := seedCustomer(t, env)

	newName := "Maria"
	desc := "Posting design work"
	updated, err := env.svc.User.Update(ctx, actor.UserID, &dto.UpdateUserRequest{
		FirstName:   &newName,
		Description: &desc,
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria", updated.FirstName)
	assert.Equal(t, "Doe", updated.LastName)
	assert.Equal(t, "Posting design work", updated.Description)
}

func TestUserUpdateImage_ReplacesAndDeletesOld(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := context.Background()
	actor := seedCustomer(t, env)

	first, err := env.svc.User.UpdateImage(ctx, actor.UserID, strings.NewReader("png-bytes"), "face.png", "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(first, ".png"))

	exists, err := env.files.Exists(ctx, first)
	require.NoError(t, err)
	assert.True(t, exists)

	// the default placeholder was never a stored file, nothing to delete

	second, err := env.svc.User.UpdateImage(ctx, actor.UserID, strings.NewReader("jpg-bytes"), "face.jpg", "image/jpeg")
	require.NoError(t, err)

	exists, err = env.files.Exists(ctx, first)
	require.NoError(t, err)
	assert.False(t, exists, "previous image should be deleted")

	user, err := env.svc.User.FindOne(ctx, actor.UserID)
	require.NoError(t, err)
	assert.Equal(t, second, user.Image)
}

func TestUserDelete_CascadesProfile(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := context.Background()
	actor := seedCustomer(t, env)

	require.NoError(t, env.svc.User.Delete(ctx, actor.UserID))

	_, err := env.users.FindByID(ctx, actor.UserID)
	require.Error(t, err)
	_, err = env.customers.FindByID(ctx, *actor.CustomerID)
	require.Error(t, err)
}

func TestUserDelete_FreelancerProfile(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := context.Background()
	actor := seedFreelancer(t, env)

	require.NoError(t, env.svc.User.Delete(ctx, actor.UserID))

	_, err := env.freelancers.FindByID(ctx, *actor.FreelancerID)
	require.Error(t, err)
}
