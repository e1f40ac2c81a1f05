package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"
)

func TestRegister_CreatesRoleProfiles(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := context.Background()

	resp, err := env.svc.Auth.Register(ctx, &dto.RegisterRequest{
		FirstName: "Anna",
		LastName:  "Doe",
		Email:     "anna@test.com",
		Username:  "anna",
		Password:  "super_password123",
		Role:      "customer",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "customer", resp.Role)
	require.NotEmpty(t, resp.User.CustomerID)
	assert.Empty(t, resp.User.FreelancerID)
	assert.Equal(t, "user.png", resp.User.Image)

	customerID, err := primitive.ObjectIDFromHex(resp.User.CustomerID)
	require.NoError(t, err)
	customer, err := env.customers.FindByID(ctx, customerID)
	require.NoError(t, err)

	userID, err := primitive.ObjectIDFromHex(resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, customer.UserID)

	frResp, err := env.svc.Auth.Register(ctx, &dto.RegisterRequest{
		FirstName: "Bekzat",
		LastName:  "Lee",
		Email:     "bekzat@test.com",
		Username:  "bekzat",
		Password:  "super_password123",
		Role:      "freelancer",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, frResp.User.FreelancerID)
	assert.Empty(t, frResp.User.CustomerID)
}

func TestRegister_DuplicateEmailAndUsername(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := context.Background()

	base := dto.RegisterRequest{
		FirstName: "Anna",
		LastName:  "Doe",
		Email:     "anna@test.com",
		Username:  "anna",
		Password:  "super_password123",
		Role:      "customer",
	}
	_, err := env.svc.Auth.Register(ctx, &base)
	require.NoError(t, err)

	dupEmail := base
	dupEmail.Username = "someone_else"
	_, err = env.svc.Auth.Register(ctx, &dupEmail)
	requireCode(t, err, apperrors.CodeAlreadyExists)

	dupUsername := base
	dupUsername.Email = "other@test.com"
	_, err = env.svc.Auth.Register(ctx, &dupUsername)
	requireCode(t, err, apperrors.CodeAlreadyExists)
}

func TestRegister_RejectsAdminRole(t *testing.T) {
	t.Parallel()
	env := newTestEnv()

	_, err := env.svc.Auth.Register(context.Background(), &dto.RegisterRequest{
		FirstName: "Eve",
		LastName:  "Admin",
		Email:     "eve@test.com",
		Username:  "eve",
		Password:  "super_password123",
		Role:      "admin",
	})
	requireCode(t, err, apperrors.CodeInvalidArgument)
}

func TestLogin_ByEmailOrUsername(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := context.Background()
	seedCustomerWithCreds(t, env, "anna@test.com", "anna", "super_password123")

	byEmail, err := env.svc.Auth.Login(ctx, &dto.LoginRequest{Identifier: "anna@test.com", Password: "super_password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, byEmail.AccessToken)

	byUsername, err := env.svc.Auth.Login(ctx, &dto.LoginRequest{Identifier: "anna", Password: "super_password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, byUsername.AccessToken)
}

func TestLogin_OpaqueFailures(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := context.Background()
	seedCustomerWithCreds(t, env, "anna@test.com", "anna", "super_password123")

	_, wrongPass := env.svc.Auth.Login(ctx, &dto.LoginRequest{Identifier: "anna", Password: "wrong"})
	_, unknown := env.svc.Auth.Login(ctx, &dto.LoginRequest{Identifier: "nobody", Password: "whatever"})

	requireCode(t, wrongPass, apperrors.CodeInvalidCredentials)
	requireCode(t, unknown, apperrors.CodeInvalidCredentials)
	// same message, no identifier/password distinction
	assert.Equal(t, wrongPass.Error(), unknown.Error())
}

func TestChangePassword(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := context.Background()
	actor := seedCustomerWithCreds(t, env, "anna@test.com", "anna", "super_password123")

	err := env.svc.Auth.ChangePassword(ctx, actor.UserID, &dto.ChangePasswordRequest{
		OldPassword:     "super_password123",
		Password:        "new_password456",
		ConfirmPassword: "does_not_match",
	})
	requireCode(t, err, apperrors.CodeInvalidArgument)

	err = env.svc.Auth.ChangePassword(ctx, actor.UserID, &dto.ChangePasswordRequest{
		OldPassword:     "wrong_old",
		Password:        "new_password456",
		ConfirmPassword: "new_password456",
	})
	requireCode(t, err, apperrors.CodeInvalidCredentials)

	require.NoError(t, env.svc.Auth.ChangePassword(ctx, actor.UserID, &dto.ChangePasswordRequest{
		OldPassword:     "super_password123",
		Password:        "new_password456",
		ConfirmPassword: "new_password456",
	}))

	_, err = env.svc.Auth.Login(ctx, &dto.LoginRequest{Identifier: "anna", Password: "new_password456"})
	require.NoError(t, err)
}

func seedCustomerWithCreds(t *testing.T, env *testEnv, email, username, password string) Actor {
	t.Helper()
	resp, err := env.svc.Auth.Register(context.Background(), &dto.RegisterRequest{
		FirstName: "Anna",
		LastName:  "Doe",
		Email:     email,
		Username:  username,
		Password:  password,
		Role:      "customer",
	})
	require.NoError(t, err)

	userID, err := primitive.ObjectIDFromHex(resp.User.ID)
	require.NoError(t, err)
	customerID, err := primitive.ObjectIDFromHex(resp.User.CustomerID)
	require.NoError(t, err)
	return Actor{UserID: userID, CustomerID: &customerID}
}
