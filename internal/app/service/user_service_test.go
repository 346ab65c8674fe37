package service

import (
	"context"
	"testing"
	"todo_api/internal/common"
	"todo_api/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo *fakeUserRepo, id, email, role string) {
	t.Helper()
	err := repo.Create(context.Background(), &model.User{
		ID:    id,
		Name:  "seed user",
		Email: email,
		Role:  role,
	})
	require.NoError(t, err)
}

func strPtr(s string) *string { return &s }

func TestGetUserInfor(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	seedUser(t, repo, "u1", "u1@example.com", model.RoleUser)

	user, err := svc.GetUserInfor(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", user.Email)
	assert.Empty(t, user.HashedPassword)

	_, err = svc.GetUserInfor(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "User not found", err.Error())
	assert.Equal(t, 404, common.HTTPStatusFromError(err))
}

func TestListUsersStripsSecrets(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	seedUser(t, repo, "u1", "u1@example.com", model.RoleUser)
	seedUser(t, repo, "u2", "u2@example.com", model.RoleAdmin)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.HashedPassword)
	}
}

// Non-admin callers may not set role or email; those fields are silently
// dropped rather than rejected.
func TestUpdateUserFieldPermissions(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	seedUser(t, repo, "u1", "u1@example.com", model.RoleUser)

	user, err := svc.UpdateUser(context.Background(), model.RoleUser, "u1", UpdateUserRequest{
		Name:  strPtr("new name"),
		Email: strPtr("hijack@example.com"),
		Role:  strPtr(model.RoleAdmin),
		Bio:   strPtr("hello"),
	})
	require.NoError(t, err)

	assert.Equal(t, "new name", user.Name)
	assert.Equal(t, "hello", user.Bio)
	assert.Equal(t, "u1@example.com", user.Email, "email change dropped for non-admin")
	assert.Equal(t, model.RoleUser, user.Role, "role change dropped for non-admin")
}

func TestUpdateUserAdminMaySetRoleAndEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	seedUser(t, repo, "u1", "u1@example.com", model.RoleUser)

	user, err := svc.UpdateUser(context.Background(), model.RoleAdmin, "u1", UpdateUserRequest{
		Email: strPtr("renamed@example.com"),
		Role:  strPtr(model.RoleAdmin),
	})
	require.NoError(t, err)

	assert.Equal(t, "renamed@example.com", user.Email)
	assert.Equal(t, model.RoleAdmin, user.Role)
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	seedUser(t, repo, "u1", "u1@example.com", model.RoleUser)

	_, err := svc.UpdateUser(context.Background(), model.RoleAdmin, "u1", UpdateUserRequest{
		Role: strPtr("superuser"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdateUserNotFound(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	_, err := svc.UpdateUser(context.Background(), model.RoleAdmin, "missing", UpdateUserRequest{
		Name: strPtr("whoever"),
	})
	require.Error(t, err)
	assert.Equal(t, "User not found", err.Error())
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	seedUser(t, repo, "u1", "u1@example.com", model.RoleUser)

	require.NoError(t, svc.DeleteUser(context.Background(), "u1"))

	err := svc.DeleteUser(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, "User not found", err.Error())
}
