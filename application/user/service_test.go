package user

import (
	"context"
	"fmt"
	"math"
	"testing"

	"storefront/domain/shared"
	"storefront/domain/user"
	"storefront/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = shared.Principal{UserID: "admin-1", Role: shared.RoleAdmin}

func setup(t *testing.T, n int) (*ApplicationService, *memory.UserRepository) {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	for i := 0; i < n; i++ {
		u, err := user.NewUser(fmt.Sprintf("user-%d", i), fmt.Sprintf("User %d", i), fmt.Sprintf("user%d@example.com", i), user.Contact{})
		require.NoError(t, err)
		require.NoError(t, users.Save(context.Background(), u))
	}
	return NewApplicationService(users, memory.NewUnitOfWork(store)), users
}

func TestListUsersRequiresAdmin(t *testing.T) {
	svc, _ := setup(t, 1)

	_, err := svc.ListUsers(context.Background(), shared.Principal{UserID: "user-0", Role: shared.RoleUser}, 1, 10)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = svc.ListUsers(context.Background(), shared.Principal{}, 1, 10)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestListUsersPaginates(t *testing.T) {
	svc, _ := setup(t, 12)

	page, err := svc.ListUsers(context.Background(), admin, 2, 5)
	require.NoError(t, err)
	assert.Len(t, page.Users, 5)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 3, page.TotalPages)

	require.NotPanics(t, func() {
		page, err = svc.ListUsers(context.Background(), admin, math.MaxInt, 5)
	})
	require.NoError(t, err)
	assert.Empty(t, page.Users)
	assert.Equal(t, int64(12), page.Total)
}

func TestUpdateUserRoleAndActive(t *testing.T) {
	svc, users := setup(t, 1)
	role := "admin"
	inactive := false

	resp, err := svc.UpdateUser(context.Background(), admin, "user-0", UpdateUserRequest{Role: &role, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)
	assert.False(t, resp.IsActive)

	stored, err := users.FindByID(context.Background(), "user-0")
	require.NoError(t, err)
	assert.Equal(t, shared.RoleAdmin, stored.Role())
	assert.False(t, stored.IsActive())
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	svc, users := setup(t, 1)
	role := "superuser"
	active := false

	_, err := svc.UpdateUser(context.Background(), admin, "user-0", UpdateUserRequest{Role: &role, IsActive: &active})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	stored, err := users.FindByID(context.Background(), "user-0")
	require.NoError(t, err)
	assert.True(t, stored.IsActive(), "rejected update must not be persisted")
}

func TestUpdateUserNotFound(t *testing.T) {
	svc, _ := setup(t, 0)
	_, err := svc.UpdateUser(context.Background(), admin, "ghost", UpdateUserRequest{})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
