package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/models"
)

func TestUserLogin(t *testing.T) {
	ts := newTestServices(t)

	// The migration seeds the admin account.
	resp, err := ts.users.Login(&models.LoginRequest{Username: "admin", Password: "admin"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.UserRoleAdmin, resp.User.Role)

	tests := []struct {
		name string
		req  models.LoginRequest
	}{
		{"wrong password", models.LoginRequest{Username: "admin", Password: "nope"}},
		{"unknown user", models.LoginRequest{Username: "ghost", Password: "admin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.users.Login(&tt.req)
			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, 401, appErr.StatusCode)
			assert.Equal(t, "Invalid username or password", appErr.Message)
		})
	}
}

func TestUserCreate(t *testing.T) {
	ts := newTestServices(t)

	user, err := ts.users.Create(&models.UserCreateRequest{
		Username: "sara",
		Password: "secret",
		FullName: "Sara",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleEmployee, user.Role, "role defaults to employee")
	assert.NotEqual(t, "secret", user.Password, "the password is stored hashed")

	resp, err := ts.users.Login(&models.LoginRequest{Username: "sara", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = ts.users.Create(&models.UserCreateRequest{Username: "sara", Password: "other"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.StatusCode)
}

func TestUserDelete(t *testing.T) {
	ts := newTestServices(t)

	user, err := ts.users.Create(&models.UserCreateRequest{Username: "temp", Password: "secret"})
	require.NoError(t, err)
	require.NoError(t, ts.users.Delete(user.ID))

	err = ts.users.Delete(user.ID)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)

	var admin models.User
	require.NoError(t, ts.db.Where("username = ?", "admin").First(&admin).Error)
	err = ts.users.Delete(admin.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.StatusCode, "the built-in admin account is protected")
}
