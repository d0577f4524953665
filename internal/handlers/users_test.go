package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/profast/parcel-api/internal/models"
)

func TestRequiresCredential(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, decode(t, w).Success)
}

func TestUpsertUser_RegisterThenLogin(t *testing.T) {
	env := newTestEnv(t)
	first := time.Now().Add(-time.Hour).UTC()

	env.users.On("UpsertOnLogin", mock.Anything, userEmail, "Ann", "https://img/a.png").
		Return(&models.User{Email: userEmail, Name: "Ann", Role: models.RoleUser, CreatedAt: first, LastLoginAt: first}, true, nil).Once()
	env.users.On("UpsertOnLogin", mock.Anything, userEmail, "Ann B", "https://img/b.png").
		Return(&models.User{Email: userEmail, Name: "Ann B", Role: models.RoleRider, CreatedAt: first, LastLoginAt: time.Now().UTC()}, false, nil).Once()

	w := env.do(t, http.MethodPost, "/users", userEmail, map[string]interface{}{
		"email": userEmail, "name": "Ann", "photoURL": "https://img/a.png",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered struct {
		Created bool        `json:"created"`
		User    models.User `json:"user"`
	}
	decodeData(t, w, &registered)
	assert.True(t, registered.Created)
	assert.Equal(t, models.RoleUser, registered.User.Role)

	w = env.do(t, http.MethodPost, "/users", userEmail, map[string]interface{}{
		"name": "Ann B", "photoURL": "https://img/b.png", "role": "admin",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Created bool        `json:"created"`
		User    models.User `json:"user"`
	}
	decodeData(t, w, &login)
	assert.False(t, login.Created)
	assert.Equal(t, models.RoleRider, login.User.Role)
}

func TestUpsertUser_OtherEmailForbidden(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/users", userEmail, map[string]interface{}{"email": "other@example.com"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	env.users.AssertNotCalled(t, "UpsertOnLogin", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetUserAndRole(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("FindByEmail", mock.Anything, "rider@example.com").
		Return(&models.User{Email: "rider@example.com", Role: models.RoleRider}, nil).Twice()
	env.users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, models.ErrNotFound).Once()

	w := env.do(t, http.MethodGet, "/users/Rider@example.com", userEmail, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/users/rider@example.com/role", userEmail, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var role map[string]string
	decodeData(t, w, &role)
	assert.Equal(t, "rider", role["role"])

	w = env.do(t, http.MethodGet, "/users/ghost@example.com", userEmail, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("List", mock.Anything).Return([]models.User{{Email: "b@example.com"}, {Email: "a@example.com"}}, nil).Once()

	w := env.do(t, http.MethodGet, "/users", userEmail, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []models.User
	decodeData(t, w, &users)
	assert.Len(t, users, 2)
}

func TestUpdateUserRole(t *testing.T) {
	t.Run("non-admin is forbidden whatever the query says", func(t *testing.T) {
		env := newTestEnv(t)
		env.asUser(userEmail)

		w := env.do(t, http.MethodPatch, "/users/role/"+userEmail+"?role=admin", userEmail, map[string]interface{}{"role": "admin"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		env.users.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("role outside the closed set", func(t *testing.T) {
		env := newTestEnv(t)
		env.asAdmin()

		w := env.do(t, http.MethodPatch, "/users/role/"+userEmail, adminEmail, map[string]interface{}{"role": "superuser"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		env := newTestEnv(t)
		env.asAdmin()
		env.users.On("UpdateRole", mock.Anything, "ghost@example.com", models.RoleRider).Return(nil, models.ErrNotFound).Once()

		w := env.do(t, http.MethodPatch, "/users/role/ghost@example.com", adminEmail, map[string]interface{}{"role": "rider"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("admin sets role", func(t *testing.T) {
		env := newTestEnv(t)
		env.asAdmin()
		now := time.Now().UTC()
		env.users.On("UpdateRole", mock.Anything, userEmail, models.RoleAdmin).
			Return(&models.User{Email: userEmail, Role: models.RoleAdmin, RoleUpdatedAt: &now}, nil).Once()

		w := env.do(t, http.MethodPatch, "/users/role/"+userEmail, adminEmail, map[string]interface{}{"role": "Admin"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var user models.User
		decodeData(t, w, &user)
		assert.Equal(t, models.RoleAdmin, user.Role)
		assert.NotNil(t, user.RoleUpdatedAt)
	})
}
