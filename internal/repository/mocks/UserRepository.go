package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	models "github.com/profast/parcel-api/internal/models"
)

// UserRepository is a mock type for the UserRepository type
type UserRepository struct {
	mock.Mock
}

// FindByEmail provides a mock function with given fields: ctx, email
func (_m *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ret := _m.Called(ctx, email)

	var r0 *models.User
	if rf, ok := ret.Get(0).(func(context.Context, string) *models.User); ok {
		r0 = rf(ctx, email)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, email)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// List provides a mock function with given fields: ctx
func (_m *UserRepository) List(ctx context.Context) ([]models.User, error) {
	ret := _m.Called(ctx)

	var r0 []models.User
	if rf, ok := ret.Get(0).(func(context.Context) []models.User); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.User)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpdateRole provides a mock function with given fields: ctx, email, role
func (_m *UserRepository) UpdateRole(ctx context.Context, email string, role models.Role) (*models.User, error) {
	ret := _m.Called(ctx, email, role)

	var r0 *models.User
	if rf, ok := ret.Get(0).(func(context.Context, string, models.Role) *models.User); ok {
		r0 = rf(ctx, email, role)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, models.Role) error); ok {
		r1 = rf(ctx, email, role)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpsertOnLogin provides a mock function with given fields: ctx, email, name, photoURL
func (_m *UserRepository) UpsertOnLogin(ctx context.Context, email string, name string, photoURL string) (*models.User, bool, error) {
	ret := _m.Called(ctx, email, name, photoURL)

	var r0 *models.User
	if rf, ok := ret.Get(0).(func(context.Context, string, string, string) *models.User); ok {
		r0 = rf(ctx, email, name, photoURL)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	var r1 bool
	if rf, ok := ret.Get(1).(func(context.Context, string, string, string) bool); ok {
		r1 = rf(ctx, email, name, photoURL)
	} else {
		r1 = ret.Get(1).(bool)
	}

	var r2 error
	if rf, ok := ret.Get(2).(func(context.Context, string, string, string) error); ok {
		r2 = rf(ctx, email, name, photoURL)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// NewUserRepository creates a new instance of UserRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserRepository {
	mock := &UserRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
