package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	models "github.com/profast/parcel-api/internal/models"
)

// RiderRepository is a mock type for the RiderRepository type
type RiderRepository struct {
	mock.Mock
}

// Apply provides a mock function with given fields: ctx, application
func (_m *RiderRepository) Apply(ctx context.Context, application *models.RiderApplication) error {
	ret := _m.Called(ctx, application)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.RiderApplication) error); ok {
		r0 = rf(ctx, application)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// List provides a mock function with given fields: ctx, status
func (_m *RiderRepository) List(ctx context.Context, status models.ApplicationStatus) ([]models.RiderApplication, error) {
	ret := _m.Called(ctx, status)

	var r0 []models.RiderApplication
	if rf, ok := ret.Get(0).(func(context.Context, models.ApplicationStatus) []models.RiderApplication); ok {
		r0 = rf(ctx, status)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.RiderApplication)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, models.ApplicationStatus) error); ok {
		r1 = rf(ctx, status)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Review provides a mock function with given fields: ctx, id, status
func (_m *RiderRepository) Review(ctx context.Context, id string, status models.ApplicationStatus) (*models.RiderApplication, error) {
	ret := _m.Called(ctx, id, status)

	var r0 *models.RiderApplication
	if rf, ok := ret.Get(0).(func(context.Context, string, models.ApplicationStatus) *models.RiderApplication); ok {
		r0 = rf(ctx, id, status)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.RiderApplication)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, models.ApplicationStatus) error); ok {
		r1 = rf(ctx, id, status)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewRiderRepository creates a new instance of RiderRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewRiderRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *RiderRepository {
	mock := &RiderRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
