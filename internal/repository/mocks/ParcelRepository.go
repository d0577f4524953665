package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	models "github.com/profast/parcel-api/internal/models"
)

// ParcelRepository is a mock type for the ParcelRepository type
type ParcelRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, parcel
func (_m *ParcelRepository) Create(ctx context.Context, parcel *models.Parcel) error {
	ret := _m.Called(ctx, parcel)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.Parcel) error); ok {
		r0 = rf(ctx, parcel)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Delete provides a mock function with given fields: ctx, id
func (_m *ParcelRepository) Delete(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// FindByID provides a mock function with given fields: ctx, id
func (_m *ParcelRepository) FindByID(ctx context.Context, id string) (*models.Parcel, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Parcel
	if rf, ok := ret.Get(0).(func(context.Context, string) *models.Parcel); ok {
		r0 = rf(ctx, id)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Parcel)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListBySender provides a mock function with given fields: ctx, email
func (_m *ParcelRepository) ListBySender(ctx context.Context, email string) ([]models.Parcel, error) {
	ret := _m.Called(ctx, email)

	var r0 []models.Parcel
	if rf, ok := ret.Get(0).(func(context.Context, string) []models.Parcel); ok {
		r0 = rf(ctx, email)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Parcel)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, email)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewParcelRepository creates a new instance of ParcelRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewParcelRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ParcelRepository {
	mock := &ParcelRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
