package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	models "github.com/profast/parcel-api/internal/models"
)

// PaymentRepository is a mock type for the PaymentRepository type
type PaymentRepository struct {
	mock.Mock
}

// List provides a mock function with given fields: ctx, customerEmail
func (_m *PaymentRepository) List(ctx context.Context, customerEmail string) ([]models.Payment, error) {
	ret := _m.Called(ctx, customerEmail)

	var r0 []models.Payment
	if rf, ok := ret.Get(0).(func(context.Context, string) []models.Payment); ok {
		r0 = rf(ctx, customerEmail)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Payment)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, customerEmail)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Record provides a mock function with given fields: ctx, payment
func (_m *PaymentRepository) Record(ctx context.Context, payment *models.Payment) (*models.Parcel, error) {
	ret := _m.Called(ctx, payment)

	var r0 *models.Parcel
	if rf, ok := ret.Get(0).(func(context.Context, *models.Payment) *models.Parcel); ok {
		r0 = rf(ctx, payment)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Parcel)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, *models.Payment) error); ok {
		r1 = rf(ctx, payment)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewPaymentRepository creates a new instance of PaymentRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewPaymentRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *PaymentRepository {
	mock := &PaymentRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
