package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	models "github.com/profast/parcel-api/internal/models"
)

// Notifier is a mock type for the Notifier type
type Notifier struct {
	mock.Mock
}

// PaymentReceipt provides a mock function with given fields: ctx, payment
func (_m *Notifier) PaymentReceipt(ctx context.Context, payment *models.Payment) error {
	ret := _m.Called(ctx, payment)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.Payment) error); ok {
		r0 = rf(ctx, payment)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// RiderReviewed provides a mock function with given fields: ctx, application
func (_m *Notifier) RiderReviewed(ctx context.Context, application *models.RiderApplication) error {
	ret := _m.Called(ctx, application)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.RiderApplication) error); ok {
		r0 = rf(ctx, application)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewNotifier creates a new instance of Notifier. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewNotifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *Notifier {
	mock := &Notifier{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
