package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	services "github.com/profast/parcel-api/internal/services"
)

// PaymentGateway is a mock type for the PaymentGateway type
type PaymentGateway struct {
	mock.Mock
}

// CreatePaymentIntent provides a mock function with given fields: ctx, req
func (_m *PaymentGateway) CreatePaymentIntent(ctx context.Context, req services.IntentRequest) (*services.PaymentIntent, error) {
	ret := _m.Called(ctx, req)

	var r0 *services.PaymentIntent
	if rf, ok := ret.Get(0).(func(context.Context, services.IntentRequest) *services.PaymentIntent); ok {
		r0 = rf(ctx, req)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*services.PaymentIntent)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, services.IntentRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetPaymentIntent provides a mock function with given fields: ctx, id
func (_m *PaymentGateway) GetPaymentIntent(ctx context.Context, id string) (*services.PaymentIntent, error) {
	ret := _m.Called(ctx, id)

	var r0 *services.PaymentIntent
	if rf, ok := ret.Get(0).(func(context.Context, string) *services.PaymentIntent); ok {
		r0 = rf(ctx, id)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*services.PaymentIntent)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewPaymentGateway creates a new instance of PaymentGateway. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewPaymentGateway(t interface {
	mock.TestingT
	Cleanup(func())
}) *PaymentGateway {
	mock := &PaymentGateway{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
