package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	services "github.com/profast/parcel-api/internal/services"
)

// IdentityVerifier is a mock type for the IdentityVerifier type
type IdentityVerifier struct {
	mock.Mock
}

// Verify provides a mock function with given fields: ctx, token
func (_m *IdentityVerifier) Verify(ctx context.Context, token string) (*services.Identity, error) {
	ret := _m.Called(ctx, token)

	var r0 *services.Identity
	if rf, ok := ret.Get(0).(func(context.Context, string) *services.Identity); ok {
		r0 = rf(ctx, token)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*services.Identity)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, token)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewIdentityVerifier creates a new instance of IdentityVerifier. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewIdentityVerifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *IdentityVerifier {
	mock := &IdentityVerifier{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
