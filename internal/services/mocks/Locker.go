package mocks

import (
	context "context"
	time "time"

	mock "github.com/stretchr/testify/mock"
)

// Locker is a mock type for the Locker type
type Locker struct {
	mock.Mock
}

// Lock provides a mock function with given fields: ctx, key, ttl
func (_m *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	ret := _m.Called(ctx, key, ttl)

	var r0 func()
	if rf, ok := ret.Get(0).(func(context.Context, string, time.Duration) func()); ok {
		r0 = rf(ctx, key, ttl)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(func())
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, time.Duration) error); ok {
		r1 = rf(ctx, key, ttl)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewLocker creates a new instance of Locker. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewLocker(t interface {
	mock.TestingT
	Cleanup(func())
}) *Locker {
	mock := &Locker{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
