// Hand-written mocks in the mockery layout.

package mocks

import (
	mock "github.com/stretchr/testify/mock"
	ctx "github.com/x-xyz/yieldfarm/base/ctx"
	farm "github.com/x-xyz/yieldfarm/domain/farm"
)

// Resolver is a mock type for the Resolver type
type Resolver struct {
	mock.Mock
}

// IsLoading provides a mock function with given fields:
func (_m *Resolver) IsLoading() bool {
	ret := _m.Called()

	var r0 bool
	if rf, ok := ret.Get(0).(func() bool); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(bool)
	}

	return r0
}

// Refetch provides a mock function with given fields: _a0, key
func (_m *Resolver) Refetch(_a0 ctx.Ctx, key farm.Key) (*farm.Snapshot, error) {
	ret := _m.Called(_a0, key)

	var r0 *farm.Snapshot
	if rf, ok := ret.Get(0).(func(ctx.Ctx, farm.Key) *farm.Snapshot); ok {
		r0 = rf(_a0, key)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*farm.Snapshot)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, farm.Key) error); ok {
		r1 = rf(_a0, key)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Resolve provides a mock function with given fields: _a0, key
func (_m *Resolver) Resolve(_a0 ctx.Ctx, key farm.Key) (*farm.Snapshot, error) {
	ret := _m.Called(_a0, key)

	var r0 *farm.Snapshot
	if rf, ok := ret.Get(0).(func(ctx.Ctx, farm.Key) *farm.Snapshot); ok {
		r0 = rf(_a0, key)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*farm.Snapshot)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, farm.Key) error); ok {
		r1 = rf(_a0, key)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Snapshot provides a mock function with given fields:
func (_m *Resolver) Snapshot() *farm.Snapshot {
	ret := _m.Called()

	var r0 *farm.Snapshot
	if rf, ok := ret.Get(0).(func() *farm.Snapshot); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*farm.Snapshot)
		}
	}

	return r0
}

type mockConstructorTestingTNewResolver interface {
	mock.TestingT
	Cleanup(func())
}

// NewResolver creates a new instance of Resolver. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewResolver(t mockConstructorTestingTNewResolver) *Resolver {
	mock := &Resolver{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
