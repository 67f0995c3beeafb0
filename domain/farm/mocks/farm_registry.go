// Hand-written mocks in the mockery layout.

package mocks

import (
	mock "github.com/stretchr/testify/mock"
	ctx "github.com/x-xyz/yieldfarm/base/ctx"
	domain "github.com/x-xyz/yieldfarm/domain"
	farm "github.com/x-xyz/yieldfarm/domain/farm"
)

// FarmRegistry is a mock type for the FarmRegistry type
type FarmRegistry struct {
	mock.Mock
}

// GetFarm provides a mock function with given fields: _a0, farmId
func (_m *FarmRegistry) GetFarm(_a0 ctx.Ctx, farmId domain.Address) (*farm.FarmDescriptor, error) {
	ret := _m.Called(_a0, farmId)

	var r0 *farm.FarmDescriptor
	if rf, ok := ret.Get(0).(func(ctx.Ctx, domain.Address) *farm.FarmDescriptor); ok {
		r0 = rf(_a0, farmId)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*farm.FarmDescriptor)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, domain.Address) error); ok {
		r1 = rf(_a0, farmId)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

type mockConstructorTestingTNewFarmRegistry interface {
	mock.TestingT
	Cleanup(func())
}

// NewFarmRegistry creates a new instance of FarmRegistry. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewFarmRegistry(t mockConstructorTestingTNewFarmRegistry) *FarmRegistry {
	mock := &FarmRegistry{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
