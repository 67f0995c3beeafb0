// Hand-written mocks in the mockery layout.

package mocks

import (
	decimal "github.com/shopspring/decimal"
	mock "github.com/stretchr/testify/mock"
	ctx "github.com/x-xyz/yieldfarm/base/ctx"
	domain "github.com/x-xyz/yieldfarm/domain"
)

// Chainlink is a mock type for the Chainlink type
type Chainlink struct {
	mock.Mock
}

// GetLatestAnswer provides a mock function with given fields: c, chainId, feedAddress
func (_m *Chainlink) GetLatestAnswer(c ctx.Ctx, chainId int32, feedAddress domain.Address) (decimal.Decimal, error) {
	ret := _m.Called(c, chainId, feedAddress)

	var r0 decimal.Decimal
	if rf, ok := ret.Get(0).(func(ctx.Ctx, int32, domain.Address) decimal.Decimal); ok {
		r0 = rf(c, chainId, feedAddress)
	} else {
		r0 = ret.Get(0).(decimal.Decimal)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, int32, domain.Address) error); ok {
		r1 = rf(c, chainId, feedAddress)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

type mockConstructorTestingTNewChainlink interface {
	mock.TestingT
	Cleanup(func())
}

// NewChainlink creates a new instance of Chainlink. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewChainlink(t mockConstructorTestingTNewChainlink) *Chainlink {
	mock := &Chainlink{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
