// Hand-written mocks in the mockery layout.

package mocks

import (
	decimal "github.com/shopspring/decimal"
	mock "github.com/stretchr/testify/mock"
	ctx "github.com/x-xyz/yieldfarm/base/ctx"
	domain "github.com/x-xyz/yieldfarm/domain"
)

// PriceOracle is a mock type for the PriceOracle type
type PriceOracle struct {
	mock.Mock
}

// GetPriceUSD provides a mock function with given fields: _a0, coinType
func (_m *PriceOracle) GetPriceUSD(_a0 ctx.Ctx, coinType domain.CoinType) (decimal.Decimal, error) {
	ret := _m.Called(_a0, coinType)

	var r0 decimal.Decimal
	if rf, ok := ret.Get(0).(func(ctx.Ctx, domain.CoinType) decimal.Decimal); ok {
		r0 = rf(_a0, coinType)
	} else {
		r0 = ret.Get(0).(decimal.Decimal)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, domain.CoinType) error); ok {
		r1 = rf(_a0, coinType)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

type mockConstructorTestingTNewPriceOracle interface {
	mock.TestingT
	Cleanup(func())
}

// NewPriceOracle creates a new instance of PriceOracle. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewPriceOracle(t mockConstructorTestingTNewPriceOracle) *PriceOracle {
	mock := &PriceOracle{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
