// Hand-written mocks in the mockery layout.

package mocks

import (
	mock "github.com/stretchr/testify/mock"
	ctx "github.com/x-xyz/yieldfarm/base/ctx"
	domain "github.com/x-xyz/yieldfarm/domain"
	farm "github.com/x-xyz/yieldfarm/domain/farm"
)

// PositionUsecase is a mock type for the PositionUsecase type
type PositionUsecase struct {
	mock.Mock
}

// Activities provides a mock function with given fields: _a0, opts
func (_m *PositionUsecase) Activities(_a0 ctx.Ctx, opts ...farm.ActivityFindAllOptionsFunc) ([]farm.Activity, int, error) {
	_va := make([]interface{}, len(opts))
	for _i := range opts {
		_va[_i] = opts[_i]
	}
	var _ca []interface{}
	_ca = append(_ca, _a0)
	_ca = append(_ca, _va...)
	ret := _m.Called(_ca...)

	var r0 []farm.Activity
	if rf, ok := ret.Get(0).(func(ctx.Ctx, ...farm.ActivityFindAllOptionsFunc) []farm.Activity); ok {
		r0 = rf(_a0, opts...)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]farm.Activity)
		}
	}

	var r1 int
	if rf, ok := ret.Get(1).(func(ctx.Ctx, ...farm.ActivityFindAllOptionsFunc) int); ok {
		r1 = rf(_a0, opts...)
	} else {
		r1 = ret.Get(1).(int)
	}

	var r2 error
	if rf, ok := ret.Get(2).(func(ctx.Ctx, ...farm.ActivityFindAllOptionsFunc) error); ok {
		r2 = rf(_a0, opts...)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// Close provides a mock function with given fields:
func (_m *PositionUsecase) Close() {
	_m.Called()
}

// Compound provides a mock function with given fields: _a0, key, rewardCoinType
func (_m *PositionUsecase) Compound(_a0 ctx.Ctx, key farm.Key, rewardCoinType domain.CoinType) error {
	ret := _m.Called(_a0, key, rewardCoinType)

	var r0 error
	if rf, ok := ret.Get(0).(func(ctx.Ctx, farm.Key, domain.CoinType) error); ok {
		r0 = rf(_a0, key, rewardCoinType)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Harvest provides a mock function with given fields: _a0, key, rewardCoinType
func (_m *PositionUsecase) Harvest(_a0 ctx.Ctx, key farm.Key, rewardCoinType domain.CoinType) error {
	ret := _m.Called(_a0, key, rewardCoinType)

	var r0 error
	if rf, ok := ret.Get(0).(func(ctx.Ctx, farm.Key, domain.CoinType) error); ok {
		r0 = rf(_a0, key, rewardCoinType)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Stake provides a mock function with given fields: _a0, key, amount
func (_m *PositionUsecase) Stake(_a0 ctx.Ctx, key farm.Key, amount string) error {
	ret := _m.Called(_a0, key, amount)

	var r0 error
	if rf, ok := ret.Get(0).(func(ctx.Ctx, farm.Key, string) error); ok {
		r0 = rf(_a0, key, amount)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Unstake provides a mock function with given fields: _a0, key, amount, rewardCoinType
func (_m *PositionUsecase) Unstake(_a0 ctx.Ctx, key farm.Key, amount string, rewardCoinType domain.CoinType) error {
	ret := _m.Called(_a0, key, amount, rewardCoinType)

	var r0 error
	if rf, ok := ret.Get(0).(func(ctx.Ctx, farm.Key, string, domain.CoinType) error); ok {
		r0 = rf(_a0, key, amount, rewardCoinType)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// View provides a mock function with given fields: _a0, key, rewardCoinType
func (_m *PositionUsecase) View(_a0 ctx.Ctx, key farm.Key, rewardCoinType domain.CoinType) (*farm.View, error) {
	ret := _m.Called(_a0, key, rewardCoinType)

	var r0 *farm.View
	if rf, ok := ret.Get(0).(func(ctx.Ctx, farm.Key, domain.CoinType) *farm.View); ok {
		r0 = rf(_a0, key, rewardCoinType)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*farm.View)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, farm.Key, domain.CoinType) error); ok {
		r1 = rf(_a0, key, rewardCoinType)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

type mockConstructorTestingTNewPositionUsecase interface {
	mock.TestingT
	Cleanup(func())
}

// NewPositionUsecase creates a new instance of PositionUsecase. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewPositionUsecase(t mockConstructorTestingTNewPositionUsecase) *PositionUsecase {
	mock := &PositionUsecase{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
