// Hand-written mocks in the mockery layout.

package mocks

import (
	mock "github.com/stretchr/testify/mock"
	ctx "github.com/x-xyz/yieldfarm/base/ctx"
	domain "github.com/x-xyz/yieldfarm/domain"
)

// RewardTracker is a mock type for the RewardTracker type
type RewardTracker struct {
	mock.Mock
}

// Bind provides a mock function with given fields: _a0, accountId, rewardCoinType
func (_m *RewardTracker) Bind(_a0 ctx.Ctx, accountId domain.Address, rewardCoinType domain.CoinType) {
	_m.Called(_a0, accountId, rewardCoinType)
}

// Countdown provides a mock function with given fields:
func (_m *RewardTracker) Countdown() int {
	ret := _m.Called()

	var r0 int
	if rf, ok := ret.Get(0).(func() int); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(int)
	}

	return r0
}

// PendingReward provides a mock function with given fields: coinType
func (_m *RewardTracker) PendingReward(coinType domain.CoinType) uint64 {
	ret := _m.Called(coinType)

	var r0 uint64
	if rf, ok := ret.Get(0).(func(domain.CoinType) uint64); ok {
		r0 = rf(coinType)
	} else {
		r0 = ret.Get(0).(uint64)
	}

	return r0
}

// PendingRewards provides a mock function with given fields:
func (_m *RewardTracker) PendingRewards() map[domain.CoinType]uint64 {
	ret := _m.Called()

	var r0 map[domain.CoinType]uint64
	if rf, ok := ret.Get(0).(func() map[domain.CoinType]uint64); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(map[domain.CoinType]uint64)
		}
	}

	return r0
}

// Stop provides a mock function with given fields:
func (_m *RewardTracker) Stop() {
	_m.Called()
}

type mockConstructorTestingTNewRewardTracker interface {
	mock.TestingT
	Cleanup(func())
}

// NewRewardTracker creates a new instance of RewardTracker. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewRewardTracker(t mockConstructorTestingTNewRewardTracker) *RewardTracker {
	mock := &RewardTracker{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
