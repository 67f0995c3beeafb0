// Hand-written mocks in the mockery layout.

package mocks

import (
	mock "github.com/stretchr/testify/mock"
	ctx "github.com/x-xyz/yieldfarm/base/ctx"
	domain "github.com/x-xyz/yieldfarm/domain"
	farm "github.com/x-xyz/yieldfarm/domain/farm"
)

// RewardQuery is a mock type for the RewardQuery type
type RewardQuery struct {
	mock.Mock
}

// PendingRewards provides a mock function with given fields: _a0, accountId
func (_m *RewardQuery) PendingRewards(_a0 ctx.Ctx, accountId domain.Address) ([]farm.PendingReward, error) {
	ret := _m.Called(_a0, accountId)

	var r0 []farm.PendingReward
	if rf, ok := ret.Get(0).(func(ctx.Ctx, domain.Address) []farm.PendingReward); ok {
		r0 = rf(_a0, accountId)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]farm.PendingReward)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, domain.Address) error); ok {
		r1 = rf(_a0, accountId)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

type mockConstructorTestingTNewRewardQuery interface {
	mock.TestingT
	Cleanup(func())
}

// NewRewardQuery creates a new instance of RewardQuery. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewRewardQuery(t mockConstructorTestingTNewRewardQuery) *RewardQuery {
	mock := &RewardQuery{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
