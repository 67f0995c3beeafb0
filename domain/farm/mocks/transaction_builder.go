// Hand-written mocks in the mockery layout.

package mocks

import (
	mock "github.com/stretchr/testify/mock"
	domain "github.com/x-xyz/yieldfarm/domain"
	farm "github.com/x-xyz/yieldfarm/domain/farm"
)

// TransactionBuilder is a mock type for the TransactionBuilder type
type TransactionBuilder struct {
	mock.Mock
}

// CreateAccount provides a mock function with given fields: tx, _a1
func (_m *TransactionBuilder) CreateAccount(tx *farm.Transaction, _a1 *farm.FarmDescriptor) (farm.Argument, error) {
	ret := _m.Called(tx, _a1)

	var r0 farm.Argument
	if rf, ok := ret.Get(0).(func(*farm.Transaction, *farm.FarmDescriptor) farm.Argument); ok {
		r0 = rf(tx, _a1)
	} else {
		r0 = ret.Get(0).(farm.Argument)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(*farm.Transaction, *farm.FarmDescriptor) error); ok {
		r1 = rf(tx, _a1)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Harvest provides a mock function with given fields: tx, _a1, account, rewardCoinType
func (_m *TransactionBuilder) Harvest(tx *farm.Transaction, _a1 *farm.FarmDescriptor, account farm.Argument, rewardCoinType domain.CoinType) (farm.Argument, error) {
	ret := _m.Called(tx, _a1, account, rewardCoinType)

	var r0 farm.Argument
	if rf, ok := ret.Get(0).(func(*farm.Transaction, *farm.FarmDescriptor, farm.Argument, domain.CoinType) farm.Argument); ok {
		r0 = rf(tx, _a1, account, rewardCoinType)
	} else {
		r0 = ret.Get(0).(farm.Argument)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(*farm.Transaction, *farm.FarmDescriptor, farm.Argument, domain.CoinType) error); ok {
		r1 = rf(tx, _a1, account, rewardCoinType)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Stake provides a mock function with given fields: tx, _a1, account, deposit
func (_m *TransactionBuilder) Stake(tx *farm.Transaction, _a1 *farm.FarmDescriptor, account farm.Argument, deposit farm.Deposit) error {
	ret := _m.Called(tx, _a1, account, deposit)

	var r0 error
	if rf, ok := ret.Get(0).(func(*farm.Transaction, *farm.FarmDescriptor, farm.Argument, farm.Deposit) error); ok {
		r0 = rf(tx, _a1, account, deposit)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Unstake provides a mock function with given fields: tx, _a1, account, amount
func (_m *TransactionBuilder) Unstake(tx *farm.Transaction, _a1 *farm.FarmDescriptor, account farm.Argument, amount uint64) (farm.Argument, error) {
	ret := _m.Called(tx, _a1, account, amount)

	var r0 farm.Argument
	if rf, ok := ret.Get(0).(func(*farm.Transaction, *farm.FarmDescriptor, farm.Argument, uint64) farm.Argument); ok {
		r0 = rf(tx, _a1, account, amount)
	} else {
		r0 = ret.Get(0).(farm.Argument)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(*farm.Transaction, *farm.FarmDescriptor, farm.Argument, uint64) error); ok {
		r1 = rf(tx, _a1, account, amount)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

type mockConstructorTestingTNewTransactionBuilder interface {
	mock.TestingT
	Cleanup(func())
}

// NewTransactionBuilder creates a new instance of TransactionBuilder. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTransactionBuilder(t mockConstructorTestingTNewTransactionBuilder) *TransactionBuilder {
	mock := &TransactionBuilder{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
