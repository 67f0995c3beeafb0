// Hand-written mocks in the mockery layout.

package mocks

import (
	mock "github.com/stretchr/testify/mock"
	ctx "github.com/x-xyz/yieldfarm/base/ctx"
	farm "github.com/x-xyz/yieldfarm/domain/farm"
)

// TransactionExecutor is a mock type for the TransactionExecutor type
type TransactionExecutor struct {
	mock.Mock
}

// Execute provides a mock function with given fields: _a0, tx
func (_m *TransactionExecutor) Execute(_a0 ctx.Ctx, tx *farm.Transaction) (*farm.ExecutionResult, error) {
	ret := _m.Called(_a0, tx)

	var r0 *farm.ExecutionResult
	if rf, ok := ret.Get(0).(func(ctx.Ctx, *farm.Transaction) *farm.ExecutionResult); ok {
		r0 = rf(_a0, tx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*farm.ExecutionResult)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, *farm.Transaction) error); ok {
		r1 = rf(_a0, tx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

type mockConstructorTestingTNewTransactionExecutor interface {
	mock.TestingT
	Cleanup(func())
}

// NewTransactionExecutor creates a new instance of TransactionExecutor. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTransactionExecutor(t mockConstructorTestingTNewTransactionExecutor) *TransactionExecutor {
	mock := &TransactionExecutor{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
