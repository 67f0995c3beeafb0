// Hand-written mocks in the mockery layout.

package mocks

import (
	mock "github.com/stretchr/testify/mock"
	ctx "github.com/x-xyz/yieldfarm/base/ctx"
	domain "github.com/x-xyz/yieldfarm/domain"
	farm "github.com/x-xyz/yieldfarm/domain/farm"
)

// AccountDirectory is a mock type for the AccountDirectory type
type AccountDirectory struct {
	mock.Mock
}

// OwnedAccounts provides a mock function with given fields: _a0, owner
func (_m *AccountDirectory) OwnedAccounts(_a0 ctx.Ctx, owner domain.Address) ([]farm.AccountPosition, error) {
	ret := _m.Called(_a0, owner)

	var r0 []farm.AccountPosition
	if rf, ok := ret.Get(0).(func(ctx.Ctx, domain.Address) []farm.AccountPosition); ok {
		r0 = rf(_a0, owner)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]farm.AccountPosition)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, domain.Address) error); ok {
		r1 = rf(_a0, owner)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

type mockConstructorTestingTNewAccountDirectory interface {
	mock.TestingT
	Cleanup(func())
}

// NewAccountDirectory creates a new instance of AccountDirectory. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAccountDirectory(t mockConstructorTestingTNewAccountDirectory) *AccountDirectory {
	mock := &AccountDirectory{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
