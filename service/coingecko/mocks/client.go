// Hand-written mocks in the mockery layout.

package mocks

import (
	decimal "github.com/shopspring/decimal"
	mock "github.com/stretchr/testify/mock"
	ctx "github.com/x-xyz/yieldfarm/base/ctx"
)

// Client is a mock type for the Client type
type Client struct {
	mock.Mock
}

// GetPrice provides a mock function with given fields: _a0, id
func (_m *Client) GetPrice(_a0 ctx.Ctx, id string) (decimal.Decimal, error) {
	ret := _m.Called(_a0, id)

	var r0 decimal.Decimal
	if rf, ok := ret.Get(0).(func(ctx.Ctx, string) decimal.Decimal); ok {
		r0 = rf(_a0, id)
	} else {
		r0 = ret.Get(0).(decimal.Decimal)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, string) error); ok {
		r1 = rf(_a0, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

type mockConstructorTestingTNewClient interface {
	mock.TestingT
	Cleanup(func())
}

// NewClient creates a new instance of Client. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewClient(t mockConstructorTestingTNewClient) *Client {
	mock := &Client{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
