// Hand-written mocks in the mockery layout.

package mocks

import (
	mock "github.com/stretchr/testify/mock"
	ctx "github.com/x-xyz/yieldfarm/base/ctx"
	farm "github.com/x-xyz/yieldfarm/domain/farm"
)

// ActivityRepo is a mock type for the ActivityRepo type
type ActivityRepo struct {
	mock.Mock
}

// FindAll provides a mock function with given fields: _a0, opts
func (_m *ActivityRepo) FindAll(_a0 ctx.Ctx, opts ...farm.ActivityFindAllOptionsFunc) ([]farm.Activity, error) {
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

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, ...farm.ActivityFindAllOptionsFunc) error); ok {
		r1 = rf(_a0, opts...)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Count provides a mock function with given fields: _a0, opts
func (_m *ActivityRepo) Count(_a0 ctx.Ctx, opts ...farm.ActivityFindAllOptionsFunc) (int, error) {
	_va := make([]interface{}, len(opts))
	for _i := range opts {
		_va[_i] = opts[_i]
	}
	var _ca []interface{}
	_ca = append(_ca, _a0)
	_ca = append(_ca, _va...)
	ret := _m.Called(_ca...)

	var r0 int
	if rf, ok := ret.Get(0).(func(ctx.Ctx, ...farm.ActivityFindAllOptionsFunc) int); ok {
		r0 = rf(_a0, opts...)
	} else {
		r0 = ret.Get(0).(int)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, ...farm.ActivityFindAllOptionsFunc) error); ok {
		r1 = rf(_a0, opts...)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Insert provides a mock function with given fields: _a0, activity
func (_m *ActivityRepo) Insert(_a0 ctx.Ctx, activity *farm.Activity) error {
	ret := _m.Called(_a0, activity)

	var r0 error
	if rf, ok := ret.Get(0).(func(ctx.Ctx, *farm.Activity) error); ok {
		r0 = rf(_a0, activity)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

type mockConstructorTestingTNewActivityRepo interface {
	mock.TestingT
	Cleanup(func())
}

// NewActivityRepo creates a new instance of ActivityRepo. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewActivityRepo(t mockConstructorTestingTNewActivityRepo) *ActivityRepo {
	mock := &ActivityRepo{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
