// Hand-written mocks in the mockery layout.

package mocks

import (
	mock "github.com/stretchr/testify/mock"
	ctx "github.com/x-xyz/yieldfarm/base/ctx"
	domain "github.com/x-xyz/yieldfarm/domain"
	query "github.com/x-xyz/yieldfarm/service/query"
)

// Mongo is a mock type for the Mongo type
type Mongo struct {
	mock.Mock
}

// Count provides a mock function with given fields: _a0, table, selector
func (_m *Mongo) Count(_a0 ctx.Ctx, table domain.Table, selector interface{}) (int, error) {
	ret := _m.Called(_a0, table, selector)

	var r0 int
	if rf, ok := ret.Get(0).(func(ctx.Ctx, domain.Table, interface{}) int); ok {
		r0 = rf(_a0, table, selector)
	} else {
		r0 = ret.Get(0).(int)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, domain.Table, interface{}) error); ok {
		r1 = rf(_a0, table, selector)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// EnsureIndexes provides a mock function with given fields: _a0, table, indexes
func (_m *Mongo) EnsureIndexes(_a0 ctx.Ctx, table domain.Table, indexes ...query.Index) error {
	_va := make([]interface{}, len(indexes))
	for _i := range indexes {
		_va[_i] = indexes[_i]
	}
	var _ca []interface{}
	_ca = append(_ca, _a0, table)
	_ca = append(_ca, _va...)
	ret := _m.Called(_ca...)

	var r0 error
	if rf, ok := ret.Get(0).(func(ctx.Ctx, domain.Table, ...query.Index) error); ok {
		r0 = rf(_a0, table, indexes...)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// FindOne provides a mock function with given fields: _a0, table, _a2, result
func (_m *Mongo) FindOne(_a0 ctx.Ctx, table domain.Table, _a2 interface{}, result interface{}) error {
	ret := _m.Called(_a0, table, _a2, result)

	var r0 error
	if rf, ok := ret.Get(0).(func(ctx.Ctx, domain.Table, interface{}, interface{}) error); ok {
		r0 = rf(_a0, table, _a2, result)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Insert provides a mock function with given fields: _a0, table, insert
func (_m *Mongo) Insert(_a0 ctx.Ctx, table domain.Table, insert interface{}) error {
	ret := _m.Called(_a0, table, insert)

	var r0 error
	if rf, ok := ret.Get(0).(func(ctx.Ctx, domain.Table, interface{}) error); ok {
		r0 = rf(_a0, table, insert)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Search provides a mock function with given fields: _a0, table, offset, limit, sort, _a5, results
func (_m *Mongo) Search(_a0 ctx.Ctx, table domain.Table, offset int, limit int, sort string, _a5 interface{}, results interface{}) error {
	ret := _m.Called(_a0, table, offset, limit, sort, _a5, results)

	var r0 error
	if rf, ok := ret.Get(0).(func(ctx.Ctx, domain.Table, int, int, string, interface{}, interface{}) error); ok {
		r0 = rf(_a0, table, offset, limit, sort, _a5, results)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SearchNSorts provides a mock function with given fields: _a0, table, offset, limit, sortFields, _a5, results
func (_m *Mongo) SearchNSorts(_a0 ctx.Ctx, table domain.Table, offset int, limit int, sortFields []string, _a5 interface{}, results interface{}) error {
	ret := _m.Called(_a0, table, offset, limit, sortFields, _a5, results)

	var r0 error
	if rf, ok := ret.Get(0).(func(ctx.Ctx, domain.Table, int, int, []string, interface{}, interface{}) error); ok {
		r0 = rf(_a0, table, offset, limit, sortFields, _a5, results)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

type mockConstructorTestingTNewMongo interface {
	mock.TestingT
	Cleanup(func())
}

// NewMongo creates a new instance of Mongo. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMongo(t mockConstructorTestingTNewMongo) *Mongo {
	mock := &Mongo{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
