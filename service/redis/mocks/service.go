// Hand-written mocks in the mockery layout.

package mocks

import (
	mock "github.com/stretchr/testify/mock"
	ctx "github.com/x-xyz/yieldfarm/base/ctx"
	time "time"
)

// Service is a mock type for the Service type
type Service struct {
	mock.Mock
}

// CompareAndDel provides a mock function with given fields: _a0, key, val
func (_m *Service) CompareAndDel(_a0 ctx.Ctx, key string, val []byte) (bool, error) {
	ret := _m.Called(_a0, key, val)

	var r0 bool
	if rf, ok := ret.Get(0).(func(ctx.Ctx, string, []byte) bool); ok {
		r0 = rf(_a0, key, val)
	} else {
		r0 = ret.Get(0).(bool)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, string, []byte) error); ok {
		r1 = rf(_a0, key, val)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Del provides a mock function with given fields: _a0, ks
func (_m *Service) Del(_a0 ctx.Ctx, ks ...string) (int, error) {
	_va := make([]interface{}, len(ks))
	for _i := range ks {
		_va[_i] = ks[_i]
	}
	var _ca []interface{}
	_ca = append(_ca, _a0)
	_ca = append(_ca, _va...)
	ret := _m.Called(_ca...)

	var r0 int
	if rf, ok := ret.Get(0).(func(ctx.Ctx, ...string) int); ok {
		r0 = rf(_a0, ks...)
	} else {
		r0 = ret.Get(0).(int)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, ...string) error); ok {
		r1 = rf(_a0, ks...)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Exists provides a mock function with given fields: _a0, key
func (_m *Service) Exists(_a0 ctx.Ctx, key string) (bool, error) {
	ret := _m.Called(_a0, key)

	var r0 bool
	if rf, ok := ret.Get(0).(func(ctx.Ctx, string) bool); ok {
		r0 = rf(_a0, key)
	} else {
		r0 = ret.Get(0).(bool)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, string) error); ok {
		r1 = rf(_a0, key)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Get provides a mock function with given fields: _a0, key
func (_m *Service) Get(_a0 ctx.Ctx, key string) ([]byte, error) {
	ret := _m.Called(_a0, key)

	var r0 []byte
	if rf, ok := ret.Get(0).(func(ctx.Ctx, string) []byte); ok {
		r0 = rf(_a0, key)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]byte)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, string) error); ok {
		r1 = rf(_a0, key)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Incrby provides a mock function with given fields: _a0, key, val
func (_m *Service) Incrby(_a0 ctx.Ctx, key string, val int) (int64, error) {
	ret := _m.Called(_a0, key, val)

	var r0 int64
	if rf, ok := ret.Get(0).(func(ctx.Ctx, string, int) int64); ok {
		r0 = rf(_a0, key, val)
	} else {
		r0 = ret.Get(0).(int64)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, string, int) error); ok {
		r1 = rf(_a0, key, val)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Set provides a mock function with given fields: _a0, key, val, expire
func (_m *Service) Set(_a0 ctx.Ctx, key string, val []byte, expire time.Duration) error {
	ret := _m.Called(_a0, key, val, expire)

	var r0 error
	if rf, ok := ret.Get(0).(func(ctx.Ctx, string, []byte, time.Duration) error); ok {
		r0 = rf(_a0, key, val, expire)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetNX provides a mock function with given fields: _a0, key, val, expire
func (_m *Service) SetNX(_a0 ctx.Ctx, key string, val []byte, expire time.Duration) error {
	ret := _m.Called(_a0, key, val, expire)

	var r0 error
	if rf, ok := ret.Get(0).(func(ctx.Ctx, string, []byte, time.Duration) error); ok {
		r0 = rf(_a0, key, val, expire)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// TTL provides a mock function with given fields: _a0, key
func (_m *Service) TTL(_a0 ctx.Ctx, key string) (int, error) {
	ret := _m.Called(_a0, key)

	var r0 int
	if rf, ok := ret.Get(0).(func(ctx.Ctx, string) int); ok {
		r0 = rf(_a0, key)
	} else {
		r0 = ret.Get(0).(int)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(ctx.Ctx, string) error); ok {
		r1 = rf(_a0, key)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

type mockConstructorTestingTNewService interface {
	mock.TestingT
	Cleanup(func())
}

// NewService creates a new instance of Service. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewService(t mockConstructorTestingTNewService) *Service {
	mock := &Service{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
