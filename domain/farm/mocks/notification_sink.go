// Hand-written mocks in the mockery layout.

package mocks

import (
	mock "github.com/stretchr/testify/mock"
	ctx "github.com/x-xyz/yieldfarm/base/ctx"
	farm "github.com/x-xyz/yieldfarm/domain/farm"
)

// NotificationSink is a mock type for the NotificationSink type
type NotificationSink struct {
	mock.Mock
}

// Notify provides a mock function with given fields: _a0, message, severity
func (_m *NotificationSink) Notify(_a0 ctx.Ctx, message string, severity farm.Severity) {
	_m.Called(_a0, message, severity)
}

type mockConstructorTestingTNewNotificationSink interface {
	mock.TestingT
	Cleanup(func())
}

// NewNotificationSink creates a new instance of NotificationSink. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewNotificationSink(t mockConstructorTestingTNewNotificationSink) *NotificationSink {
	mock := &NotificationSink{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
