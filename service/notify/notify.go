package notify

import (
	"context"
	"sync"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/domain/farm"
)

// Notice is one user facing message
type Notice struct {
	Message  string        `json:"message"`
	Severity farm.Severity `json:"severity"`
}

type logSink struct{}

// NewLogSink writes notices to the context logger
func NewLogSink() farm.NotificationSink {
	return logSink{}
}

func (logSink) Notify(ctx bCtx.Ctx, message string, severity farm.Severity) {
	l := ctx.WithField("severity", severity)
	switch severity {
	case farm.SeverityError:
		l.Error(message)
	case farm.SeverityWarning:
		l.Warn(message)
	default:
		l.Info(message)
	}
}

type fanout []farm.NotificationSink

// NewFanout delivers every notice to all sinks in order
func NewFanout(sinks ...farm.NotificationSink) farm.NotificationSink {
	res := fanout{}
	for _, s := range sinks {
		if s != nil {
			res = append(res, s)
		}
	}
	return res
}

func (f fanout) Notify(ctx bCtx.Ctx, message string, severity farm.Severity) {
	for _, s := range f {
		s.Notify(ctx, message, severity)
	}
}

// Collector keeps notices in memory, e.g. to return them with an api response
type Collector struct {
	mu      sync.Mutex
	notices []Notice
}

func (c *Collector) Notify(_ bCtx.Ctx, message string, severity farm.Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, Notice{Message: message, Severity: severity})
}

// Drain returns the collected notices and forgets them
func (c *Collector) Drain() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := c.notices
	c.notices = nil
	return res
}

type collectorKey struct{}

// WithCollector attaches c to ctx, a context sink delivers into it.
// The collector is kept out of the logger fields.
func WithCollector(ctx bCtx.Ctx, c *Collector) bCtx.Ctx {
	return bCtx.Ctx{
		Context: context.WithValue(ctx.Context, collectorKey{}, c),
		Logger:  ctx.Logger,
	}
}

type contextSink struct{}

// NewContextSink delivers to the collector attached to the notifying ctx, if any
func NewContextSink() farm.NotificationSink {
	return contextSink{}
}

func (contextSink) Notify(ctx bCtx.Ctx, message string, severity farm.Severity) {
	if c, ok := ctx.Value(collectorKey{}).(*Collector); ok {
		c.Notify(ctx, message, severity)
	}
}
