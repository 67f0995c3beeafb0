/*
Package metrics wraps datadog-go to record farm operation metrics
Naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
- Success: *.success
*/
package metrics

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// Option is functional parameter for metrics option
type Option func(*opt)

type opt struct {
	// default: true
	withPodName bool
	client      statsCli
}

// WithoutPodName drops the pod tag from every metric sent by the Service
func WithoutPodName() Option {
	return func(o *opt) {
		o.withPodName = false
	}
}

// WithClient overrides the statsd client, used by tests
func WithClient(cli statsCli) Option {
	return func(o *opt) {
		o.client = cli
	}
}

// New creates a metric client with package name as prefix
func New(pkgName string, options ...Option) Service {
	o := opt{
		withPodName: true,
	}
	for _, option := range options {
		option(&o)
	}

	tags := []string{
		"env:" + viper.GetString("env_name"),
		"app:" + viper.GetString("app_name"),
	}
	if o.withPodName {
		tags = append(tags, "pod:"+os.Getenv("PODNAME"))
	}

	return &Metrics{
		pkgName: pkgName,
		tags:    tags,
		client:  o.client,
	}
}

// Metrics prefixes every key with the package name and forwards to statsd
type Metrics struct {
	pkgName string
	tags    []string
	client  statsCli
}

func (mt *Metrics) cli() statsCli {
	if mt.client != nil {
		return mt.client
	}
	return defaultClient()
}

func (mt *Metrics) key(key string) string {
	return mt.pkgName + "." + key
}

func (mt *Metrics) allTags(tags []string) []string {
	res := make([]string, 0, len(mt.tags)+len(tags)/2)
	res = append(res, mt.tags...)
	return append(res, parseTag(tags)...)
}

// BumpAvg bumps the average for the given key.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	if err := mt.cli().Gauge(mt.key(key), val, mt.allTags(tags), sampleRate); err != nil {
		logBumpFailure("BumpAvg", key, val, err)
	}
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	if err := mt.cli().Count(mt.key(key), int64(val), mt.allTags(tags), sampleRate); err != nil {
		logBumpFailure("BumpSum", key, val, err)
	}
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	if err := mt.cli().Histogram(mt.key(key), val, mt.allTags(tags), sampleRate); err != nil {
		logBumpFailure("BumpHistogram", key, val, err)
	}
}

// BumpTime starts a timer; call End on the result to record it:
//
//	defer s.BumpTime("operation.time").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		start: time.Now(),
		key:   mt.key(key),
		tags:  mt.allTags(tags),
		cli:   mt.cli(),
	}
}

type timeTracker struct {
	start time.Time
	key   string
	tags  []string
	cli   statsCli
}

func (t *timeTracker) End() {
	d := time.Since(t.start)
	ms := float64(d) / float64(time.Millisecond)
	if err := t.cli.TimeInMilliseconds(t.key, ms, t.tags, sampleRate); err != nil {
		logBumpFailure("BumpTime", t.key, ms, err)
	}
}

func parseTag(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	if len(tags)%2 != 0 {
		// keep the odd tag visible rather than panicking inside a metric call
		tags = append(tags, "n/a")
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + strings.ReplaceAll(tags[i+1], ",", "_")
	}
	return arr
}
