package metrics

import (
	"fmt"
	"sync"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/x-xyz/yieldfarm/base/log"
)

const (
	// sampleRate 1 means always send
	sampleRate = 1
	// buffer 10 metrics before sending to statsd
	bufferMetrics = 10
	ddPort        = 8125
)

var (
	initOnce = sync.Once{}
	ddClient statsCli
)

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// defaultClient dials the datadog agent once; without datadog_host every metric goes to the debug log
func defaultClient() statsCli {
	initOnce.Do(func() {
		host := viper.GetString("datadog_host")
		if host == "" {
			ddClient = &LogClient{}
			return
		}
		addr := fmt.Sprintf("%s:%d", host, ddPort)
		log.Log().WithField("addr", addr).Info("connecting to datadog agent")
		cli, err := statsd.NewBuffered(addr, bufferMetrics)
		if err != nil {
			log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Error("statsd.NewBuffered failed, metrics go to log")
			ddClient = &LogClient{}
			return
		}
		ddClient = cli
	})
	return ddClient
}

func logBumpFailure(fn, key string, val float64, err error) {
	log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": fn}).Error("Bump fail")
}
