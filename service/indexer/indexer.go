package indexer

import (
	"errors"
	"net/http"
	"time"

	"github.com/x-xyz/yieldfarm/base/metrics"
	"github.com/x-xyz/yieldfarm/domain/farm"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
	ErrNotFound        = errors.New("not found")
	ErrMalformed       = errors.New("malformed indexer response")
)

// Client reads farm state from the farm indexer
type Client interface {
	farm.FarmRegistry
	farm.AccountDirectory
	farm.RewardQuery
}

type ClientCfg struct {
	HttpClient http.Client
	Url        string
	Timeout    time.Duration
	// Rps throttles outgoing requests, zero means unlimited
	Rps float64
	// Retries is the number of attempts of one read, at least 1
	Retries int
	// PageSize of the owned accounts listing
	PageSize int
	Metrics  metrics.Service
}
