package coingecko

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
)

const defaultApi = "https://api.coingecko.com/api/v3"

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
	ErrPriceNotFound   = errors.New("price not found in response")
)

type Client interface {
	// GetPrice returns the usd price of a coingecko id, e.g. "sui"
	GetPrice(ctx bCtx.Ctx, id string) (decimal.Decimal, error)
}

type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	// Api overrides the public endpoint, used by tests and pro keys
	Api string
	// Rps throttles outgoing requests, zero means unlimited
	Rps float64
}
