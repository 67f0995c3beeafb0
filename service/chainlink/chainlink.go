package chainlink

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/domain"
)

var (
	ErrInvalidAnswer = errors.New("chainlink answer is not positive")
	ErrStaleAnswer   = errors.New("chainlink answer is stale")
)

// Chainlink reads usd prices from aggregator proxies
type Chainlink interface {
	GetLatestAnswer(c ctx.Ctx, chainId int32, feedAddress domain.Address) (decimal.Decimal, error)
}
