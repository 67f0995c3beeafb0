package chainlink

import (
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/yieldfarm/base/abi"
	"github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/base/log"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/keys"
	"github.com/x-xyz/yieldfarm/service/cache"
	"github.com/x-xyz/yieldfarm/service/cache/provider/primitive"
	"github.com/x-xyz/yieldfarm/service/chain"
)

type Cfg struct {
	ChainClient chain.Client
	// Ttl of cached answers, default one minute
	Ttl time.Duration
	// MaxAge rejects rounds updated longer ago than this, zero disables the check
	MaxAge time.Duration
}

type impl struct {
	chainClient chain.Client
	cache       cache.Service
	maxAge      time.Duration
	now         func() time.Time
}

func New(cfg *Cfg) Chainlink {
	ttl := cfg.Ttl
	if ttl == 0 {
		ttl = time.Minute
	}
	return &impl{
		chainClient: cfg.ChainClient,
		cache: cache.New(cache.ServiceConfig{
			Ttl:   ttl,
			Pfx:   "chainlink_cache",
			Cache: primitive.NewPrimitive("chainlink_cache", 4),
		}),
		maxAge: cfg.MaxAge,
		now:    time.Now,
	}
}

func (im *impl) GetLatestAnswer(c ctx.Ctx, chainId int32, address domain.Address) (decimal.Decimal, error) {
	var res decimal.Decimal

	key := keys.RedisKey(strconv.Itoa(int(chainId)), address.ToLowerStr(), "latest")

	if err := im.cache.GetByFunc(c, key, &res, func() (interface{}, error) {
		res, err := im.getLatestAnswer(c, chainId, address)
		if err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"address": address,
			}).Error("getLatestAnswer failed")
			return nil, err
		}
		return &res, nil
	}); err != nil {
		return decimal.Zero, err
	}

	return res, nil
}

func (im *impl) getLatestAnswer(c ctx.Ctx, chainId int32, address domain.Address) (decimal.Decimal, error) {
	feedAddr := common.HexToAddress(string(address))

	dec, err := im.chainClient.Call(c, chainId, feedAddr, abi.ChainlinkFeedABI, "decimals")
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"address": address,
		}).Error("chainClient.Call decimals failed")
		return decimal.Zero, err
	}

	round, err := im.chainClient.Call(c, chainId, feedAddr, abi.ChainlinkFeedABI, "latestRoundData")
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"address": address,
		}).Error("chainClient.Call latestRoundData failed")
		return decimal.Zero, err
	}

	answer := round[1].(*big.Int)
	updatedAt := round[3].(*big.Int)
	if answer.Sign() <= 0 {
		return decimal.Zero, ErrInvalidAnswer
	}
	if im.maxAge > 0 && im.now().Sub(time.Unix(updatedAt.Int64(), 0)) > im.maxAge {
		c.WithFields(log.Fields{
			"chainId":   chainId,
			"address":   address,
			"updatedAt": updatedAt,
		}).Warn("stale chainlink round")
		return decimal.Zero, ErrStaleAnswer
	}

	return decimal.NewFromBigInt(answer, -int32(dec[0].(uint8))), nil
}
