package price

import (
	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/base/log"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
	"github.com/x-xyz/yieldfarm/service/chainlink"
	"github.com/x-xyz/yieldfarm/service/coingecko"
)

type oracle struct {
	feeds     []Feed
	chainlink chainlink.Chainlink
	coinGecko coingecko.Client
}

func NewOracle(cfg *OracleCfg) farm.PriceOracle {
	return &oracle{
		feeds:     cfg.Feeds,
		chainlink: cfg.Chainlink,
		coinGecko: cfg.CoinGecko,
	}
}

func (o *oracle) feed(coinType domain.CoinType) (Feed, bool) {
	for _, f := range o.feeds {
		if f.CoinType.Equals(coinType) {
			return f, true
		}
	}
	return Feed{}, false
}

func (o *oracle) hasChainlink(f Feed) bool {
	return o.chainlink != nil && !f.ChainlinkProxy.IsEmpty()
}

func (o *oracle) hasCoinGecko(f Feed) bool {
	return o.coinGecko != nil && f.CoingeckoId != ""
}

func (o *oracle) GetPriceUSD(ctx bCtx.Ctx, coinType domain.CoinType) (decimal.Decimal, error) {
	f, ok := o.feed(coinType)
	if !ok || (!o.hasChainlink(f) && !o.hasCoinGecko(f)) {
		return decimal.Zero, xerrors.Errorf("%s: %w", coinType, farm.ErrNoPriceFeed)
	}

	if o.hasChainlink(f) {
		price, err := o.chainlink.GetLatestAnswer(ctx, f.ChainId, f.ChainlinkProxy)
		if err == nil {
			return price, nil
		}
		if !o.hasCoinGecko(f) {
			ctx.WithFields(log.Fields{
				"coinType": coinType,
				"proxy":    f.ChainlinkProxy,
				"err":      err,
			}).Error("chainlink.GetLatestAnswer failed")
			return decimal.Zero, &farm.NetworkError{Op: "chainlink.GetLatestAnswer", Err: err}
		}
		// fall back to coingecko
		ctx.WithFields(log.Fields{
			"coinType": coinType,
			"proxy":    f.ChainlinkProxy,
			"err":      err,
		}).Warn("chainlink.GetLatestAnswer failed, fall back to coingecko")
	}

	price, err := o.coinGecko.GetPrice(ctx, f.CoingeckoId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"coinType":    coinType,
			"coingeckoId": f.CoingeckoId,
			"err":         err,
		}).Error("coinGecko.GetPrice failed")
		return decimal.Zero, &farm.NetworkError{Op: "coinGecko.GetPrice", Err: err}
	}
	return price, nil
}
