package price

import (
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/service/chainlink"
	"github.com/x-xyz/yieldfarm/service/coingecko"
)

// Feed tells the oracle where the usd price of a coin type comes from.
// Either source may be left empty; the chainlink proxy is tried first.
type Feed struct {
	CoinType       domain.CoinType `mapstructure:"coinType"`
	ChainId        int32           `mapstructure:"chainId"`
	ChainlinkProxy domain.Address  `mapstructure:"chainlinkProxy"`
	CoingeckoId    string          `mapstructure:"coingeckoId"`
}

type OracleCfg struct {
	Feeds     []Feed
	Chainlink chainlink.Chainlink
	CoinGecko coingecko.Client
}
