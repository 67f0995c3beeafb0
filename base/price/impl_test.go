package price

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
	chainlinkMocks "github.com/x-xyz/yieldfarm/service/chainlink/mocks"
	coingeckoMocks "github.com/x-xyz/yieldfarm/service/coingecko/mocks"
)

const (
	suiType  = domain.CoinType("0x2::sui::SUI")
	usdcType = domain.CoinType("0x5d4b302506645c37ff133b98c4b50a5ae14841659738d6d733d59d0d217a93bf::coin::COIN")
	lpType   = domain.CoinType("0xabc::lp::LP")
	proxy    = domain.Address("0x625c5b33a6ab2ae6c2f6a73a5c7f7e6d03e4b3a1")
)

type OracleTestSuite struct {
	suite.Suite

	ctx       bCtx.Ctx
	chainlink *chainlinkMocks.Chainlink
	coinGecko *coingeckoMocks.Client
	oracle    farm.PriceOracle
}

func TestOracleTestSuite(t *testing.T) {
	suite.Run(t, new(OracleTestSuite))
}

func (s *OracleTestSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.chainlink = chainlinkMocks.NewChainlink(s.T())
	s.coinGecko = coingeckoMocks.NewClient(s.T())
	s.oracle = NewOracle(&OracleCfg{
		Feeds: []Feed{
			{CoinType: suiType, ChainId: 1, ChainlinkProxy: proxy, CoingeckoId: "sui"},
			{CoinType: usdcType, CoingeckoId: "usd-coin"},
			{CoinType: lpType},
		},
		Chainlink: s.chainlink,
		CoinGecko: s.coinGecko,
	})
}

func (s *OracleTestSuite) TestChainlinkFirst() {
	s.chainlink.On("GetLatestAnswer", mock.Anything, int32(1), proxy).Return(decimal.RequireFromString("1.5"), nil).Once()

	price, err := s.oracle.GetPriceUSD(s.ctx, suiType)
	s.Require().NoError(err)
	s.Require().Equal("1.5", price.String())
	s.coinGecko.AssertNotCalled(s.T(), "GetPrice", mock.Anything, mock.Anything)
}

func (s *OracleTestSuite) TestLongFormCoinTypeMatches() {
	s.chainlink.On("GetLatestAnswer", mock.Anything, int32(1), proxy).Return(decimal.RequireFromString("2"), nil).Once()

	price, err := s.oracle.GetPriceUSD(s.ctx, suiType.Normalize())
	s.Require().NoError(err)
	s.Require().Equal("2", price.String())
}

func (s *OracleTestSuite) TestFallbackToCoinGecko() {
	s.chainlink.On("GetLatestAnswer", mock.Anything, int32(1), proxy).Return(decimal.Zero, errors.New("rpc down")).Once()
	s.coinGecko.On("GetPrice", mock.Anything, "sui").Return(decimal.RequireFromString("1.49"), nil).Once()

	price, err := s.oracle.GetPriceUSD(s.ctx, suiType)
	s.Require().NoError(err)
	s.Require().Equal("1.49", price.String())
}

func (s *OracleTestSuite) TestCoinGeckoOnly() {
	s.coinGecko.On("GetPrice", mock.Anything, "usd-coin").Return(decimal.RequireFromString("1"), nil).Once()

	price, err := s.oracle.GetPriceUSD(s.ctx, usdcType)
	s.Require().NoError(err)
	s.Require().Equal("1", price.String())
}

func (s *OracleTestSuite) TestBothSourcesFail() {
	s.chainlink.On("GetLatestAnswer", mock.Anything, int32(1), proxy).Return(decimal.Zero, errors.New("rpc down")).Once()
	s.coinGecko.On("GetPrice", mock.Anything, "sui").Return(decimal.Zero, errors.New("429")).Once()

	_, err := s.oracle.GetPriceUSD(s.ctx, suiType)
	s.Require().ErrorIs(err, farm.ErrNetwork)
}

func (s *OracleTestSuite) TestNoFeed() {
	_, err := s.oracle.GetPriceUSD(s.ctx, domain.CoinType("0xdead::x::X"))
	s.Require().ErrorIs(err, farm.ErrNoPriceFeed)

	_, err = s.oracle.GetPriceUSD(s.ctx, lpType)
	s.Require().ErrorIs(err, farm.ErrNoPriceFeed)
}
