package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
	"github.com/x-xyz/yieldfarm/domain/farm/mocks"
)

type DashboardTestSuite struct {
	suite.Suite

	ctx      bCtx.Ctx
	resolver *mocks.Resolver
	tracker  *mocks.RewardTracker
	oracle   *mocks.PriceOracle
	im       farm.Dashboard
}

func TestDashboardTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardTestSuite))
}

func (s *DashboardTestSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.resolver = mocks.NewResolver(s.T())
	s.tracker = mocks.NewRewardTracker(s.T())
	s.oracle = mocks.NewPriceOracle(s.T())
	now := time.Unix(1_700_000_000, 0)
	s.im = NewDashboard(&DashboardCfg{
		Resolver: s.resolver,
		Tracker:  s.tracker,
		Oracle:   s.oracle,
		Now:      func() time.Time { return now },
	})
}

func (s *DashboardTestSuite) TearDownTest() {
	s.tracker.On("Stop").Return().Maybe()
	s.im.Close()
}

func (s *DashboardTestSuite) TestRefreshBindsTrackerAndLoadsPrices() {
	snap := newSnapshot(newTestAccount(1))
	s.resolver.On("Resolve", mock.Anything, testKey).Return(snap, nil).Once()
	s.tracker.On("Bind", mock.Anything, testAccount, rewardType).Return().Once()
	s.oracle.On("GetPriceUSD", mock.Anything, stakeType).Return(decimal.NewFromInt(2), nil).Once()
	s.oracle.On("GetPriceUSD", mock.Anything, rewardType).Return(decimal.NewFromInt(1), nil).Once()

	s.Require().NoError(s.im.Refresh(s.ctx, testKey))

	s.resolver.On("Snapshot").Return(snap)
	s.resolver.On("IsLoading").Return(false)
	s.tracker.On("Countdown").Return(42)
	s.tracker.On("PendingReward", rewardType).Return(uint64(7))
	s.tracker.On("PendingReward", stakeType).Return(uint64(9))

	v := s.im.View(s.ctx, "")
	s.Require().Equal(rewardType, v.RewardCoinType)
	s.Require().Equal(uint64(7), v.PendingRewards)
	s.Require().Equal(42, v.RefreshCountdown)
	s.Require().False(v.IsAprLoading)
	// 1e6 * 31_536_000 * 1 / (1e12 * 2) * 100
	s.Require().InDelta(1576.8, v.Apr, 1e-9)
	s.Require().Equal("2", v.Prices.StakeTokenPriceUsd.String())
	s.Require().Equal("1", v.Prices.RewardTokenPriceUsd.String())

	s.Require().Len(v.Rewards, 2)
	s.Require().Equal(stakeType, v.Rewards[1].RewardCoinType)
	s.Require().Equal(uint64(9), v.Rewards[1].PendingRewards)
	// 5e5 * 31_536_000 * 2 / (1e12 * 2) * 100
	s.Require().InDelta(1576.8, v.Rewards[1].Apr, 1e-9)

	stakeView := s.im.View(s.ctx, stakeType)
	s.Require().Equal(uint64(9), stakeView.PendingRewards)
}

func (s *DashboardTestSuite) TestNoAccountShowsZeroPending() {
	snap := newSnapshot(nil)
	s.resolver.On("Resolve", mock.Anything, testKey).Return(snap, nil).Once()
	s.tracker.On("Bind", mock.Anything, domain.EmptyAddress, rewardType).Return().Once()
	s.oracle.On("GetPriceUSD", mock.Anything, mock.Anything).Return(decimal.NewFromInt(1), nil).Twice()

	s.Require().NoError(s.im.Refresh(s.ctx, testKey))

	s.resolver.On("Snapshot").Return(snap)
	s.resolver.On("IsLoading").Return(false)
	s.tracker.On("Countdown").Return(60)

	v := s.im.View(s.ctx, rewardType)
	s.Require().Zero(v.PendingRewards)
	s.tracker.AssertNotCalled(s.T(), "PendingReward", mock.Anything)
}

func (s *DashboardTestSuite) TestMissingPriceIsNotLoading() {
	snap := newSnapshot(newTestAccount(1))
	s.resolver.On("Resolve", mock.Anything, testKey).Return(snap, nil).Once()
	s.tracker.On("Bind", mock.Anything, testAccount, rewardType).Return().Once()
	s.oracle.On("GetPriceUSD", mock.Anything, stakeType).Return(decimal.NewFromInt(2), nil).Once()
	s.oracle.On("GetPriceUSD", mock.Anything, rewardType).Return(decimal.Zero, farm.ErrNoPriceFeed).Once()

	s.Require().NoError(s.im.Refresh(s.ctx, testKey))

	s.resolver.On("Snapshot").Return(snap)
	s.resolver.On("IsLoading").Return(false)
	s.tracker.On("Countdown").Return(60)
	s.tracker.On("PendingReward", mock.Anything).Return(uint64(0))

	v := s.im.View(s.ctx, rewardType)
	s.Require().Zero(v.Apr)
	s.Require().False(v.IsAprLoading)
	s.Require().Nil(v.Prices.RewardTokenPriceUsd)
}

func (s *DashboardTestSuite) TestLoadingBeforeFirstRefresh() {
	s.resolver.On("Snapshot").Return(nil)
	s.tracker.On("Countdown").Return(60)

	v := s.im.View(s.ctx, "")
	s.Require().True(v.IsAprLoading)
	s.Require().Zero(v.Apr)
	s.Require().Empty(v.Rewards)
}

func (s *DashboardTestSuite) TestPricesNotLoadedYet() {
	snap := newSnapshot(newTestAccount(1))
	s.resolver.On("Snapshot").Return(snap)
	s.resolver.On("IsLoading").Return(true)
	s.tracker.On("Countdown").Return(60)
	s.tracker.On("PendingReward", mock.Anything).Return(uint64(0))

	v := s.im.View(s.ctx, rewardType)
	s.Require().True(v.IsAprLoading)
	s.Require().Zero(v.Apr)
}

func (s *DashboardTestSuite) TestRefreshFailure() {
	s.resolver.On("Resolve", mock.Anything, testKey).Return(nil, errors.New("indexer down")).Once()

	s.Require().Error(s.im.Refresh(s.ctx, testKey))
	s.tracker.AssertNotCalled(s.T(), "Bind", mock.Anything, mock.Anything, mock.Anything)
}

func (s *DashboardTestSuite) TestReloadRefetches() {
	snap := newSnapshot(newTestAccount(3))
	s.resolver.On("Refetch", mock.Anything, testKey).Return(snap, nil).Once()
	s.tracker.On("Bind", mock.Anything, testAccount, rewardType).Return().Once()
	s.oracle.On("GetPriceUSD", mock.Anything, mock.Anything).Return(decimal.NewFromInt(1), nil).Twice()

	s.Require().NoError(s.im.Reload(s.ctx, testKey))
	s.resolver.AssertNotCalled(s.T(), "Resolve", mock.Anything, mock.Anything)

	s.resolver.On("Refetch", mock.Anything, testKey).Return(nil, errors.New("indexer down")).Once()
	s.Require().Error(s.im.Reload(s.ctx, testKey))
}
