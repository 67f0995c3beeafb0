package tracker

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
	"github.com/x-xyz/yieldfarm/domain/farm/mocks"
)

const (
	testAccount    = domain.Address("0x00000000000000000000000000000000000000000000000000000000000000c1")
	testAccount2   = domain.Address("0x00000000000000000000000000000000000000000000000000000000000000c2")
	testRewardCoin = domain.CoinType("0xabc::reward::REWARD")
	testOtherCoin  = domain.CoinType("0xdef::other::OTHER")
)

type RewardTrackerTestSuite struct {
	suite.Suite

	ctx     bCtx.Ctx
	query   *mocks.RewardQuery
	tracker *RewardTracker
}

func TestRewardTrackerTestSuite(t *testing.T) {
	suite.Run(t, new(RewardTrackerTestSuite))
}

func (s *RewardTrackerTestSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.query = new(mocks.RewardQuery)
	s.tracker = NewRewardTracker(&RewardTrackerCfg{
		Query:             s.query,
		RefreshInterval:   time.Hour,
		CountdownInterval: time.Hour,
	})
}

func (s *RewardTrackerTestSuite) TearDownTest() {
	s.tracker.Stop()
	goleak.VerifyNone(s.T())
}

func (s *RewardTrackerTestSuite) TestCountdownRing() {
	c := CountdownStart
	seen := []int{c}
	for i := 0; i < CountdownStart; i++ {
		c = TickCountdown(c)
		seen = append(seen, c)
	}
	s.Equal(CountdownStart, seen[0])
	s.Equal(1, seen[CountdownStart-1])
	s.Equal(CountdownStart, seen[CountdownStart])
	for _, v := range seen {
		s.GreaterOrEqual(v, 1)
		s.LessOrEqual(v, CountdownStart)
	}
	s.Equal(CountdownStart, TickCountdown(0))
}

func (s *RewardTrackerTestSuite) TestBindRefreshesImmediately() {
	s.query.On("PendingRewards", mock.Anything, testAccount).Return([]farm.PendingReward{
		{RewardCoinType: testRewardCoin, Amount: 5},
		{RewardCoinType: testOtherCoin, Amount: 7},
	}, nil).Once()

	s.tracker.Bind(s.ctx, testAccount, testRewardCoin)

	s.Eventually(func() bool {
		return s.tracker.PendingReward("") == 5
	}, time.Second, 5*time.Millisecond)
	s.Equal(uint64(7), s.tracker.PendingReward(testOtherCoin))
	s.Equal(map[domain.CoinType]uint64{testRewardCoin: 5, testOtherCoin: 7}, s.tracker.PendingRewards())
	s.Equal(CountdownStart, s.tracker.Countdown())
	s.query.AssertExpectations(s.T())
}

func (s *RewardTrackerTestSuite) TestNoAccountForcesZero() {
	s.tracker.Bind(s.ctx, domain.EmptyAddress, testRewardCoin)

	time.Sleep(20 * time.Millisecond)
	s.Zero(s.tracker.PendingReward(testRewardCoin))
	s.Empty(s.tracker.PendingRewards())
	s.query.AssertNotCalled(s.T(), "PendingRewards", mock.Anything, mock.Anything)
}

func (s *RewardTrackerTestSuite) TestErrorKeepsLastValueAndCountdown() {
	s.query.On("PendingRewards", mock.Anything, testAccount).Return([]farm.PendingReward{
		{RewardCoinType: testRewardCoin, Amount: 5},
	}, nil).Once()
	s.query.On("PendingRewards", mock.Anything, testAccount).Return(nil, errors.New("rpc down")).Once()

	s.tracker.refresh(s.ctx, testAccount)
	s.Equal(uint64(5), s.tracker.PendingReward(testRewardCoin))

	s.tracker.countdown = 10
	s.tracker.refresh(s.ctx, testAccount)
	s.Equal(uint64(5), s.tracker.PendingReward(testRewardCoin))
	s.Equal(10, s.tracker.Countdown())
	s.query.AssertExpectations(s.T())
}

func (s *RewardTrackerTestSuite) TestSuccessResetsCountdown() {
	s.query.On("PendingRewards", mock.Anything, testAccount).Return([]farm.PendingReward{
		{RewardCoinType: testRewardCoin, Amount: 1},
	}, nil)

	s.tracker.countdown = 3
	s.tracker.refresh(s.ctx, testAccount)
	s.Equal(CountdownStart, s.tracker.Countdown())
}

func (s *RewardTrackerTestSuite) TestCountdownTicks() {
	s.tracker = NewRewardTracker(&RewardTrackerCfg{
		Query:             s.query,
		RefreshInterval:   time.Hour,
		CountdownInterval: time.Millisecond,
	})
	s.tracker.Bind(s.ctx, domain.EmptyAddress, testRewardCoin)

	s.Eventually(func() bool {
		return s.tracker.Countdown() < CountdownStart
	}, time.Second, time.Millisecond)
}

func (s *RewardTrackerTestSuite) TestPeriodicRefresh() {
	s.tracker = NewRewardTracker(&RewardTrackerCfg{
		Query:             s.query,
		RefreshInterval:   5 * time.Millisecond,
		CountdownInterval: time.Hour,
	})
	var calls int32
	s.query.On("PendingRewards", mock.Anything, testAccount).Return([]farm.PendingReward{
		{RewardCoinType: testRewardCoin, Amount: 2},
	}, nil).Run(func(mock.Arguments) {
		atomic.AddInt32(&calls, 1)
	})

	s.tracker.Bind(s.ctx, testAccount, testRewardCoin)
	s.Eventually(func() bool {
		return atomic.LoadInt32(&calls) >= 3
	}, time.Second, time.Millisecond)
}

func (s *RewardTrackerTestSuite) TestRebind() {
	s.query.On("PendingRewards", mock.Anything, testAccount).Return([]farm.PendingReward{
		{RewardCoinType: testRewardCoin, Amount: 5},
	}, nil).Once()
	s.query.On("PendingRewards", mock.Anything, testAccount2).Return([]farm.PendingReward{
		{RewardCoinType: testRewardCoin, Amount: 9},
	}, nil).Once()

	s.tracker.Bind(s.ctx, testAccount, testRewardCoin)
	s.Eventually(func() bool {
		return s.tracker.PendingReward(testRewardCoin) == 5
	}, time.Second, 5*time.Millisecond)

	// same pair keeps the running loops and does not refetch
	s.tracker.Bind(s.ctx, testAccount, testRewardCoin)

	s.tracker.Bind(s.ctx, testAccount2, testRewardCoin)
	s.Eventually(func() bool {
		return s.tracker.PendingReward(testRewardCoin) == 9
	}, time.Second, 5*time.Millisecond)
	s.query.AssertExpectations(s.T())
}

func (s *RewardTrackerTestSuite) TestStopCancelsLoops() {
	ctx, cancel := bCtx.WithCancel(s.ctx)
	defer cancel()
	s.tracker.Bind(ctx, domain.EmptyAddress, testRewardCoin)
	s.tracker.Stop()
	s.tracker.Stop()
	goleak.VerifyNone(s.T())
}
