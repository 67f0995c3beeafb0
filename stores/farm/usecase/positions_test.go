package usecase

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
	"github.com/x-xyz/yieldfarm/domain/farm/mocks"
	"github.com/x-xyz/yieldfarm/service/movecall"
	"github.com/x-xyz/yieldfarm/service/notify"
)

type PositionsTestSuite struct {
	suite.Suite

	ctx       bCtx.Ctx
	registry  *mocks.FarmRegistry
	directory *mocks.AccountDirectory
	rewards   *mocks.RewardQuery
	executor  *mocks.TransactionExecutor
	oracle    *mocks.PriceOracle
	activity  *mocks.ActivityRepo
	notices   *notify.Collector
	leaks     goleak.Option

	nowMu sync.Mutex
	now   time.Time
	im    farm.PositionUsecase
}

func TestPositionsTestSuite(t *testing.T) {
	suite.Run(t, new(PositionsTestSuite))
}

func (s *PositionsTestSuite) SetupTest() {
	s.leaks = goleak.IgnoreCurrent()
	s.ctx = bCtx.Background()
	s.registry = mocks.NewFarmRegistry(s.T())
	s.directory = mocks.NewAccountDirectory(s.T())
	s.rewards = mocks.NewRewardQuery(s.T())
	s.executor = mocks.NewTransactionExecutor(s.T())
	s.oracle = mocks.NewPriceOracle(s.T())
	s.activity = mocks.NewActivityRepo(s.T())
	s.notices = &notify.Collector{}
	s.now = time.Unix(1_700_000_000, 0)

	s.rewards.On("PendingRewards", mock.Anything, testAccount).Return([]farm.PendingReward{
		{RewardCoinType: rewardType, Amount: 5},
	}, nil).Maybe()
	s.oracle.On("GetPriceUSD", mock.Anything, mock.Anything).Return(decimal.NewFromInt(1), nil).Maybe()

	builder, err := movecall.NewBuilder(&movecall.BuilderCfg{PackageId: testPackage})
	s.Require().NoError(err)
	s.im = NewPositions(&PositionsCfg{
		Registry:          s.registry,
		Directory:         s.directory,
		Rewards:           s.rewards,
		Builder:           builder,
		Executor:          s.executor,
		Oracle:            s.oracle,
		Notifier:          s.notices,
		Activity:          s.activity,
		RefreshInterval:   time.Hour,
		CountdownInterval: time.Hour,
		MaxAge:            time.Hour,
		IdleTimeout:       time.Hour,
		Now:               s.clock,
	})
}

func (s *PositionsTestSuite) TearDownTest() {
	s.im.Close()
	goleak.VerifyNone(s.T(), s.leaks)
}

func (s *PositionsTestSuite) clock() time.Time {
	s.nowMu.Lock()
	defer s.nowMu.Unlock()
	return s.now
}

func (s *PositionsTestSuite) advance(d time.Duration) {
	s.nowMu.Lock()
	defer s.nowMu.Unlock()
	s.now = s.now.Add(d)
}

func (s *PositionsTestSuite) expectResolve(times int) {
	s.registry.On("GetFarm", mock.Anything, testFarmId).Return(newTestFarm(), nil).Times(times)
	s.directory.On("OwnedAccounts", mock.Anything, testWallet).Return([]farm.AccountPosition{
		*newTestAccount(2_000_000_000),
	}, nil).Times(times)
}

func (s *PositionsTestSuite) sessions() int {
	p := s.im.(*positions)
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.sessions)
}

func (s *PositionsTestSuite) TestViewOpensSessionOnce() {
	s.expectResolve(1)

	v, err := s.im.View(s.ctx, testKey, "")
	s.Require().NoError(err)
	s.Require().NotNil(v.Snapshot)
	s.Require().Equal(testAccount, v.Snapshot.Account.ObjectId)
	s.Require().Equal(rewardType, v.RewardCoinType)

	v, err = s.im.View(s.ctx, testKey, stakeType)
	s.Require().NoError(err)
	s.Require().Equal(stakeType, v.RewardCoinType)
	s.Require().Equal(1, s.sessions())
}

func (s *PositionsTestSuite) TestViewReResolvesStaleSnapshot() {
	s.expectResolve(2)

	_, err := s.im.View(s.ctx, testKey, "")
	s.Require().NoError(err)
	s.advance(2 * time.Hour)
	_, err = s.im.View(s.ctx, testKey, "")
	s.Require().NoError(err)
}

func (s *PositionsTestSuite) TestViewFailureIsNotKept() {
	key := farm.Key{FarmId: testFarmId}
	errIndexer := errors.New("indexer down")
	s.registry.On("GetFarm", mock.Anything, testFarmId).Return(nil, errIndexer).Once()

	_, err := s.im.View(s.ctx, key, "")
	s.Require().ErrorIs(err, errIndexer)
	s.Require().Zero(s.sessions())

	s.registry.On("GetFarm", mock.Anything, testFarmId).Return(newTestFarm(), nil).Once()
	v, err := s.im.View(s.ctx, key, "")
	s.Require().NoError(err)
	s.Require().Nil(v.Snapshot.Account)
	s.Require().Zero(v.PendingRewards)
}

func (s *PositionsTestSuite) TestHarvestDisconnected() {
	key := farm.Key{FarmId: testFarmId, Wallet: testWallet}
	s.registry.On("GetFarm", mock.Anything, testFarmId).Return(newTestFarm(), nil).Once()

	err := s.im.Harvest(s.ctx, key, rewardType)
	s.Require().Equal(farm.ErrWalletNotConnected, err)
	s.Require().Equal([]notify.Notice{
		{Message: farm.ErrWalletNotConnected.Error(), Severity: farm.SeverityWarning},
	}, s.notices.Drain())
}

func (s *PositionsTestSuite) TestStakeRefreshesAfterSuccess() {
	s.expectResolve(2)
	s.executor.On("Execute", mock.Anything, mock.Anything).
		Return(&farm.ExecutionResult{Digest: "0xd1", Status: "success"}, nil).Once()
	s.activity.On("Insert", mock.Anything, mock.MatchedBy(func(a *farm.Activity) bool {
		return a.Kind == farm.OperationStake && a.Status == farm.ActivitySuccess && a.Amount == "1"
	})).Return(nil).Once()

	s.Require().NoError(s.im.Stake(s.ctx, testKey, "1"))

	notices := s.notices.Drain()
	s.Require().Len(notices, 1)
	s.Require().Equal(farm.SeveritySuccess, notices[0].Severity)
	s.Require().Contains(notices[0].Message, "Staked 1")
}

func (s *PositionsTestSuite) TestEvictIdle() {
	s.expectResolve(2)

	_, err := s.im.View(s.ctx, testKey, "")
	s.Require().NoError(err)

	p := s.im.(*positions)
	p.evictIdle()
	s.Require().Equal(1, s.sessions())

	s.advance(2 * time.Hour)
	p.evictIdle()
	s.Require().Zero(s.sessions())

	_, err = s.im.View(s.ctx, testKey, "")
	s.Require().NoError(err)
	s.Require().Equal(1, s.sessions())
}

func (s *PositionsTestSuite) TestClosed() {
	s.im.Close()
	_, err := s.im.View(s.ctx, testKey, "")
	s.Require().Equal(ErrClosed, err)
	s.Require().Equal(ErrClosed, s.im.Stake(s.ctx, testKey, "1"))
}

func (s *PositionsTestSuite) TestActivities() {
	page := []farm.Activity{{Id: "a"}, {Id: "b"}}
	s.activity.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return(page, nil).Once()
	s.activity.On("Count", mock.Anything, mock.Anything, mock.Anything).Return(7, nil).Once()

	res, n, err := s.im.Activities(s.ctx, farm.ActivityWithWallet(testWallet), farm.ActivityWithPagination(0, 2))
	s.Require().NoError(err)
	s.Require().Equal(page, res)
	s.Require().Equal(7, n)

	s.activity.On("FindAll", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound).Once()
	res, n, err = s.im.Activities(s.ctx, farm.ActivityWithWallet(testWallet))
	s.Require().NoError(err)
	s.Require().Empty(res)
	s.Require().Zero(n)
}

func (s *PositionsTestSuite) TestViewAfterStakeShowsNewBalance() {
	s.registry.On("GetFarm", mock.Anything, testFarmId).Return(newTestFarm(), nil).Twice()
	s.directory.On("OwnedAccounts", mock.Anything, testWallet).Return([]farm.AccountPosition{
		*newTestAccount(2_000_000_000),
	}, nil).Once()
	s.directory.On("OwnedAccounts", mock.Anything, testWallet).Return([]farm.AccountPosition{
		*newTestAccount(3_000_000_000),
	}, nil).Once()
	s.executor.On("Execute", mock.Anything, mock.Anything).
		Return(&farm.ExecutionResult{Digest: "0xd2", Status: "success"}, nil).Once()
	s.activity.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	s.Require().NoError(s.im.Stake(s.ctx, testKey, "1"))
	s.notices.Drain()

	v, err := s.im.View(s.ctx, testKey, "")
	s.Require().NoError(err)
	s.Require().NotNil(v.Snapshot.Account)
	s.Require().Equal(uint64(3_000_000_000), v.Snapshot.Account.StakeBalance)
}
