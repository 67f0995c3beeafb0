package indexer

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
)

const (
	farmId    = domain.Address("0xfa")
	wallet    = domain.Address("0xa11ce")
	accountId = domain.Address("0xacc")
	suiType   = "0x2::sui::SUI"
	rwdType   = "0xbeef::rwd::RWD"
)

var farmJson = fmt.Sprintf(`{"data":{
	"farmId":"0xfa",
	"stakeCoinType":%q,
	"rewardTypes":[%q,%q],
	"rewardData":{
		%q:{"rewardsPerSecond":"1000000","end":null},
		%q:{"rewardsPerSecond":250,"end":1700000000000}
	},
	"totalStakedAmount":"1000000000000",
	"stakeDecimals":9,
	"rewardDecimals":6
}}`, suiType, rwdType, suiType, rwdType, suiType)

type IndexerTestSuite struct {
	suite.Suite

	ctx  bCtx.Ctx
	mux  *http.ServeMux
	srv  *httptest.Server
	hits int32
	im   Client
}

func TestIndexerTestSuite(t *testing.T) {
	suite.Run(t, new(IndexerTestSuite))
}

func (s *IndexerTestSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.hits = 0
	s.mux = http.NewServeMux()
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.hits, 1)
		s.mux.ServeHTTP(w, r)
	}))
	s.im = NewClient(&ClientCfg{
		HttpClient: http.Client{},
		Url:        s.srv.URL,
		Timeout:    time.Second,
		Retries:    3,
		PageSize:   2,
	})
}

func (s *IndexerTestSuite) TearDownTest() {
	s.srv.Close()
}

func (s *IndexerTestSuite) TestGetFarm() {
	s.mux.HandleFunc("/farms/0xfa", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(farmJson))
	})

	f, err := s.im.GetFarm(s.ctx, farmId)
	s.Require().NoError(err)
	s.Require().Equal(farmId, f.FarmId)
	s.Require().Equal(domain.CoinType(suiType), f.StakeCoinType)
	s.Require().Equal([]domain.CoinType{rwdType, suiType}, f.RewardTypes)
	s.Require().Equal(uint64(1_000_000_000_000), f.TotalStakedAmount)
	s.Require().Equal(int32(6), f.RewardUnit())
	s.Require().Equal(int32(9), f.StakeUnit())

	sui := f.Schedule(suiType)
	s.Require().NotNil(sui)
	s.Require().Equal(uint64(1_000_000), sui.RewardsPerSecond)
	s.Require().Nil(sui.End)

	rwd := f.Schedule(rwdType)
	s.Require().NotNil(rwd)
	s.Require().Equal(uint64(250), rwd.RewardsPerSecond)
	s.Require().NotNil(rwd.End)
	s.Require().Equal(int64(1_700_000_000_000), *rwd.End)
}

func (s *IndexerTestSuite) TestGetFarmNotFoundIsNotRetried() {
	s.mux.HandleFunc("/farms/0xfa", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := s.im.GetFarm(s.ctx, farmId)
	s.Require().ErrorIs(err, ErrNotFound)
	s.Require().ErrorIs(err, farm.ErrNetwork)
	s.Require().Equal(int32(1), atomic.LoadInt32(&s.hits))
}

func (s *IndexerTestSuite) TestGetFarmRetriesServerErrors() {
	var calls int32
	s.mux.HandleFunc("/farms/0xfa", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(farmJson))
	})

	f, err := s.im.GetFarm(s.ctx, farmId)
	s.Require().NoError(err)
	s.Require().Equal(farmId, f.FarmId)
	s.Require().Equal(int32(3), atomic.LoadInt32(&calls))
}

func (s *IndexerTestSuite) TestGetFarmGivesUp() {
	s.mux.HandleFunc("/farms/0xfa", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := s.im.GetFarm(s.ctx, farmId)
	s.Require().ErrorIs(err, ErrStatusCodeNotOk)
	s.Require().Equal(int32(3), atomic.LoadInt32(&s.hits))
}

func (s *IndexerTestSuite) TestGetFarmMalformedAmount() {
	s.mux.HandleFunc("/farms/0xfa", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"farmId":"0xfa","totalStakedAmount":"-1"}}`))
	})

	_, err := s.im.GetFarm(s.ctx, farmId)
	s.Require().ErrorIs(err, ErrMalformed)
}

func (s *IndexerTestSuite) TestOwnedAccountsPaginates() {
	s.mux.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		s.Require().Equal("0xa11ce", r.URL.Query().Get("owner"))
		s.Require().Equal("2", r.URL.Query().Get("limit"))
		switch r.URL.Query().Get("cursor") {
		case "":
			w.Write([]byte(`{"data":[
				{"objectId":"0x1","farmId":"0xother","owner":"0xa11ce","stakeBalance":"5"},
				{"objectId":"0x2","farmId":"0xfa","owner":"0xa11ce","stakeBalance":"7"}
			],"hasNextPage":true,"nextCursor":"c1"}`))
		case "c1":
			w.Write([]byte(`{"data":[
				{"objectId":"0x3","farmId":"0xfa","owner":"0xa11ce","stakeBalance":9}
			],"hasNextPage":false,"nextCursor":null}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	accounts, err := s.im.OwnedAccounts(s.ctx, wallet)
	s.Require().NoError(err)
	s.Require().Len(accounts, 3)
	s.Require().Equal(domain.Address("0x2"), accounts[1].ObjectId)
	s.Require().Equal(uint64(7), accounts[1].StakeBalance)
	s.Require().Equal(uint64(9), accounts[2].StakeBalance)
}

func (s *IndexerTestSuite) TestOwnedAccountsEmpty() {
	s.mux.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[],"hasNextPage":false}`))
	})

	accounts, err := s.im.OwnedAccounts(s.ctx, wallet)
	s.Require().NoError(err)
	s.Require().Empty(accounts)
}

func (s *IndexerTestSuite) TestPendingRewards() {
	s.mux.HandleFunc("/accounts/0xacc/rewards", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fmt.Sprintf(`{"data":[{"coinType":%q,"amount":"12"},{"coinType":%q,"amount":"0"}]}`, rwdType, suiType)))
	})

	rewards, err := s.im.PendingRewards(s.ctx, accountId)
	s.Require().NoError(err)
	s.Require().Len(rewards, 2)
	s.Require().Equal(uint64(12), farm.FindPending(rewards, rwdType))
	s.Require().Equal(uint64(0), farm.FindPending(rewards, suiType))
}

func (s *IndexerTestSuite) TestBadRequestIsNotRetried() {
	s.mux.HandleFunc("/accounts/0xacc/rewards", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := s.im.PendingRewards(s.ctx, accountId)
	s.Require().ErrorIs(err, ErrStatusCodeNotOk)
	s.Require().Equal(int32(1), atomic.LoadInt32(&s.hits))
}

func (s *IndexerTestSuite) TestGetFarmZeroDecimals() {
	s.mux.HandleFunc("/farms/0xfa", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"farmId":"0xfa","stakeCoinType":"0x5::pts::PTS","totalStakedAmount":"42","stakeDecimals":0}}`))
	})

	f, err := s.im.GetFarm(s.ctx, farmId)
	s.Require().NoError(err)
	s.Require().NotNil(f.StakeDecimals)
	s.Require().Equal(int32(0), f.StakeUnit())
	s.Require().Nil(f.RewardDecimals)
	s.Require().Equal(farm.DefaultDecimals, f.RewardUnit())
	s.Require().Equal("42", farm.FormatAmount(f.TotalStakedAmount, f.StakeUnit()))
}
