package redis

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/service/cache/provider"
	"github.com/x-xyz/yieldfarm/service/redis"
	mockRedis "github.com/x-xyz/yieldfarm/service/redis/mocks"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	im    *impl
	redis *mockRedis.Service
}

func (ts *testsuite) SetupTest() {
	ts.redis = &mockRedis.Service{}
	ts.im = NewRedis(ts.redis).(*impl)
}

func (ts *testsuite) TearDownTest() {
	ts.redis.AssertExpectations(ts.T())
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSet() {
	k := "key"
	v := []byte("value")

	ts.redis.On("Set", mockCtx, k, v, time.Second).Return(nil).Once()
	ts.NoError(ts.im.Set(mockCtx, k, v, time.Second))
}

func (ts *testsuite) TestGet() {
	cases := []struct {
		desc   string
		setup  func()
		val    []byte
		ttl    time.Duration
		expErr error
	}{
		{
			desc: "hit",
			setup: func() {
				ts.redis.On("Get", mockCtx, "k").Return([]byte("v"), nil).Once()
				ts.redis.On("TTL", mockCtx, "k").Return(30, nil).Once()
			},
			val: []byte("v"),
			ttl: 30 * time.Second,
		},
		{
			desc: "hit without ttl",
			setup: func() {
				ts.redis.On("Get", mockCtx, "k").Return([]byte("v"), nil).Once()
				ts.redis.On("TTL", mockCtx, "k").Return(-1, redis.ErrNoTTL).Once()
			},
			val: []byte("v"),
		},
		{
			desc: "miss",
			setup: func() {
				ts.redis.On("Get", mockCtx, "k").Return(nil, redis.ErrNotFound).Once()
			},
			expErr: provider.ErrNotFound,
		},
		{
			desc: "redis down",
			setup: func() {
				ts.redis.On("Get", mockCtx, "k").Return(nil, errors.New("conn refused")).Once()
			},
			expErr: errors.New("conn refused"),
		},
	}
	for _, c := range cases {
		c.setup()
		val, ttl, err := ts.im.Get(mockCtx, "k")
		ts.Equal(c.expErr, err, c.desc)
		ts.Equal(c.val, val, c.desc)
		ts.Equal(c.ttl, ttl, c.desc)
	}
}

func (ts *testsuite) TestIncr() {
	ts.redis.On("Exists", mockCtx, "missing").Return(false, nil).Once()
	_, _, err := ts.im.Incr(mockCtx, "missing", 1)
	ts.Equal(provider.ErrNotFound, err)

	ts.redis.On("Exists", mockCtx, "counter").Return(true, nil).Once()
	ts.redis.On("Incrby", mockCtx, "counter", 2).Return(int64(7), nil).Once()
	ts.redis.On("TTL", mockCtx, "counter").Return(10, nil).Once()
	v, ttl, err := ts.im.Incr(mockCtx, "counter", 2)
	ts.NoError(err)
	ts.Equal(int64(7), v)
	ts.Equal(10*time.Second, ttl)
}

func (ts *testsuite) TestDel() {
	ts.redis.On("Del", mockCtx, "k").Return(1, nil).Once()
	ts.NoError(ts.im.Del(mockCtx, "k"))
}
