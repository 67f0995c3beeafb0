package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/x-xyz/yieldfarm/base/ctx"
	hcdomain "github.com/x-xyz/yieldfarm/domain/healthcheck"
	"github.com/x-xyz/yieldfarm/domain/keys"
	"github.com/x-xyz/yieldfarm/service/redis"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *mongoclient.Client
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type impl struct {
	mgoClient  Pinger
	redisCache redis.Service
}

// New creates the health check repo, mgoClient and redisCache are nil when not configured
func New(
	mgoClient Pinger,
	redisCache redis.Service,
) hcdomain.HealthCheckRepo {
	return &impl{
		mgoClient:  mgoClient,
		redisCache: redisCache,
	}
}

func (im *impl) PingDB(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if im.mgoClient != nil {
		if err := im.mgoClient.Ping(ctx, readpref.Primary()); err != nil {
			context.WithField("err", err).Error("ping mongo error")
			return err
		}
	}

	if im.redisCache == nil {
		return nil
	}
	if err := im.redisCache.Set(ctx, keys.RedisKey(keys.PfxHealthCheck, "testset"), []byte("1"), 30*time.Second); err != nil {
		context.WithField("err", err).Error("test redis set failed")
		return err
	}
	return nil
}
