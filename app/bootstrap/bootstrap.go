// Package bootstrap assembles the farm position stack from viper settings.
// Both the api server and farmctl build their collaborators through Build.
package bootstrap

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/base/database/mongoclient"
	"github.com/x-xyz/yieldfarm/base/database/redisclient"
	"github.com/x-xyz/yieldfarm/base/keylock"
	"github.com/x-xyz/yieldfarm/base/log"
	"github.com/x-xyz/yieldfarm/base/metrics"
	"github.com/x-xyz/yieldfarm/base/price"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
	"github.com/x-xyz/yieldfarm/service/cache/provider"
	"github.com/x-xyz/yieldfarm/service/cache/provider/compound"
	"github.com/x-xyz/yieldfarm/service/cache/provider/primitive"
	redisprovider "github.com/x-xyz/yieldfarm/service/cache/provider/redis"
	"github.com/x-xyz/yieldfarm/service/chain"
	"github.com/x-xyz/yieldfarm/service/chainlink"
	"github.com/x-xyz/yieldfarm/service/coingecko"
	"github.com/x-xyz/yieldfarm/service/indexer"
	"github.com/x-xyz/yieldfarm/service/movecall"
	"github.com/x-xyz/yieldfarm/service/notify"
	"github.com/x-xyz/yieldfarm/service/query"
	"github.com/x-xyz/yieldfarm/service/redis"
	"github.com/x-xyz/yieldfarm/service/signer"
	farm_repository "github.com/x-xyz/yieldfarm/stores/farm/repository"
	farm_usecase "github.com/x-xyz/yieldfarm/stores/farm/usecase"
)

const (
	DefaultConfigFile = "infra/configs/config.yaml"

	cacheProviderRedis = "redis"
	memoryCacheSizeMB  = 16
	lockTtl            = 2 * time.Minute
)

// LoadConfig reads the yaml config at path. Every key can be overridden by an env var
// named after it, e.g. DISCORD_BOTKEY for discord.botKey.
func LoadConfig(path string) error {
	if path == "" {
		path = DefaultConfigFile
	}
	viper.SetConfigType("yaml")
	viper.SetConfigFile(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		return xerrors.Errorf("failed to read config %s: %w", path, err)
	}
	log.SetDebug(viper.GetBool("debug"))
	if viper.GetBool("debug") {
		log.Log().Info("Service RUN on DEBUG mode")
	}
	return nil
}

type Options struct {
	// SkipMongo leaves the activity history out, operations are then not recorded
	SkipMongo bool
	// Sinks receive notices next to the configured log and discord sinks
	Sinks []farm.NotificationSink
}

// Stack is everything Build created. Mongo and Redis are nil when not configured.
type Stack struct {
	Positions     farm.PositionUsecase
	Oracle        farm.PriceOracle
	Registry      farm.FarmRegistry
	Mongo         *mongoclient.Client
	Redis         redis.Service
	CacheProvider provider.Provider
}

// Build wires the position usecase and its collaborators from the loaded config
func Build(ctx bCtx.Ctx, opts Options) (*Stack, error) {
	s := &Stack{}

	if uri := viper.GetString("redis_cache.uri"); uri != "" {
		ctx.Info("init redis cache")
		name := viper.GetString("redis_cache.name")
		pool, err := redisclient.ConnectRedis(uri, viper.GetString("redis_cache.password"), redisclient.RedisParam{
			PoolMultiplier: viper.GetFloat64("redis_cache.poolMultiplier"),
			Retries:        viper.GetInt("redis_cache.retries"),
		})
		if err != nil {
			ctx.WithFields(log.Fields{
				"uri": uri,
				"err": err,
			}).Error("redisclient.ConnectRedis failed")
			return nil, err
		}
		s.Redis = redis.New(name, metrics.New(name), &redis.Pools{Src: pool})
	}

	memory := primitive.NewPrimitive("http_cache", memoryCacheSizeMB)
	s.CacheProvider = memory
	if viper.GetString("cache.provider") == cacheProviderRedis {
		if s.Redis == nil {
			return nil, xerrors.Errorf("cache.provider is redis but redis_cache.uri is empty: %w", domain.ErrBadParamInput)
		}
		// memory first, redis behind it
		s.CacheProvider = compound.NewCompound(memory, redisprovider.NewRedis(s.Redis))
	}

	var locker keylock.Locker
	if s.Redis != nil {
		locker = keylock.NewRedis(s.Redis, lockTtl)
	}

	var activity farm.ActivityRepo
	if uri := viper.GetString("mongo.uri"); uri != "" && !opts.SkipMongo {
		ctx.Info("init mongo")
		client, err := mongoclient.ConnectMongoClient(mongoclient.Cfg{
			Uri:                uri,
			AuthDBName:         viper.GetString("mongo.authDBName"),
			DBName:             viper.GetString("mongo.dbName"),
			SSL:                viper.GetBool("mongo.enableSSL"),
			SetSafe:            true,
			PoolSizeMultiplier: viper.GetFloat64("mongo.poolSizeMultiplier"),
			ConnectTimeout:     viper.GetDuration("mongo.connectTimeout"),
		})
		if err != nil {
			ctx.WithField("err", err).Error("mongoclient.ConnectMongoClient failed")
			return nil, err
		}
		s.Mongo = client
		q := query.New(client, query.Cfg{
			CheckIndex:    viper.GetBool("mongo.checkIndex"),
			SlowThreshold: viper.GetDuration("mongo.slowThreshold"),
		})
		if err := farm_repository.EnsureActivityIndexes(ctx, q); err != nil {
			// reads still work without the indexes
			ctx.WithField("err", err).Warn("farm_repository.EnsureActivityIndexes failed")
		}
		activity = farm_repository.NewActivityRepo(q)
	}

	idx := indexer.NewClient(&indexer.ClientCfg{
		HttpClient: http.Client{},
		Url:        viper.GetString("indexer.url"),
		Timeout:    viper.GetDuration("indexer.timeout"),
		Rps:        viper.GetFloat64("indexer.rps"),
		Retries:    viper.GetInt("indexer.retries"),
		PageSize:   viper.GetInt("indexer.pageSize"),
		Metrics:    metrics.New("indexer"),
	})
	s.Registry = idx

	builder, err := movecall.NewBuilder(&movecall.BuilderCfg{
		PackageId: domain.Address(viper.GetString("farm.packageId")),
		Module:    viper.GetString("farm.module"),
	})
	if err != nil {
		ctx.WithField("err", err).Error("movecall.NewBuilder failed")
		return nil, err
	}

	executor := signer.NewExecutor(&signer.ExecutorCfg{
		HttpClient: http.Client{},
		Url:        viper.GetString("signer.url"),
		Timeout:    viper.GetDuration("signer.timeout"),
	})

	oracle, err := buildOracle(ctx)
	if err != nil {
		return nil, err
	}
	s.Oracle = oracle

	notifier, err := buildNotifier(opts.Sinks)
	if err != nil {
		ctx.WithField("err", err).Error("buildNotifier failed")
		return nil, err
	}

	s.Positions = farm_usecase.NewPositions(&farm_usecase.PositionsCfg{
		Registry:          idx,
		Directory:         idx,
		Rewards:           idx,
		Builder:           builder,
		Executor:          executor,
		Oracle:            oracle,
		Notifier:          notifier,
		Locker:            locker,
		Activity:          activity,
		Metrics:           metrics.New("farm"),
		RefreshInterval:   viper.GetDuration("farm.refreshInterval"),
		CountdownInterval: viper.GetDuration("farm.countdownInterval"),
		MaxAge:            viper.GetDuration("farm.maxAge"),
		IdleTimeout:       viper.GetDuration("farm.idleTimeout"),
	})
	return s, nil
}

func buildOracle(ctx bCtx.Ctx) (farm.PriceOracle, error) {
	var feeds []price.Feed
	if err := viper.UnmarshalKey("prices", &feeds); err != nil {
		ctx.WithField("err", err).Error("viper.UnmarshalKey prices failed")
		return nil, xerrors.Errorf("invalid prices config: %w", err)
	}

	var cl chainlink.Chainlink
	if networks := viper.Sub("networks"); networks != nil {
		rpcs := make(map[int32]string)
		for k := range networks.AllSettings() {
			chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
			rpcs[chainId] = networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		}
		chainService, err := chain.NewClient(ctx, &chain.ClientCfg{
			RpcUrls:        rpcs,
			MaxConcurrency: viper.GetInt("chainlink.maxConcurrency"),
		})
		if err != nil {
			ctx.WithField("err", err).Warn("chainService started with error")
		}
		cl = chainlink.New(&chainlink.Cfg{
			ChainClient: chainService,
			Ttl:         viper.GetDuration("chainlink.ttl"),
			MaxAge:      viper.GetDuration("chainlink.maxAge"),
		})
	}

	cg := coingecko.NewClient(&coingecko.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    viper.GetDuration("coingecko.timeout"),
		Api:        viper.GetString("coingecko.api"),
		Rps:        viper.GetFloat64("coingecko.rps"),
	})

	return price.NewOracle(&price.OracleCfg{
		Feeds:     feeds,
		Chainlink: cl,
		CoinGecko: cg,
	}), nil
}

func buildNotifier(extra []farm.NotificationSink) (farm.NotificationSink, error) {
	sinks := []farm.NotificationSink{notify.NewLogSink()}
	if botKey := viper.GetString("discord.botKey"); botKey != "" {
		discord, err := notify.NewDiscordSink(notify.DiscordCfg{
			BotKey:      botKey,
			ChannelId:   viper.GetString("discord.channelId"),
			MinSeverity: farm.Severity(viper.GetString("discord.minSeverity")),
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, discord)
	}
	sinks = append(sinks, extra...)
	return notify.NewFanout(sinks...), nil
}

// Close stops every session and disconnects mongo
func (s *Stack) Close(ctx bCtx.Ctx) {
	if s.Positions != nil {
		s.Positions.Close()
	}
	if s.Mongo != nil {
		if err := s.Mongo.Disconnect(ctx); err != nil {
			ctx.WithField("err", err).Warn("mongo.Disconnect failed")
		}
	}
}
