package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/yieldfarm/base/ctx"
)

// Forever is the expire value of keys without ttl
const Forever = time.Duration(0)

var (
	// ErrNotFound is returned when the key does not exist, or when SetNX finds the key already set
	ErrNotFound = redis.ErrNil
	// ErrNoTTL is returned by TTL when the key exists without expire
	ErrNoTTL   = errors.New("key has no ttl")
	ErrGapTime = errors.New("redis pool not available")
)

// Service is the subset of redis commands used by the cache provider, the health check and the key lock
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	// SetNX sets key only when it does not exist, ErrNotFound means it was already set
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, ks ...string) (int, error)
	// CompareAndDel deletes key only when it still holds val
	CompareAndDel(context ctx.Ctx, key string, val []byte) (bool, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	Incrby(context ctx.Ctx, key string, val int) (int64, error)
	TTL(context ctx.Ctx, key string) (int, error)
}
