package keylock

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/base/log"
	"github.com/x-xyz/yieldfarm/domain/keys"
	"github.com/x-xyz/yieldfarm/service/redis"
)

var ErrLocked = errors.New("key is locked")

// Locker hands out exclusive, non blocking locks per key
type Locker interface {
	// TryLock returns ErrLocked immediately when key is held; call the returned func to release it
	TryLock(c ctx.Ctx, key string) (unlock func(), err error)
}

type memLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// New returns a process local Locker
func New() Locker {
	return &memLocker{held: make(map[string]struct{})}
}

func (l *memLocker) TryLock(_ ctx.Ctx, key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return nil, ErrLocked
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}

type redisLocker struct {
	redis redis.Service
	ttl   time.Duration
}

// NewRedis returns a Locker shared by every replica using the same redis.
// ttl bounds how long a crashed holder keeps the key.
func NewRedis(r redis.Service, ttl time.Duration) Locker {
	return &redisLocker{redis: r, ttl: ttl}
}

func (l *redisLocker) TryLock(c ctx.Ctx, key string) (func(), error) {
	redisKey := keys.RedisKey(keys.PfxKeyLock, key)
	token := []byte(uuid.NewString())

	err := l.redis.SetNX(c, redisKey, token, l.ttl)
	if err == redis.ErrNotFound {
		return nil, ErrLocked
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"key": redisKey,
		}).Error("redis.SetNX failed")
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if _, err := l.redis.CompareAndDel(c, redisKey, token); err != nil {
				c.WithFields(log.Fields{
					"err": err,
					"key": redisKey,
				}).Warn("redis.CompareAndDel failed")
			}
		})
	}, nil
}
