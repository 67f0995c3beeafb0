package usecase

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/base/goroutine"
	"github.com/x-xyz/yieldfarm/base/keylock"
	"github.com/x-xyz/yieldfarm/base/log"
	"github.com/x-xyz/yieldfarm/base/metrics"
	"github.com/x-xyz/yieldfarm/base/tracker"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
)

const (
	defaultMaxAge      = 30 * time.Second
	defaultIdleTimeout = 10 * time.Minute
)

var ErrClosed = errors.New("positions closed")

type PositionsCfg struct {
	Registry  farm.FarmRegistry
	Directory farm.AccountDirectory
	Rewards   farm.RewardQuery
	Builder   farm.TransactionBuilder
	Executor  farm.TransactionExecutor
	Oracle    farm.PriceOracle
	Notifier  farm.NotificationSink
	Locker    keylock.Locker
	Activity  farm.ActivityRepo
	Metrics   metrics.Service

	RefreshInterval   time.Duration
	CountdownInterval time.Duration
	// MaxAge is how old a snapshot may get before View re-resolves it
	MaxAge time.Duration
	// IdleTimeout closes sessions nobody used for that long
	IdleTimeout time.Duration
	Now         func() time.Time
}

type session struct {
	key       farm.Key
	resolver  farm.Resolver
	dashboard farm.Dashboard
	engine    farm.Engine
	lastUsed  int64
}

func (s *session) touch(now time.Time) {
	atomic.StoreInt64(&s.lastUsed, now.UnixNano())
}

func (s *session) idleSince() time.Time {
	return time.Unix(0, atomic.LoadInt64(&s.lastUsed))
}

type positions struct {
	cfg         PositionsCfg
	maxAge      time.Duration
	idleTimeout time.Duration
	now         func() time.Time

	mutex    sync.Mutex
	sessions map[string]*session
	closed   bool
	group    singleflight.Group

	done chan struct{}
	wg   sync.WaitGroup
}

// NewPositions returns the position usecase. Sessions are created on first use of a key
// and closed after IdleTimeout without use.
func NewPositions(cfg *PositionsCfg) farm.PositionUsecase {
	p := &positions{
		cfg:         *cfg,
		maxAge:      cfg.MaxAge,
		idleTimeout: cfg.IdleTimeout,
		now:         cfg.Now,
		sessions:    make(map[string]*session),
		done:        make(chan struct{}),
	}
	if p.maxAge <= 0 {
		p.maxAge = defaultMaxAge
	}
	if p.idleTimeout <= 0 {
		p.idleTimeout = defaultIdleTimeout
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.cfg.Locker == nil {
		// shared by every session so operations on one account never overlap
		p.cfg.Locker = keylock.New()
	}

	p.wg.Add(1)
	goroutine.RecoverableGo(bCtx.Background(), p.evictLoop)
	return p
}

func (p *positions) newSession(key farm.Key) *session {
	resolver := NewResolver(&ResolverCfg{
		Registry:  p.cfg.Registry,
		Directory: p.cfg.Directory,
	})
	s := &session{key: key, resolver: resolver}
	s.engine = NewEngine(&EngineCfg{
		Key:      key,
		Resolver: resolver,
		Rewards:  p.cfg.Rewards,
		Builder:  p.cfg.Builder,
		Executor: p.cfg.Executor,
		Notifier: p.cfg.Notifier,
		Locker:   p.cfg.Locker,
		Activity: p.cfg.Activity,
		Metrics:  p.cfg.Metrics,
		OnSuccess: func(ctx bCtx.Ctx) {
			if err := s.dashboard.Reload(ctx, key); err != nil {
				ctx.WithField("err", err).Warn("dashboard.Reload after success failed")
			}
		},
	})
	s.dashboard = NewDashboard(&DashboardCfg{
		Resolver: resolver,
		Tracker: tracker.NewRewardTracker(&tracker.RewardTrackerCfg{
			Query:             p.cfg.Rewards,
			Metrics:           p.cfg.Metrics,
			RefreshInterval:   p.cfg.RefreshInterval,
			CountdownInterval: p.cfg.CountdownInterval,
		}),
		Oracle: p.cfg.Oracle,
		Engine: s.engine,
		Now:    p.now,
	})
	return s
}

func (p *positions) lookup(k string) (*session, bool, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.closed {
		return nil, false, ErrClosed
	}
	s, ok := p.sessions[k]
	return s, ok, nil
}

// session returns the live session of key, resolving it the first time
func (p *positions) session(ctx bCtx.Ctx, key farm.Key) (*session, error) {
	k := key.String()
	if s, ok, err := p.lookup(k); err != nil {
		return nil, err
	} else if ok {
		s.touch(p.now())
		return s, nil
	}

	v, err, _ := p.group.Do(k, func() (interface{}, error) {
		if s, ok, err := p.lookup(k); err != nil {
			return nil, err
		} else if ok {
			return s, nil
		}

		s := p.newSession(key)
		if err := s.dashboard.Refresh(ctx, key); err != nil {
			s.dashboard.Close()
			return nil, err
		}
		s.touch(p.now())

		p.mutex.Lock()
		defer p.mutex.Unlock()
		if p.closed {
			s.dashboard.Close()
			return nil, ErrClosed
		}
		p.sessions[k] = s
		ctx.WithField("key", k).Info("position session opened")
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*session), nil
}

func (p *positions) View(ctx bCtx.Ctx, key farm.Key, rewardCoinType domain.CoinType) (*farm.View, error) {
	s, err := p.session(ctx, key)
	if err != nil {
		ctx.WithFields(log.Fields{
			"key": key.String(),
			"err": err,
		}).Error("positions.session failed")
		return nil, err
	}

	if snap := s.resolver.Snapshot(); snap == nil || p.now().Sub(snap.ResolvedAt) > p.maxAge {
		// the previous snapshot is still served when this fails
		if err := s.dashboard.Refresh(ctx, key); err != nil {
			ctx.WithField("err", err).Warn("dashboard.Refresh failed")
		}
	}

	v := s.dashboard.View(ctx, rewardCoinType)
	return &v, nil
}

func (p *positions) Stake(ctx bCtx.Ctx, key farm.Key, amount string) error {
	s, err := p.session(ctx, key)
	if err != nil {
		return err
	}
	return s.engine.Stake(ctx, amount)
}

func (p *positions) Harvest(ctx bCtx.Ctx, key farm.Key, rewardCoinType domain.CoinType) error {
	s, err := p.session(ctx, key)
	if err != nil {
		return err
	}
	return s.engine.Harvest(ctx, rewardCoinType)
}

func (p *positions) Unstake(ctx bCtx.Ctx, key farm.Key, amount string, rewardCoinType domain.CoinType) error {
	s, err := p.session(ctx, key)
	if err != nil {
		return err
	}
	return s.engine.Unstake(ctx, amount, rewardCoinType)
}

func (p *positions) Compound(ctx bCtx.Ctx, key farm.Key, rewardCoinType domain.CoinType) error {
	s, err := p.session(ctx, key)
	if err != nil {
		return err
	}
	return s.engine.Compound(ctx, rewardCoinType)
}

func (p *positions) Activities(ctx bCtx.Ctx, opts ...farm.ActivityFindAllOptionsFunc) ([]farm.Activity, int, error) {
	if p.cfg.Activity == nil {
		return []farm.Activity{}, 0, nil
	}
	res, err := p.cfg.Activity.FindAll(ctx, opts...)
	if errors.Is(err, domain.ErrNotFound) {
		return []farm.Activity{}, 0, nil
	} else if err != nil {
		ctx.WithField("err", err).Error("activity.FindAll failed")
		return nil, 0, err
	}
	// count ignores pagination
	n, err := p.cfg.Activity.Count(ctx, opts...)
	if err != nil {
		ctx.WithField("err", err).Error("activity.Count failed")
		return nil, 0, err
	}
	return res, n, nil
}

func (p *positions) evictLoop() {
	defer p.wg.Done()
	ticker := time.NewTicker(p.idleTimeout / 2)
	defer ticker.Stop()
	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.evictIdle()
		}
	}
}

func (p *positions) evictIdle() {
	deadline := p.now().Add(-p.idleTimeout)
	idle := []*session{}

	p.mutex.Lock()
	for k, s := range p.sessions {
		if s.idleSince().Before(deadline) {
			idle = append(idle, s)
			delete(p.sessions, k)
		}
	}
	p.mutex.Unlock()

	for _, s := range idle {
		s.dashboard.Close()
		log.Log().WithField("key", s.key.String()).Info("position session closed")
	}
}

// Close stops every session, later calls fail with ErrClosed
func (p *positions) Close() {
	p.mutex.Lock()
	if p.closed {
		p.mutex.Unlock()
		return
	}
	p.closed = true
	sessions := p.sessions
	p.sessions = map[string]*session{}
	p.mutex.Unlock()

	close(p.done)
	p.wg.Wait()
	for _, s := range sessions {
		s.dashboard.Close()
	}
}
