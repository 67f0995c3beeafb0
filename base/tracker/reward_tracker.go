package tracker

import (
	"context"
	"sync"
	"time"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/base/goroutine"
	"github.com/x-xyz/yieldfarm/base/log"
	"github.com/x-xyz/yieldfarm/base/metrics"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
)

const (
	DefaultRefreshInterval   = 60 * time.Second
	DefaultCountdownInterval = time.Second
	// CountdownStart is the value the countdown is reset to and wraps back to
	CountdownStart = 60
)

type RewardTrackerCfg struct {
	Query             farm.RewardQuery
	Metrics           metrics.Service
	RefreshInterval   time.Duration
	CountdownInterval time.Duration
}

// RewardTracker polls pending rewards of one bound account and runs a free running countdown.
// The countdown is cosmetic: it is reset by successful refreshes but never drives them.
type RewardTracker struct {
	query             farm.RewardQuery
	met               metrics.Service
	refreshInterval   time.Duration
	countdownInterval time.Duration

	mutex          sync.RWMutex
	accountId      domain.Address
	rewardCoinType domain.CoinType
	pending        map[domain.CoinType]uint64
	countdown      int

	bindMutex sync.Mutex
	bound     bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func NewRewardTracker(cfg *RewardTrackerCfg) *RewardTracker {
	t := &RewardTracker{
		query:             cfg.Query,
		met:               cfg.Metrics,
		refreshInterval:   cfg.RefreshInterval,
		countdownInterval: cfg.CountdownInterval,
		pending:           make(map[domain.CoinType]uint64),
		countdown:         CountdownStart,
	}
	if t.met == nil {
		t.met = metrics.New("reward_tracker")
	}
	if t.refreshInterval <= 0 {
		t.refreshInterval = DefaultRefreshInterval
	}
	if t.countdownInterval <= 0 {
		t.countdownInterval = DefaultCountdownInterval
	}
	return t
}

// Bind starts polling for (accountId, rewardCoinType), stopping the loops of the previous pair.
// Binding the pair that is already running is a no-op. The loops live until ctx is done, Stop or the next Bind.
func (t *RewardTracker) Bind(ctx bCtx.Ctx, accountId domain.Address, rewardCoinType domain.CoinType) {
	t.bindMutex.Lock()
	defer t.bindMutex.Unlock()

	t.mutex.RLock()
	same := t.bound && t.accountId.Equals(accountId) && t.rewardCoinType.Equals(rewardCoinType)
	t.mutex.RUnlock()
	if same {
		return
	}

	t.stopLocked()

	t.mutex.Lock()
	t.accountId = accountId
	t.rewardCoinType = rewardCoinType
	t.pending = make(map[domain.CoinType]uint64)
	t.countdown = CountdownStart
	t.mutex.Unlock()

	loopCtx, cancel := bCtx.WithCancel(bCtx.WithValues(ctx, map[string]interface{}{
		"accountId":      accountId,
		"rewardCoinType": rewardCoinType,
	}))
	t.cancel = cancel
	t.bound = true

	t.wg.Add(2)
	goroutine.RecoverableGo(loopCtx, func() { t.refreshLoop(loopCtx, accountId) })
	goroutine.RecoverableGo(loopCtx, func() { t.countdownLoop(loopCtx) })
}

// Stop tears down both loops and waits for them to exit
func (t *RewardTracker) Stop() {
	t.bindMutex.Lock()
	defer t.bindMutex.Unlock()
	t.stopLocked()
}

func (t *RewardTracker) stopLocked() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.wg.Wait()
	t.bound = false
}

// PendingReward returns the last known pending amount of coinType, the bound reward coin when empty
func (t *RewardTracker) PendingReward(coinType domain.CoinType) uint64 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	if coinType.IsEmpty() {
		coinType = t.rewardCoinType
	}
	if v, ok := t.pending[coinType]; ok {
		return v
	}
	for c, v := range t.pending {
		if c.Equals(coinType) {
			return v
		}
	}
	return 0
}

func (t *RewardTracker) PendingRewards() map[domain.CoinType]uint64 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	res := make(map[domain.CoinType]uint64, len(t.pending))
	for c, v := range t.pending {
		res[c] = v
	}
	return res
}

func (t *RewardTracker) Countdown() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.countdown
}

func (t *RewardTracker) refreshLoop(ctx bCtx.Ctx, accountId domain.Address) {
	defer t.wg.Done()

	nextTick := time.Duration(0)
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(nextTick):
			t.refresh(ctx, accountId)
			nextTick = t.refreshInterval
		}
	}
}

func (t *RewardTracker) refresh(ctx bCtx.Ctx, accountId domain.Address) {
	if accountId.IsEmpty() {
		t.mutex.Lock()
		t.pending = make(map[domain.CoinType]uint64)
		t.countdown = CountdownStart
		t.mutex.Unlock()
		return
	}

	rewards, err := t.query.PendingRewards(ctx, accountId)
	if err != nil {
		if ctx.Err() == nil {
			ctx.WithField("err", err).Error("query.PendingRewards failed")
			t.met.BumpSum("rewards.refresh.err", 1)
		}
		return
	}

	pending := make(map[domain.CoinType]uint64, len(rewards))
	for _, r := range rewards {
		pending[r.RewardCoinType] = r.Amount
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()
	// a rebind cancelled this loop while the query was in flight
	if ctx.Err() != nil {
		return
	}
	t.pending = pending
	t.countdown = CountdownStart
	ctx.WithFields(log.Fields{"rewards": len(rewards)}).Debug("pending rewards refreshed")
}

func (t *RewardTracker) countdownLoop(ctx bCtx.Ctx) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.countdownInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.mutex.Lock()
			t.countdown = TickCountdown(t.countdown)
			t.mutex.Unlock()
		}
	}
}

// TickCountdown is one step of the countdown ring: CountdownStart down to 1, then CountdownStart again
func TickCountdown(current int) int {
	if current-1 < 1 {
		return CountdownStart
	}
	return current - 1
}
