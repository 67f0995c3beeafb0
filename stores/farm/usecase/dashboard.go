package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/viney-shih/goroutines"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/base/log"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
)

const priceWorkers = 4

type DashboardCfg struct {
	Resolver farm.Resolver
	Tracker  farm.RewardTracker
	Oracle   farm.PriceOracle
	// Engine is optional, its flags are shown in the view
	Engine farm.Engine
	Now    func() time.Time
}

type priceEntry struct {
	price *decimal.Decimal
	done  bool
}

type dashboard struct {
	resolver farm.Resolver
	tracker  farm.RewardTracker
	oracle   farm.PriceOracle
	engine   farm.Engine
	now      func() time.Time

	// tracker loops live until Close
	ctx    bCtx.Ctx
	cancel context.CancelFunc

	mutex  sync.RWMutex
	prices map[domain.CoinType]priceEntry
}

func NewDashboard(cfg *DashboardCfg) farm.Dashboard {
	ctx, cancel := bCtx.WithCancel(bCtx.Background())
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &dashboard{
		resolver: cfg.Resolver,
		tracker:  cfg.Tracker,
		oracle:   cfg.Oracle,
		engine:   cfg.Engine,
		now:      now,
		ctx:      ctx,
		cancel:   cancel,
		prices:   make(map[domain.CoinType]priceEntry),
	}
}

// Refresh re-resolves key, rebinds the reward tracker and reloads prices
func (d *dashboard) Refresh(ctx bCtx.Ctx, key farm.Key) error {
	snap, err := d.resolver.Resolve(ctx, key)
	if err != nil {
		ctx.WithFields(log.Fields{
			"key": key.String(),
			"err": err,
		}).Error("resolver.Resolve failed")
		return err
	}
	d.apply(ctx, snap)
	return nil
}

func (d *dashboard) Reload(ctx bCtx.Ctx, key farm.Key) error {
	snap, err := d.resolver.Refetch(ctx, key)
	if err != nil {
		ctx.WithFields(log.Fields{
			"key": key.String(),
			"err": err,
		}).Error("resolver.Refetch failed")
		return err
	}
	d.apply(ctx, snap)
	return nil
}

func (d *dashboard) apply(ctx bCtx.Ctx, snap *farm.Snapshot) {

	accountId, _ := snap.AccountId()
	rewardType, _ := snap.Farm.DefaultRewardType()
	d.tracker.Bind(d.ctx, accountId, rewardType)

	d.loadPrices(ctx, snap.Farm)
}

type priceResult struct {
	coinType domain.CoinType
	price    *decimal.Decimal
}

func (d *dashboard) loadPrices(ctx bCtx.Ctx, f *farm.FarmDescriptor) {
	coinTypes := []domain.CoinType{f.StakeCoinType}
	for _, t := range f.RewardTypes {
		if !t.Equals(f.StakeCoinType) {
			coinTypes = append(coinTypes, t)
		}
	}

	d.mutex.Lock()
	for _, t := range coinTypes {
		e := d.prices[t.Normalize()]
		e.done = false
		d.prices[t.Normalize()] = e
	}
	d.mutex.Unlock()

	b := goroutines.NewBatch(priceWorkers, goroutines.WithBatchSize(len(coinTypes)))
	defer b.Close()
	for i := range coinTypes {
		coinType := coinTypes[i]
		b.Queue(func() (interface{}, error) {
			price, err := d.oracle.GetPriceUSD(ctx, coinType)
			if errors.Is(err, farm.ErrNoPriceFeed) {
				return &priceResult{coinType: coinType}, nil
			} else if err != nil {
				ctx.WithFields(log.Fields{
					"coinType": coinType,
					"err":      err,
				}).Warn("oracle.GetPriceUSD failed")
				return &priceResult{coinType: coinType}, nil
			}
			return &priceResult{coinType: coinType, price: &price}, nil
		})
	}
	b.QueueComplete()

	for ret := range b.Results() {
		if ret.Error() != nil {
			continue
		}
		r := ret.Value().(*priceResult)
		d.mutex.Lock()
		e := d.prices[r.coinType.Normalize()]
		// a failed reload keeps the last known price
		if r.price != nil {
			e.price = r.price
		}
		e.done = true
		d.prices[r.coinType.Normalize()] = e
		d.mutex.Unlock()
	}
}

func (d *dashboard) price(coinType domain.CoinType) priceEntry {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return d.prices[coinType.Normalize()]
}

// View derives every displayed value from the current snapshot, tracker and prices
func (d *dashboard) View(ctx bCtx.Ctx, rewardCoinType domain.CoinType) farm.View {
	snap := d.resolver.Snapshot()
	v := farm.View{
		Snapshot:         snap,
		RefreshCountdown: d.tracker.Countdown(),
		IsAprLoading:     true,
		Rewards:          []farm.RewardTypeView{},
	}
	if d.engine != nil {
		v.Flags = d.engine.Flags()
	}
	if snap == nil || snap.Farm == nil {
		return v
	}

	rewardType, ok := snap.Farm.RewardType(rewardCoinType)
	if !ok {
		rewardType = rewardCoinType
	}
	v.RewardCoinType = rewardType
	stake := d.price(snap.Farm.StakeCoinType)
	v.Prices.StakeTokenPriceUsd = stake.price

	loading := d.resolver.IsLoading()
	for _, t := range snap.Farm.RewardTypes {
		rv := d.rewardView(snap, t, stake, loading)
		v.Rewards = append(v.Rewards, rv)
		if t.Equals(rewardType) {
			v.PendingRewards = rv.PendingRewards
			v.Apr = rv.Apr
			v.IsAprLoading = rv.IsAprLoading
			v.Prices.RewardTokenPriceUsd = d.price(t).price
		}
	}
	if !ok {
		// unknown reward coin: zero yield, nothing left to load
		v.IsAprLoading = loading
	}
	return v
}

func (d *dashboard) rewardView(snap *farm.Snapshot, rewardType domain.CoinType, stake priceEntry, loading bool) farm.RewardTypeView {
	reward := d.price(rewardType)
	rv := farm.RewardTypeView{
		RewardCoinType: rewardType,
		IsAprLoading:   loading || !stake.done || !reward.done,
		Apr: farm.EstimateAPR(farm.AprInput{
			Farm:                snap.Farm,
			RewardCoinType:      rewardType,
			StakeTokenPriceUsd:  stake.price,
			RewardTokenPriceUsd: reward.price,
		}, d.now()),
	}
	if snap.Account != nil {
		rv.PendingRewards = d.tracker.PendingReward(rewardType)
	}
	return rv
}

func (d *dashboard) Close() {
	d.cancel()
	d.tracker.Stop()
}
