package usecase

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/base/keylock"
	"github.com/x-xyz/yieldfarm/base/log"
	"github.com/x-xyz/yieldfarm/base/metrics"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
	"github.com/x-xyz/yieldfarm/domain/keys"
)

const (
	tplStaked             = "Staked %s %s"
	tplHarvested          = "Harvested %s %s"
	tplUnstaked           = "Unstaked %s %s"
	tplUnstakedHarvested  = "Unstaked %s %s and harvested %s %s"
	tplHarvestedRestaked  = "Harvested and restaked %s %s"
	tplOperationFailed    = "Failed to %s"
	reasonNotPositive     = "must be a positive number"
	reasonExceedsBalance  = "exceeds the staked balance"
	reasonUnknownReward   = "is not rewarded by this farm"
	fieldAmount           = "amount"
	fieldRewardCoinType   = "rewardCoinType"
	lockPfxNewAccount     = "farm"
	activityInsertTimeout = 5 * time.Second
)

type EngineCfg struct {
	// Key is the position the engine acts on
	Key       farm.Key
	Resolver  farm.Resolver
	Rewards   farm.RewardQuery
	Builder   farm.TransactionBuilder
	Executor  farm.TransactionExecutor
	Notifier  farm.NotificationSink
	Locker    keylock.Locker
	Activity  farm.ActivityRepo
	Metrics   metrics.Service
	OnSuccess func(ctx bCtx.Ctx)
}

type engine struct {
	key       farm.Key
	resolver  farm.Resolver
	rewards   farm.RewardQuery
	composer  *Composer
	executor  farm.TransactionExecutor
	notifier  farm.NotificationSink
	locker    keylock.Locker
	activity  farm.ActivityRepo
	met       metrics.Service
	onSuccess func(ctx bCtx.Ctx)

	staking     int32
	harvesting  int32
	unstaking   int32
	compounding int32
}

// NewEngine returns the operations of one position. The locker should be shared
// by every engine of a process (or cluster) so operations on one account never overlap.
func NewEngine(cfg *EngineCfg) farm.Engine {
	e := &engine{
		key:       cfg.Key,
		resolver:  cfg.Resolver,
		rewards:   cfg.Rewards,
		composer:  NewComposer(cfg.Builder),
		executor:  cfg.Executor,
		notifier:  cfg.Notifier,
		locker:    cfg.Locker,
		activity:  cfg.Activity,
		met:       cfg.Metrics,
		onSuccess: cfg.OnSuccess,
	}
	if e.locker == nil {
		e.locker = keylock.New()
	}
	if e.met == nil {
		e.met = metrics.New("farm_engine")
	}
	if e.onSuccess == nil {
		e.onSuccess = e.reresolve
	}
	return e
}

func (e *engine) Flags() farm.OperationFlags {
	return farm.OperationFlags{
		IsStaking:     atomic.LoadInt32(&e.staking) == 1,
		IsHarvesting:  atomic.LoadInt32(&e.harvesting) == 1,
		IsUnstaking:   atomic.LoadInt32(&e.unstaking) == 1,
		IsCompounding: atomic.LoadInt32(&e.compounding) == 1,
	}
}

// operation is one guarded compose and execute round
type operation struct {
	kind       farm.OperationKind
	flag       *int32
	amount     uint64
	rewardType domain.CoinType
	// readRewards queries pending rewards of rewardType before composing
	readRewards bool
	compose     func(snap *farm.Snapshot, pending uint64) (*farm.Transaction, string, error)
}

func (e *engine) Stake(ctx bCtx.Ctx, amountStr string) error {
	ctx = e.withKey(ctx, farm.OperationStake)
	f := e.currentFarm()
	amount := farm.ParseAmount(amountStr, f.StakeUnit())
	if amount == 0 {
		return e.reject(ctx, &farm.ValidationError{Field: fieldAmount, Reason: reasonNotPositive})
	}
	snap, err := e.precheck(ctx, false)
	if err != nil {
		return err
	}
	f = snap.Farm
	return e.run(ctx, snap, operation{
		kind:   farm.OperationStake,
		flag:   &e.staking,
		amount: amount,
		compose: func(snap *farm.Snapshot, _ uint64) (*farm.Transaction, string, error) {
			tx, err := e.composer.ComposeStake(snap, e.key.Wallet, amount)
			msg := fmt.Sprintf(tplStaked, farm.FormatAmount(amount, f.StakeUnit()), f.StakeCoinType.Symbol())
			return tx, msg, err
		},
	})
}

func (e *engine) Harvest(ctx bCtx.Ctx, rewardCoinType domain.CoinType) error {
	ctx = e.withKey(ctx, farm.OperationHarvest)
	snap, err := e.precheck(ctx, true)
	if err != nil {
		return err
	}
	rewardType, err := e.rewardType(ctx, snap, rewardCoinType)
	if err != nil {
		return err
	}
	f := snap.Farm
	return e.run(ctx, snap, operation{
		kind:        farm.OperationHarvest,
		flag:        &e.harvesting,
		rewardType:  rewardType,
		readRewards: true,
		compose: func(snap *farm.Snapshot, pending uint64) (*farm.Transaction, string, error) {
			tx, err := e.composer.ComposeHarvest(snap, e.key.Wallet, rewardType)
			msg := fmt.Sprintf(tplHarvested, farm.FormatAmount(pending, f.RewardUnit()), rewardType.Symbol())
			return tx, msg, err
		},
	})
}

func (e *engine) Unstake(ctx bCtx.Ctx, amountStr string, rewardCoinType domain.CoinType) error {
	ctx = e.withKey(ctx, farm.OperationUnstake)
	f := e.currentFarm()
	amount := farm.ParseAmount(amountStr, f.StakeUnit())
	if amount == 0 {
		return e.reject(ctx, &farm.ValidationError{Field: fieldAmount, Reason: reasonNotPositive})
	}
	snap, err := e.precheck(ctx, true)
	if err != nil {
		return err
	}
	if amount > snap.Account.StakeBalance {
		return e.reject(ctx, &farm.ValidationError{Field: fieldAmount, Reason: reasonExceedsBalance})
	}
	rewardType, err := e.rewardType(ctx, snap, rewardCoinType)
	if err != nil {
		return err
	}
	f = snap.Farm
	return e.run(ctx, snap, operation{
		kind:        farm.OperationUnstake,
		flag:        &e.unstaking,
		amount:      amount,
		rewardType:  rewardType,
		readRewards: true,
		compose: func(snap *farm.Snapshot, pending uint64) (*farm.Transaction, string, error) {
			hasRewards := pending > 0
			tx, err := e.composer.ComposeUnstake(snap, e.key.Wallet, amount, rewardType, hasRewards)
			unstaked := farm.FormatAmount(amount, f.StakeUnit())
			if hasRewards && amount == snap.Account.StakeBalance {
				return tx, fmt.Sprintf(tplUnstakedHarvested, unstaked, f.StakeCoinType.Symbol(), farm.FormatAmount(pending, f.RewardUnit()), rewardType.Symbol()), err
			}
			return tx, fmt.Sprintf(tplUnstaked, unstaked, f.StakeCoinType.Symbol()), err
		},
	})
}

func (e *engine) Compound(ctx bCtx.Ctx, rewardCoinType domain.CoinType) error {
	cctx := e.withKey(ctx, farm.OperationCompound)
	snap, err := e.precheck(cctx, true)
	if err != nil {
		return err
	}
	rewardType, err := e.rewardType(cctx, snap, rewardCoinType)
	if err != nil {
		return err
	}
	f := snap.Farm
	if !IsRestakable(f, rewardType) {
		// the reward cannot enter a pool of another coin
		return e.Harvest(ctx, rewardType)
	}
	return e.run(cctx, snap, operation{
		kind:        farm.OperationCompound,
		flag:        &e.compounding,
		rewardType:  rewardType,
		readRewards: true,
		compose: func(snap *farm.Snapshot, pending uint64) (*farm.Transaction, string, error) {
			tx, err := e.composer.ComposeCompound(snap, e.key.Wallet, rewardType)
			msg := fmt.Sprintf(tplHarvestedRestaked, farm.FormatAmount(pending, f.RewardUnit()), rewardType.Symbol())
			return tx, msg, err
		},
	})
}

func (e *engine) withKey(ctx bCtx.Ctx, kind farm.OperationKind) bCtx.Ctx {
	return bCtx.WithValues(ctx, map[string]interface{}{
		"farmId":    e.key.FarmId.String(),
		"wallet":    e.key.Wallet.String(),
		"operation": string(kind),
	})
}

func (e *engine) currentFarm() *farm.FarmDescriptor {
	if snap := e.resolver.Snapshot(); snap != nil {
		return snap.Farm
	}
	return nil
}

// precheck returns the snapshot of the engine's key, or a precondition error already reported to the user
func (e *engine) precheck(ctx bCtx.Ctx, needAccount bool) (*farm.Snapshot, error) {
	if !e.key.HasWallet() {
		return nil, e.reject(ctx, farm.ErrWalletNotConnected)
	}
	snap := e.resolver.Snapshot()
	if snap == nil || snap.Farm == nil || snap.Key.String() != e.key.String() {
		return nil, e.reject(ctx, farm.ErrFarmNotLoaded)
	}
	if needAccount && snap.Account == nil {
		return nil, e.reject(ctx, farm.ErrNoAccount)
	}
	return snap, nil
}

func (e *engine) rewardType(ctx bCtx.Ctx, snap *farm.Snapshot, requested domain.CoinType) (domain.CoinType, error) {
	rewardType, ok := snap.Farm.RewardType(requested)
	if !ok {
		return "", e.reject(ctx, &farm.ValidationError{Field: fieldRewardCoinType, Reason: reasonUnknownReward})
	}
	return rewardType, nil
}

// reject reports err to the user without touching the network
func (e *engine) reject(ctx bCtx.Ctx, err error) error {
	ctx.WithField("reason", err).Info("operation rejected")
	e.notifier.Notify(ctx, err.Error(), farm.SeverityWarning)
	return err
}

func lockKey(snap *farm.Snapshot) string {
	if accountId, ok := snap.AccountId(); ok {
		return accountId.ToLowerStr()
	}
	return keys.RedisKey(lockPfxNewAccount, snap.Key.FarmId.ToLowerStr(), snap.Key.Wallet.ToLowerStr())
}

func (e *engine) run(ctx bCtx.Ctx, snap *farm.Snapshot, op operation) error {
	if !atomic.CompareAndSwapInt32(op.flag, 0, 1) {
		return e.reject(ctx, farm.ErrOperationInProgress)
	}
	defer atomic.StoreInt32(op.flag, 0)

	unlock, err := e.locker.TryLock(ctx, lockKey(snap))
	if errors.Is(err, keylock.ErrLocked) {
		return e.reject(ctx, farm.ErrOperationInProgress)
	} else if err != nil {
		ctx.WithField("err", err).Error("locker.TryLock failed")
		return e.fail(ctx, snap, op, 0, nil, &farm.NetworkError{Op: "locker.TryLock", Err: err})
	}
	defer unlock()
	defer e.met.BumpTime("operation.time", "kind", string(op.kind)).End()

	var pending uint64
	if op.readRewards {
		rewards, err := e.rewards.PendingRewards(ctx, snap.Account.ObjectId)
		if err != nil {
			ctx.WithField("err", err).Error("rewards.PendingRewards failed")
			return e.fail(ctx, snap, op, 0, nil, &farm.NetworkError{Op: "rewards.PendingRewards", Err: err})
		}
		// advisory: the harvest call decides the real amount when it lands
		pending = farm.FindPending(rewards, op.rewardType)
	}

	tx, msg, err := op.compose(snap, pending)
	if err != nil {
		ctx.WithField("err", err).Error("compose failed")
		return e.fail(ctx, snap, op, pending, nil, &farm.NetworkError{Op: "compose", Err: err})
	}

	res, err := e.executor.Execute(ctx, tx)
	if err != nil {
		ctx.WithFields(log.Fields{
			"ops": tx.Ops(),
			"err": err,
		}).Error("executor.Execute failed")
		return e.fail(ctx, snap, op, pending, res, &farm.NetworkError{Op: "executor.Execute", Err: err})
	}

	ctx.WithFields(log.Fields{
		"digest": res.Digest,
		"ops":    tx.Ops(),
	}).Info("operation executed")
	e.met.BumpSum("operation.success", 1, "kind", string(op.kind))
	e.record(ctx, snap, op, pending, res, hasHarvest(tx), nil)
	e.onSuccess(ctx)
	e.notifier.Notify(ctx, msg, farm.SeveritySuccess)
	return nil
}

// fail reports a scoped failure notice; nothing is patched locally
func (e *engine) fail(ctx bCtx.Ctx, snap *farm.Snapshot, op operation, pending uint64, res *farm.ExecutionResult, err error) error {
	e.met.BumpSum("operation.err", 1, "kind", string(op.kind))
	e.notifier.Notify(ctx, fmt.Sprintf(tplOperationFailed, op.kind), farm.SeverityError)
	e.record(ctx, snap, op, pending, res, false, err)
	return err
}

func hasHarvest(tx *farm.Transaction) bool {
	for _, o := range tx.Ops() {
		if o == farm.OpHarvest {
			return true
		}
	}
	return false
}

func (e *engine) record(ctx bCtx.Ctx, snap *farm.Snapshot, op operation, pending uint64, res *farm.ExecutionResult, harvested bool, opErr error) {
	if e.activity == nil {
		return
	}
	a := &farm.Activity{
		Id:             uuid.NewString(),
		Kind:           op.kind,
		FarmId:         snap.Key.FarmId.ToLower(),
		Wallet:         e.key.Wallet.ToLower(),
		RewardCoinType: op.rewardType,
		Harvested:      harvested,
		Status:         farm.ActivitySuccess,
		CreatedAt:      time.Now(),
	}
	if accountId, ok := snap.AccountId(); ok {
		a.AccountId = accountId.ToLower()
	}
	if op.amount > 0 {
		a.Amount = farm.FormatAmount(op.amount, snap.Farm.StakeUnit())
	}
	if op.readRewards {
		a.RewardQuoted = farm.FormatAmount(pending, snap.Farm.RewardUnit())
	}
	if res != nil {
		a.Digest = res.Digest
	}
	if opErr != nil {
		a.Status = farm.ActivityFailed
		a.Error = opErr.Error()
	}

	// detached from ctx, the request may already be gone
	c, cancel := bCtx.WithTimeout(bCtx.Background(), activityInsertTimeout)
	defer cancel()
	if err := e.activity.Insert(c, a); err != nil {
		ctx.WithFields(log.Fields{
			"activity": a.Id,
			"err":      err,
		}).Error("activity.Insert failed")
	}
}

// reresolve refetches everything after a successful operation
func (e *engine) reresolve(ctx bCtx.Ctx) {
	if _, err := e.resolver.Refetch(ctx, e.key); err != nil {
		ctx.WithField("err", err).Warn("resolver.Refetch after success failed")
	}
}
