package farm

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/domain"
)

// DefaultDecimals is the number of display decimals of a coin when the indexer does not report it
const DefaultDecimals = int32(9)

type RewardSchedule struct {
	RewardsPerSecond uint64 `json:"rewardsPerSecond" bson:"rewardsPerSecond"`
	// End is an epoch timestamp in seconds or milliseconds, nil when the schedule never ends
	End *int64 `json:"end,omitempty" bson:"end,omitempty"`
}

type FarmDescriptor struct {
	FarmId            domain.Address                     `json:"farmId" bson:"farmId"`
	StakeCoinType     domain.CoinType                    `json:"stakeCoinType" bson:"stakeCoinType"`
	RewardTypes       []domain.CoinType                  `json:"rewardTypes" bson:"rewardTypes"`
	RewardData        map[domain.CoinType]RewardSchedule `json:"rewardData" bson:"rewardData"`
	TotalStakedAmount uint64                             `json:"totalStakedAmount" bson:"totalStakedAmount"`
	// nil when the indexer does not report it, 0 is a valid value
	StakeDecimals  *int32 `json:"stakeDecimals,omitempty" bson:"stakeDecimals,omitempty"`
	RewardDecimals *int32 `json:"rewardDecimals,omitempty" bson:"rewardDecimals,omitempty"`
}

// DefaultRewardType is the reward coin used when a caller does not name one
func (f *FarmDescriptor) DefaultRewardType() (domain.CoinType, bool) {
	if f == nil || len(f.RewardTypes) == 0 {
		return "", false
	}
	return f.RewardTypes[0], true
}

// RewardType resolves the reward coin a caller asked for, falling back to DefaultRewardType
func (f *FarmDescriptor) RewardType(requested domain.CoinType) (domain.CoinType, bool) {
	if requested.IsEmpty() {
		return f.DefaultRewardType()
	}
	if f == nil {
		return "", false
	}
	for _, t := range f.RewardTypes {
		if t.Equals(requested) {
			return t, true
		}
	}
	return "", false
}

// Schedule returns the reward schedule of coinType, nil when the farm has none
func (f *FarmDescriptor) Schedule(coinType domain.CoinType) *RewardSchedule {
	if f == nil || coinType.IsEmpty() {
		return nil
	}
	if s, ok := f.RewardData[coinType]; ok {
		return &s
	}
	for t, s := range f.RewardData {
		if t.Equals(coinType) {
			s := s
			return &s
		}
	}
	return nil
}

func (f *FarmDescriptor) StakeUnit() int32 {
	if f == nil {
		return DefaultDecimals
	}
	return decimalsOr(f.StakeDecimals)
}

func (f *FarmDescriptor) RewardUnit() int32 {
	if f == nil {
		return DefaultDecimals
	}
	return decimalsOr(f.RewardDecimals)
}

func decimalsOr(d *int32) int32 {
	if d == nil || *d < 0 {
		return DefaultDecimals
	}
	return *d
}

// AccountPosition is the per-wallet farm account object
type AccountPosition struct {
	ObjectId     domain.Address `json:"objectId" bson:"objectId"`
	FarmId       domain.Address `json:"farmId" bson:"farmId"`
	Owner        domain.Address `json:"owner" bson:"owner"`
	StakeBalance uint64         `json:"stakeBalance" bson:"stakeBalance"`
}

type PendingReward struct {
	RewardCoinType domain.CoinType `json:"rewardCoinType"`
	Amount         uint64          `json:"amount"`
}

// FindPending picks the amount of coinType from a reward query result
func FindPending(rewards []PendingReward, coinType domain.CoinType) uint64 {
	for _, r := range rewards {
		if r.RewardCoinType.Equals(coinType) {
			return r.Amount
		}
	}
	return 0
}

type OperationFlags struct {
	IsStaking     bool `json:"isStaking"`
	IsHarvesting  bool `json:"isHarvesting"`
	IsUnstaking   bool `json:"isUnstaking"`
	IsCompounding bool `json:"isCompounding"`
}

// PriceQuote holds usd prices per display unit, nil means not loaded yet
type PriceQuote struct {
	StakeTokenPriceUsd  *decimal.Decimal `json:"stakeTokenPriceUsd"`
	RewardTokenPriceUsd *decimal.Decimal `json:"rewardTokenPriceUsd"`
}

// Key identifies what a resolver resolves; any change triggers a full re-resolution
type Key struct {
	FarmId    domain.Address `json:"farmId"`
	Wallet    domain.Address `json:"wallet"`
	Connected bool           `json:"connected"`
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%t", k.FarmId.ToLowerStr(), k.Wallet.ToLowerStr(), k.Connected)
}

// HasWallet reports whether account lookups and mutations are possible
func (k Key) HasWallet() bool {
	return k.Connected && !k.Wallet.IsEmpty()
}

type Snapshot struct {
	Key        Key              `json:"key"`
	Farm       *FarmDescriptor  `json:"farm"`
	Account    *AccountPosition `json:"account,omitempty"`
	ResolvedAt time.Time        `json:"resolvedAt"`
}

func (s *Snapshot) AccountId() (domain.Address, bool) {
	if s == nil || s.Account == nil {
		return domain.EmptyAddress, false
	}
	return s.Account.ObjectId, true
}

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type ExecutionResult struct {
	Digest domain.TxDigest `json:"digest"`
	Status string          `json:"status"`
}

// View is the set of derived values shown next to a position
type View struct {
	Snapshot         *Snapshot        `json:"snapshot"`
	RewardCoinType   domain.CoinType  `json:"rewardCoinType"`
	PendingRewards   uint64           `json:"pendingRewards"`
	RefreshCountdown int              `json:"refreshCountdown"`
	Apr              float64          `json:"apr"`
	IsAprLoading     bool             `json:"isAprLoading"`
	Prices           PriceQuote       `json:"prices"`
	Rewards          []RewardTypeView `json:"rewards"`
	Flags            OperationFlags   `json:"flags"`
}

type RewardTypeView struct {
	RewardCoinType domain.CoinType `json:"rewardCoinType"`
	PendingRewards uint64          `json:"pendingRewards"`
	Apr            float64         `json:"apr"`
	IsAprLoading   bool            `json:"isAprLoading"`
}

// AccountDirectory lists the farm accounts owned by a wallet
type AccountDirectory interface {
	OwnedAccounts(ctx bCtx.Ctx, owner domain.Address) ([]AccountPosition, error)
}

type FarmRegistry interface {
	GetFarm(ctx bCtx.Ctx, farmId domain.Address) (*FarmDescriptor, error)
}

type RewardQuery interface {
	PendingRewards(ctx bCtx.Ctx, accountId domain.Address) ([]PendingReward, error)
}

// PriceOracle returns the usd price of one display unit; ErrNoPriceFeed means unset
type PriceOracle interface {
	GetPriceUSD(ctx bCtx.Ctx, coinType domain.CoinType) (decimal.Decimal, error)
}

// TransactionBuilder appends farm calls to tx and returns references to the objects they produce
type TransactionBuilder interface {
	CreateAccount(tx *Transaction, farm *FarmDescriptor) (Argument, error)
	Stake(tx *Transaction, farm *FarmDescriptor, account Argument, deposit Deposit) error
	Harvest(tx *Transaction, farm *FarmDescriptor, account Argument, rewardCoinType domain.CoinType) (Argument, error)
	Unstake(tx *Transaction, farm *FarmDescriptor, account Argument, amount uint64) (Argument, error)
}

type TransactionExecutor interface {
	Execute(ctx bCtx.Ctx, tx *Transaction) (*ExecutionResult, error)
}

type NotificationSink interface {
	Notify(ctx bCtx.Ctx, message string, severity Severity)
}

// Resolver keeps the latest snapshot of a farm and the wallet's account in it.
// Resolve may share a fetch already in flight for the same key; Refetch always
// starts a new one, so its result reflects every write that landed before the call.
type Resolver interface {
	Resolve(ctx bCtx.Ctx, key Key) (*Snapshot, error)
	Refetch(ctx bCtx.Ctx, key Key) (*Snapshot, error)
	Snapshot() *Snapshot
	IsLoading() bool
}

// RewardTracker polls pending rewards of one account and drives the cosmetic countdown
type RewardTracker interface {
	Bind(ctx bCtx.Ctx, accountId domain.Address, rewardCoinType domain.CoinType)
	Stop()
	PendingReward(coinType domain.CoinType) uint64
	PendingRewards() map[domain.CoinType]uint64
	Countdown() int
}

// Engine is the set of user actions on a position
type Engine interface {
	Stake(ctx bCtx.Ctx, amount string) error
	Harvest(ctx bCtx.Ctx, rewardCoinType domain.CoinType) error
	Unstake(ctx bCtx.Ctx, amount string, rewardCoinType domain.CoinType) error
	Compound(ctx bCtx.Ctx, rewardCoinType domain.CoinType) error
	Flags() OperationFlags
}

// Dashboard derives the read-only values of a position
type Dashboard interface {
	Refresh(ctx bCtx.Ctx, key Key) error
	// Reload is Refresh backed by Resolver.Refetch, used after a successful operation
	Reload(ctx bCtx.Ctx, key Key) error
	View(ctx bCtx.Ctx, rewardCoinType domain.CoinType) View
	Close()
}

// PositionUsecase serves positions to the api and the cli, keeping one live session per key
type PositionUsecase interface {
	View(ctx bCtx.Ctx, key Key, rewardCoinType domain.CoinType) (*View, error)
	Stake(ctx bCtx.Ctx, key Key, amount string) error
	Harvest(ctx bCtx.Ctx, key Key, rewardCoinType domain.CoinType) error
	Unstake(ctx bCtx.Ctx, key Key, amount string, rewardCoinType domain.CoinType) error
	Compound(ctx bCtx.Ctx, key Key, rewardCoinType domain.CoinType) error
	Activities(ctx bCtx.Ctx, opts ...ActivityFindAllOptionsFunc) ([]Activity, int, error)
	Close()
}
