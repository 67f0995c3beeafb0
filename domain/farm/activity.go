package farm

import (
	"time"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/domain"
)

type OperationKind string

const (
	OperationStake    OperationKind = "stake"
	OperationHarvest  OperationKind = "harvest"
	OperationUnstake  OperationKind = "unstake"
	OperationCompound OperationKind = "compound"
)

type ActivityStatus string

const (
	ActivitySuccess ActivityStatus = "success"
	ActivityFailed  ActivityStatus = "failed"
)

// Activity is one submitted operation, kept as user facing history
type Activity struct {
	Id             string          `json:"id" bson:"_id"`
	Kind           OperationKind   `json:"kind" bson:"kind"`
	FarmId         domain.Address  `json:"farmId" bson:"farmId"`
	AccountId      domain.Address  `json:"accountId,omitempty" bson:"accountId,omitempty"`
	Wallet         domain.Address  `json:"wallet" bson:"wallet"`
	Amount         string          `json:"amount,omitempty" bson:"amount,omitempty"`
	RewardCoinType domain.CoinType `json:"rewardCoinType,omitempty" bson:"rewardCoinType,omitempty"`
	RewardQuoted   string          `json:"rewardQuoted,omitempty" bson:"rewardQuoted,omitempty"`
	Harvested      bool            `json:"harvested" bson:"harvested"`
	Digest         domain.TxDigest `json:"digest,omitempty" bson:"digest,omitempty"`
	Status         ActivityStatus  `json:"status" bson:"status"`
	Error          string          `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt      time.Time       `json:"createdAt" bson:"createdAt"`
}

type ActivityFindAllOptions struct {
	Wallet *domain.Address
	FarmId *domain.Address
	Kind   *OperationKind
	Offset *int64
	Limit  *int64
}

type ActivityFindAllOptionsFunc func(*ActivityFindAllOptions) error

func GetActivityFindAllOptions(opts ...ActivityFindAllOptionsFunc) (ActivityFindAllOptions, error) {
	res := ActivityFindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func ActivityWithWallet(wallet domain.Address) ActivityFindAllOptionsFunc {
	return func(opts *ActivityFindAllOptions) error {
		w := wallet.ToLower()
		opts.Wallet = &w
		return nil
	}
}

func ActivityWithFarm(farmId domain.Address) ActivityFindAllOptionsFunc {
	return func(opts *ActivityFindAllOptions) error {
		f := farmId.ToLower()
		opts.FarmId = &f
		return nil
	}
}

func ActivityWithKind(kind OperationKind) ActivityFindAllOptionsFunc {
	return func(opts *ActivityFindAllOptions) error {
		opts.Kind = &kind
		return nil
	}
}

func ActivityWithPagination(offset, limit int64) ActivityFindAllOptionsFunc {
	return func(opts *ActivityFindAllOptions) error {
		opts.Offset = &offset
		opts.Limit = &limit
		return nil
	}
}

type ActivityRepo interface {
	Insert(ctx bCtx.Ctx, activity *Activity) error
	FindAll(ctx bCtx.Ctx, opts ...ActivityFindAllOptionsFunc) ([]Activity, error)
	Count(ctx bCtx.Ctx, opts ...ActivityFindAllOptionsFunc) (int, error)
}
