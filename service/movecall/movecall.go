package movecall

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/xerrors"

	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
)

const (
	defaultModule = "farm"
	// ClockObjectId is the shared on-chain clock read by reward accrual
	ClockObjectId = domain.Address("0x6")
)

var ErrMissingPackage = errors.New("farm package id is not configured")

type BuilderCfg struct {
	PackageId domain.Address
	Module    string
}

type builder struct {
	packageId domain.Address
	module    string
}

// NewBuilder returns a TransactionBuilder emitting move calls into the farm package
func NewBuilder(cfg *BuilderCfg) (farm.TransactionBuilder, error) {
	if cfg.PackageId.IsEmpty() {
		return nil, ErrMissingPackage
	}
	module := cfg.Module
	if module == "" {
		module = defaultModule
	}
	return &builder{
		packageId: cfg.PackageId,
		module:    module,
	}, nil
}

func (b *builder) target(fn string) string {
	return fmt.Sprintf("%s::%s::%s", b.packageId.ToLowerStr(), b.module, fn)
}

func checkFarm(f *farm.FarmDescriptor) error {
	if f == nil || f.FarmId.IsEmpty() {
		return &farm.ValidationError{Field: "farm", Reason: "missing farm descriptor"}
	}
	return nil
}

func (b *builder) CreateAccount(tx *farm.Transaction, f *farm.FarmDescriptor) (farm.Argument, error) {
	if err := checkFarm(f); err != nil {
		return farm.Argument{}, err
	}
	return tx.Add(farm.Command{
		Op:       farm.OpCreateAccount,
		Target:   b.target("create_account"),
		TypeArgs: []domain.CoinType{f.StakeCoinType},
		Args:     []farm.Argument{farm.Object(f.FarmId)},
	}), nil
}

func (b *builder) Stake(tx *farm.Transaction, f *farm.FarmDescriptor, account farm.Argument, deposit farm.Deposit) error {
	if err := checkFarm(f); err != nil {
		return err
	}
	var coin farm.Argument
	switch {
	case deposit.Coin != nil:
		coin = *deposit.Coin
	case deposit.Amount > 0:
		// split from the sender's coins by the executor
		coin = farm.Argument{Kind: farm.ArgGasCoin, Value: strconv.FormatUint(deposit.Amount, 10)}
	default:
		return &farm.ValidationError{Field: "amount", Reason: "deposit must be positive"}
	}
	tx.Add(farm.Command{
		Op:       farm.OpStake,
		Target:   b.target("stake"),
		TypeArgs: []domain.CoinType{f.StakeCoinType},
		Args:     []farm.Argument{farm.Object(f.FarmId), account, coin, farm.Object(ClockObjectId)},
		Amount:   deposit.Amount,
	})
	return nil
}

func (b *builder) Harvest(tx *farm.Transaction, f *farm.FarmDescriptor, account farm.Argument, rewardCoinType domain.CoinType) (farm.Argument, error) {
	if err := checkFarm(f); err != nil {
		return farm.Argument{}, err
	}
	rewardType, ok := f.RewardType(rewardCoinType)
	if !ok {
		return farm.Argument{}, xerrors.Errorf("%s: %w", rewardCoinType, farm.ErrUnknownRewardType)
	}
	return tx.Add(farm.Command{
		Op:       farm.OpHarvest,
		Target:   b.target("harvest"),
		TypeArgs: []domain.CoinType{f.StakeCoinType, rewardType},
		Args:     []farm.Argument{farm.Object(f.FarmId), account, farm.Object(ClockObjectId)},
	}), nil
}

func (b *builder) Unstake(tx *farm.Transaction, f *farm.FarmDescriptor, account farm.Argument, amount uint64) (farm.Argument, error) {
	if err := checkFarm(f); err != nil {
		return farm.Argument{}, err
	}
	if amount == 0 {
		return farm.Argument{}, &farm.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	return tx.Add(farm.Command{
		Op:       farm.OpUnstake,
		Target:   b.target("unstake"),
		TypeArgs: []domain.CoinType{f.StakeCoinType},
		Args:     []farm.Argument{farm.Object(f.FarmId), account, farm.Pure(strconv.FormatUint(amount, 10)), farm.Object(ClockObjectId)},
		Amount:   amount,
	}), nil
}
