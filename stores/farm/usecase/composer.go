package usecase

import (
	"golang.org/x/xerrors"

	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
)

// Composer turns one user action on a resolved position into a single transaction
type Composer struct {
	builder farm.TransactionBuilder
}

func NewComposer(builder farm.TransactionBuilder) *Composer {
	return &Composer{builder: builder}
}

func requireFarm(snap *farm.Snapshot) (*farm.FarmDescriptor, error) {
	if snap == nil || snap.Farm == nil {
		return nil, farm.ErrFarmNotLoaded
	}
	return snap.Farm, nil
}

func requireAccount(snap *farm.Snapshot) (*farm.FarmDescriptor, *farm.AccountPosition, error) {
	f, err := requireFarm(snap)
	if err != nil {
		return nil, nil, err
	}
	if snap.Account == nil {
		return nil, nil, farm.ErrNoAccount
	}
	return f, snap.Account, nil
}

func finish(tx *farm.Transaction) (*farm.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return tx, nil
}

// ComposeStake deposits amount. Without an account the account is created,
// funded and handed to the signer in the same transaction.
func (c *Composer) ComposeStake(snap *farm.Snapshot, signer domain.Address, amount uint64) (*farm.Transaction, error) {
	f, err := requireFarm(snap)
	if err != nil {
		return nil, err
	}
	tx := farm.NewTransaction(signer)
	if snap.Account != nil {
		if err := c.builder.Stake(tx, f, farm.Object(snap.Account.ObjectId), farm.DepositAmount(amount)); err != nil {
			return nil, xerrors.Errorf("stake: %w", err)
		}
		return finish(tx)
	}

	account, err := c.builder.CreateAccount(tx, f)
	if err != nil {
		return nil, xerrors.Errorf("createAccount: %w", err)
	}
	if err := c.builder.Stake(tx, f, account, farm.DepositAmount(amount)); err != nil {
		return nil, xerrors.Errorf("stake: %w", err)
	}
	tx.TransferObjects([]farm.Argument{account}, signer)
	return finish(tx)
}

// ComposeHarvest claims rewardCoinType and sends the coin to the signer
func (c *Composer) ComposeHarvest(snap *farm.Snapshot, signer domain.Address, rewardCoinType domain.CoinType) (*farm.Transaction, error) {
	f, account, err := requireAccount(snap)
	if err != nil {
		return nil, err
	}
	tx := farm.NewTransaction(signer)
	if err := c.harvestTo(tx, f, account, rewardCoinType, signer); err != nil {
		return nil, err
	}
	return finish(tx)
}

func (c *Composer) harvestTo(tx *farm.Transaction, f *farm.FarmDescriptor, account *farm.AccountPosition, rewardCoinType domain.CoinType, signer domain.Address) error {
	reward, err := c.builder.Harvest(tx, f, farm.Object(account.ObjectId), rewardCoinType)
	if err != nil {
		return xerrors.Errorf("harvest: %w", err)
	}
	tx.TransferObjects([]farm.Argument{reward}, signer)
	return nil
}

// ComposeUnstake withdraws amount. A full withdrawal with pending rewards harvests first,
// the two calls only share the signature.
func (c *Composer) ComposeUnstake(snap *farm.Snapshot, signer domain.Address, amount uint64, rewardCoinType domain.CoinType, hasRewards bool) (*farm.Transaction, error) {
	f, account, err := requireAccount(snap)
	if err != nil {
		return nil, err
	}
	tx := farm.NewTransaction(signer)
	if hasRewards && amount == account.StakeBalance {
		if err := c.harvestTo(tx, f, account, rewardCoinType, signer); err != nil {
			return nil, err
		}
	}
	coin, err := c.builder.Unstake(tx, f, farm.Object(account.ObjectId), amount)
	if err != nil {
		return nil, xerrors.Errorf("unstake: %w", err)
	}
	tx.TransferObjects([]farm.Argument{coin}, signer)
	return finish(tx)
}

// ComposeCompound restakes the harvested coin directly. When the reward is not
// the stake coin it is a plain harvest.
func (c *Composer) ComposeCompound(snap *farm.Snapshot, signer domain.Address, rewardCoinType domain.CoinType) (*farm.Transaction, error) {
	f, account, err := requireAccount(snap)
	if err != nil {
		return nil, err
	}
	if !IsRestakable(f, rewardCoinType) {
		return c.ComposeHarvest(snap, signer, rewardCoinType)
	}
	tx := farm.NewTransaction(signer)
	accountArg := farm.Object(account.ObjectId)
	reward, err := c.builder.Harvest(tx, f, accountArg, rewardCoinType)
	if err != nil {
		return nil, xerrors.Errorf("harvest: %w", err)
	}
	if err := c.builder.Stake(tx, f, accountArg, farm.DepositCoin(reward)); err != nil {
		return nil, xerrors.Errorf("stake: %w", err)
	}
	return finish(tx)
}

// IsRestakable reports whether rewards of rewardCoinType can be deposited back into f
func IsRestakable(f *farm.FarmDescriptor, rewardCoinType domain.CoinType) bool {
	rewardType, ok := f.RewardType(rewardCoinType)
	return ok && rewardType.Equals(f.StakeCoinType)
}
