package movecall

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
)

var testFarm = &farm.FarmDescriptor{
	FarmId:        "0xfa",
	StakeCoinType: "0x2::sui::SUI",
	RewardTypes:   []domain.CoinType{"0xbeef::rwd::RWD"},
}

func newBuilder(t *testing.T) farm.TransactionBuilder {
	b, err := NewBuilder(&BuilderCfg{PackageId: "0xC0FFEE"})
	require.NoError(t, err)
	return b
}

func TestNewBuilderRequiresPackage(t *testing.T) {
	_, err := NewBuilder(&BuilderCfg{})
	require.ErrorIs(t, err, ErrMissingPackage)
}

func TestCreateAccountThenStake(t *testing.T) {
	req := require.New(t)
	b := newBuilder(t)
	tx := farm.NewTransaction("0xa11ce")

	acc, err := b.CreateAccount(tx, testFarm)
	req.NoError(err)
	req.Equal(farm.Result(0), acc)
	req.NoError(b.Stake(tx, testFarm, acc, farm.DepositAmount(5)))
	tx.TransferObjects([]farm.Argument{acc}, "0xa11ce")

	req.NoError(tx.Validate())
	req.Equal([]farm.Op{farm.OpCreateAccount, farm.OpStake, farm.OpTransferObjects}, tx.Ops())
	req.Equal("0xc0ffee::farm::create_account", tx.Commands[0].Target)
	req.Equal("0xc0ffee::farm::stake", tx.Commands[1].Target)

	stake := tx.Commands[1]
	req.Equal(uint64(5), stake.Amount)
	req.Equal(farm.Result(0), stake.Args[1])
	req.Equal(farm.Argument{Kind: farm.ArgGasCoin, Value: "5"}, stake.Args[2])
}

func TestStakeWithCoin(t *testing.T) {
	req := require.New(t)
	b := newBuilder(t)
	tx := farm.NewTransaction("0xa11ce")

	acc := farm.Object("0xacc")
	coin, err := b.Harvest(tx, testFarm, acc, "")
	req.NoError(err)
	req.NoError(b.Stake(tx, testFarm, acc, farm.DepositCoin(coin)))
	req.NoError(tx.Validate())
	req.Equal(coin, tx.Commands[1].Args[2])
}

func TestStakeRejectsEmptyDeposit(t *testing.T) {
	b := newBuilder(t)
	tx := farm.NewTransaction("0xa11ce")
	err := b.Stake(tx, testFarm, farm.Object("0xacc"), farm.Deposit{})
	require.ErrorIs(t, err, farm.ErrValidation)
	require.Empty(t, tx.Commands)
}

func TestHarvestRewardType(t *testing.T) {
	req := require.New(t)
	b := newBuilder(t)
	tx := farm.NewTransaction("0xa11ce")

	_, err := b.Harvest(tx, testFarm, farm.Object("0xacc"), "0xbeef::rwd::RWD")
	req.NoError(err)
	req.Equal([]domain.CoinType{"0x2::sui::SUI", "0xbeef::rwd::RWD"}, tx.Commands[0].TypeArgs)

	_, err = b.Harvest(tx, testFarm, farm.Object("0xacc"), "0xdead::x::X")
	req.ErrorIs(err, farm.ErrUnknownRewardType)
	req.Len(tx.Commands, 1)
}

func TestUnstake(t *testing.T) {
	req := require.New(t)
	b := newBuilder(t)
	tx := farm.NewTransaction("0xa11ce")

	coin, err := b.Unstake(tx, testFarm, farm.Object("0xacc"), 42)
	req.NoError(err)
	req.Equal(farm.Result(0), coin)
	req.Equal(farm.Pure("42"), tx.Commands[0].Args[2])

	_, err = b.Unstake(tx, testFarm, farm.Object("0xacc"), 0)
	req.ErrorIs(err, farm.ErrValidation)
}

func TestMissingFarm(t *testing.T) {
	b := newBuilder(t)
	_, err := b.CreateAccount(farm.NewTransaction("0xa11ce"), nil)
	require.ErrorIs(t, err, farm.ErrValidation)
}
