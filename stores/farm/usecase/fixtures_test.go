package usecase

import (
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
)

const (
	testFarmId  = domain.Address("0xfa")
	testWallet  = domain.Address("0xa11ce")
	testAccount = domain.Address("0xacc")
	stakeType   = domain.CoinType("0x2::sui::SUI")
	rewardType  = domain.CoinType("0xbeef::rwd::RWD")
	testPackage = domain.Address("0xc0ffee")
)

var testKey = farm.Key{FarmId: testFarmId, Wallet: testWallet, Connected: true}

func newTestFarm() *farm.FarmDescriptor {
	decimals := int32(9)
	return &farm.FarmDescriptor{
		FarmId:        testFarmId,
		StakeCoinType: stakeType,
		RewardTypes:   []domain.CoinType{rewardType, stakeType},
		RewardData: map[domain.CoinType]farm.RewardSchedule{
			rewardType: {RewardsPerSecond: 1_000_000},
			stakeType:  {RewardsPerSecond: 500_000},
		},
		TotalStakedAmount: 1_000_000_000_000,
		StakeDecimals:     &decimals,
		RewardDecimals:    &decimals,
	}
}

func newTestAccount(balance uint64) *farm.AccountPosition {
	return &farm.AccountPosition{
		ObjectId:     testAccount,
		FarmId:       testFarmId,
		Owner:        testWallet,
		StakeBalance: balance,
	}
}

func newSnapshot(account *farm.AccountPosition) *farm.Snapshot {
	return &farm.Snapshot{
		Key:     testKey,
		Farm:    newTestFarm(),
		Account: account,
	}
}
