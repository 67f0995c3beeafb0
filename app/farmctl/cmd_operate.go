package main

import (
	"fmt"

	"github.com/spf13/cobra"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
	"github.com/x-xyz/yieldfarm/service/notify"
)

var stakeCmd = &cobra.Command{
	Use:   "stake <amount>",
	Short: "Stake an amount of the farm's stake coin, creating the account when needed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return operate(cmd, func(ctx bCtx.Ctx, pu farm.PositionUsecase, key farm.Key) error {
			return pu.Stake(ctx, key, args[0])
		})
	},
}

var unstakeCmd = &cobra.Command{
	Use:   "unstake <amount>",
	Short: "Unstake an amount of the stake coin",
	Long: `Unstake an amount of the stake coin. When the amount is the whole balance and
--reward has pending rewards, they are harvested in the same transaction.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return operate(cmd, func(ctx bCtx.Ctx, pu farm.PositionUsecase, key farm.Key) error {
			return pu.Unstake(ctx, key, args[0], domain.CoinType(rewardCoinType))
		})
	},
}

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Claim the pending rewards of --reward",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return operate(cmd, func(ctx bCtx.Ctx, pu farm.PositionUsecase, key farm.Key) error {
			return pu.Harvest(ctx, key, domain.CoinType(rewardCoinType))
		})
	},
}

var compoundCmd = &cobra.Command{
	Use:   "compound",
	Short: "Harvest and restake the rewards when the reward coin is the stake coin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return operate(cmd, func(ctx bCtx.Ctx, pu farm.PositionUsecase, key farm.Key) error {
			return pu.Compound(ctx, key, domain.CoinType(rewardCoinType))
		})
	},
}

// operate runs op on the wallet's position and prints every notice it raised
func operate(cmd *cobra.Command, op func(ctx bCtx.Ctx, pu farm.PositionUsecase, key farm.Key) error) error {
	key, err := positionKey(true)
	if err != nil {
		return err
	}
	return withPositions(cmd, func(ctx bCtx.Ctx, pu farm.PositionUsecase) error {
		collector := &notify.Collector{}
		ctx = notify.WithCollector(ctx, collector)
		opErr := op(ctx, pu, key)
		notices := collector.Drain()
		if jsonOutput {
			if err := printJSON(cmd.OutOrStdout(), notices); err != nil {
				return err
			}
		} else {
			for _, n := range notices {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", n.Severity, n.Message)
			}
		}
		return opErr
	})
}
