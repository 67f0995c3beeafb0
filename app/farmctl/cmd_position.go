package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
)

var watchInterval time.Duration

// positionCmd prints the derived values of one position
var positionCmd = &cobra.Command{
	Use:   "position",
	Short: "Show stake balance, pending rewards and APR of a wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := positionKey(false)
		if err != nil {
			return err
		}
		return withPositions(cmd, func(ctx bCtx.Ctx, pu farm.PositionUsecase) error {
			v, err := pu.View(ctx, key, domain.CoinType(rewardCoinType))
			if err != nil {
				return err
			}
			return printView(cmd.OutOrStdout(), v)
		})
	},
}

// aprCmd prints the estimated APR of every reward type, no wallet needed
var aprCmd = &cobra.Command{
	Use:   "apr",
	Short: "Show the estimated APR of every reward type of a farm",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := positionKey(false)
		if err != nil {
			return err
		}
		key.Wallet = domain.EmptyAddress
		key.Connected = false
		return withPositions(cmd, func(ctx bCtx.Ctx, pu farm.PositionUsecase) error {
			v, err := pu.View(ctx, key, domain.CoinType(rewardCoinType))
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), v.Rewards)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "REWARD\tAPR")
			for _, r := range v.Rewards {
				fmt.Fprintf(w, "%s\t%s\n", r.RewardCoinType.Symbol(), formatApr(r.Apr, r.IsAprLoading))
			}
			return w.Flush()
		})
	},
}

// watchCmd keeps the session open and prints the view until interrupted
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow pending rewards and the refresh countdown of a position",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := positionKey(true)
		if err != nil {
			return err
		}
		return withPositions(cmd, func(ctx bCtx.Ctx, pu farm.PositionUsecase) error {
			return watch(ctx, cmd.OutOrStdout(), pu, key, watchInterval)
		})
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", time.Second, "print interval")
}

func watch(ctx bCtx.Ctx, out io.Writer, pu farm.PositionUsecase, key farm.Key, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		v, err := pu.View(ctx, key, domain.CoinType(rewardCoinType))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, watchLine(v))

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func watchLine(v *farm.View) string {
	decimals := farm.DefaultDecimals
	if v.Snapshot != nil && v.Snapshot.Farm != nil {
		decimals = v.Snapshot.Farm.RewardUnit()
	}
	return fmt.Sprintf("pending %s %s | apr %s | refresh in %ds",
		farm.FormatAmount(v.PendingRewards, decimals),
		v.RewardCoinType.Symbol(),
		formatApr(v.Apr, v.IsAprLoading),
		v.RefreshCountdown,
	)
}

func formatApr(apr float64, loading bool) string {
	if loading {
		return "loading"
	}
	return fmt.Sprintf("%.2f%%", apr)
}

func printView(out io.Writer, v *farm.View) error {
	if jsonOutput {
		return printJSON(out, v)
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if snap := v.Snapshot; snap != nil && snap.Farm != nil {
		fmt.Fprintf(w, "farm\t%s\n", snap.Farm.FarmId)
		fmt.Fprintf(w, "stake coin\t%s\n", snap.Farm.StakeCoinType)
		fmt.Fprintf(w, "total staked\t%s\n", farm.FormatAmount(snap.Farm.TotalStakedAmount, snap.Farm.StakeUnit()))
		if snap.Account != nil {
			fmt.Fprintf(w, "account\t%s\n", snap.Account.ObjectId)
			fmt.Fprintf(w, "staked\t%s\n", farm.FormatAmount(snap.Account.StakeBalance, snap.Farm.StakeUnit()))
		} else if snap.Key.HasWallet() {
			fmt.Fprintln(w, "account\tnone")
		}
		for _, r := range v.Rewards {
			fmt.Fprintf(w, "reward %s\tpending %s\tapr %s\n",
				r.RewardCoinType.Symbol(),
				farm.FormatAmount(r.PendingRewards, snap.Farm.RewardUnit()),
				formatApr(r.Apr, r.IsAprLoading),
			)
		}
	}
	if v.Prices.StakeTokenPriceUsd != nil {
		fmt.Fprintf(w, "stake price\t$%s\n", v.Prices.StakeTokenPriceUsd.String())
	}
	if v.Prices.RewardTokenPriceUsd != nil {
		fmt.Fprintf(w, "reward price\t$%s\n", v.Prices.RewardTokenPriceUsd.String())
	}
	fmt.Fprintf(w, "refresh in\t%ds\n", v.RefreshCountdown)
	return w.Flush()
}
