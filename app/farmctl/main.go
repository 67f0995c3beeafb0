package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"github.com/x-xyz/yieldfarm/app/bootstrap"
	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/base/log"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
	"github.com/x-xyz/yieldfarm/service/notify"
)

var (
	configFile     string
	farmId         string
	wallet         string
	rewardCoinType string
	jsonOutput     bool
)

// openPositions builds the position usecase, replaced in tests
var openPositions = func(ctx bCtx.Ctx) (farm.PositionUsecase, func(), error) {
	if err := bootstrap.LoadConfig(configFile); err != nil {
		return nil, nil, err
	}
	stack, err := bootstrap.Build(ctx, bootstrap.Options{
		Sinks: []farm.NotificationSink{notify.NewContextSink()},
	})
	if err != nil {
		return nil, nil, err
	}
	return stack.Positions, func() { stack.Close(ctx) }, nil
}

var rootCmd = &cobra.Command{
	Use:   "farmctl",
	Short: "Inspect and operate yield farm positions",
	Long: `farmctl resolves a farm and the account a wallet holds in it,
shows pending rewards and estimated APR, and stakes, unstakes, harvests
or compounds through the configured signing relay.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", bootstrap.DefaultConfigFile, "path of the yaml config")
	rootCmd.PersistentFlags().StringVar(&farmId, "farm", "", "farm object id")
	rootCmd.PersistentFlags().StringVar(&wallet, "wallet", "", "wallet address")
	rootCmd.PersistentFlags().StringVar(&rewardCoinType, "reward", "", "reward coin type, the farm's first reward type when empty")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print json instead of text")

	rootCmd.AddCommand(positionCmd, aprCmd, watchCmd)
	rootCmd.AddCommand(stakeCmd, unstakeCmd, harvestCmd, compoundCmd)
	rootCmd.AddCommand(activitiesCmd)
}

func main() {
	defer log.Sync()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// commandCtx carries the cobra context, cancelled on interrupt
func commandCtx(cmd *cobra.Command) bCtx.Ctx {
	if c := cmd.Context(); c != nil {
		return bCtx.From(c)
	}
	return bCtx.Background()
}

func positionKey(requireWallet bool) (farm.Key, error) {
	if !domain.IsValidAddress(farmId) {
		return farm.Key{}, xerrors.Errorf("--farm %q: %w", farmId, domain.ErrInvalidAddress)
	}
	key := farm.Key{FarmId: domain.Address(farmId).ToLower()}
	if wallet == "" {
		if requireWallet {
			return farm.Key{}, xerrors.Errorf("--wallet is required: %w", domain.ErrBadParamInput)
		}
		return key, nil
	}
	if !domain.IsValidAddress(wallet) {
		return farm.Key{}, xerrors.Errorf("--wallet %q: %w", wallet, domain.ErrInvalidAddress)
	}
	key.Wallet = domain.Address(wallet).ToLower()
	key.Connected = true
	return key, nil
}

// withPositions opens the usecase for the duration of fn
func withPositions(cmd *cobra.Command, fn func(ctx bCtx.Ctx, pu farm.PositionUsecase) error) error {
	ctx := commandCtx(cmd)
	pu, closeFn, err := openPositions(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, pu)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
