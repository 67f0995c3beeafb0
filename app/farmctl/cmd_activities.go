package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
)

var (
	activityKind   string
	activityOffset int64
	activityLimit  int64
)

// activitiesCmd lists recorded operations, filtered by --farm, --wallet and --kind
var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "List recorded farm operations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := activityOptions()
		if err != nil {
			return err
		}
		return withPositions(cmd, func(ctx bCtx.Ctx, pu farm.PositionUsecase) error {
			items, count, err := pu.Activities(ctx, opts...)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"items": items,
					"count": count,
				})
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tKIND\tAMOUNT\tSTATUS\tDIGEST")
			for _, a := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.CreatedAt.Format(time.RFC3339), a.Kind, a.Amount, a.Status, a.Digest)
			}
			fmt.Fprintf(w, "%d of %d\n", len(items), count)
			return w.Flush()
		})
	},
}

func init() {
	activitiesCmd.Flags().StringVar(&activityKind, "kind", "", "stake, harvest, unstake or compound")
	activitiesCmd.Flags().Int64Var(&activityOffset, "offset", 0, "number of records to skip")
	activitiesCmd.Flags().Int64Var(&activityLimit, "limit", 20, "max number of records")
}

func activityOptions() ([]farm.ActivityFindAllOptionsFunc, error) {
	opts := []farm.ActivityFindAllOptionsFunc{farm.ActivityWithPagination(activityOffset, activityLimit)}
	if farmId != "" {
		if !domain.IsValidAddress(farmId) {
			return nil, xerrors.Errorf("--farm %q: %w", farmId, domain.ErrInvalidAddress)
		}
		opts = append(opts, farm.ActivityWithFarm(domain.Address(farmId).ToLower()))
	}
	if wallet != "" {
		if !domain.IsValidAddress(wallet) {
			return nil, xerrors.Errorf("--wallet %q: %w", wallet, domain.ErrInvalidAddress)
		}
		opts = append(opts, farm.ActivityWithWallet(domain.Address(wallet).ToLower()))
	}
	if activityKind != "" {
		kind := farm.OperationKind(activityKind)
		switch kind {
		case farm.OperationStake, farm.OperationHarvest, farm.OperationUnstake, farm.OperationCompound:
			opts = append(opts, farm.ActivityWithKind(kind))
		default:
			return nil, xerrors.Errorf("--kind %q: %w", activityKind, domain.ErrBadParamInput)
		}
	}
	return opts, nil
}
