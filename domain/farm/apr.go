package farm

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/yieldfarm/domain"
)

const SecondsPerYear = 31_536_000

// epochMillisThreshold separates second and millisecond timestamps
const epochMillisThreshold = int64(1e12)

var (
	secondsPerYear = decimal.NewFromInt(SecondsPerYear)
	hundred        = decimal.NewFromInt(100)
)

type AprInput struct {
	Farm                *FarmDescriptor
	RewardCoinType      domain.CoinType
	StakeTokenPriceUsd  *decimal.Decimal
	RewardTokenPriceUsd *decimal.Decimal
}

// EstimateAPR is the annualized reward value over the staked value, in percent.
// Any missing input, an ended schedule or a non finite result gives 0.
func EstimateAPR(in AprInput, now time.Time) float64 {
	if in.Farm == nil || in.StakeTokenPriceUsd == nil || in.RewardTokenPriceUsd == nil {
		return 0
	}
	schedule := in.Farm.Schedule(in.RewardCoinType)
	if schedule == nil || schedule.RewardsPerSecond == 0 || in.Farm.TotalStakedAmount == 0 {
		return 0
	}
	if !in.StakeTokenPriceUsd.IsPositive() || !in.RewardTokenPriceUsd.IsPositive() {
		return 0
	}
	if schedule.End != nil && !now.Before(EndTime(*schedule.End)) {
		return 0
	}

	yearly := ToDecimal(schedule.RewardsPerSecond, 0).Mul(secondsPerYear).Mul(*in.RewardTokenPriceUsd)
	staked := ToDecimal(in.Farm.TotalStakedAmount, 0).Mul(*in.StakeTokenPriceUsd)
	apr, _ := yearly.Div(staked).Mul(hundred).Float64()
	if math.IsNaN(apr) || math.IsInf(apr, 0) {
		return 0
	}
	return apr
}

// EndTime reads an epoch timestamp that may be in seconds or milliseconds
func EndTime(end int64) time.Time {
	if end > epochMillisThreshold {
		return time.UnixMilli(end)
	}
	return time.Unix(end, 0)
}
