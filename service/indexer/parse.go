package indexer

import (
	"strconv"

	"github.com/tidwall/gjson"
	"golang.org/x/xerrors"

	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
)

// parseUint64 accepts u64 values encoded either as json strings or numbers
func parseUint64(res gjson.Result) (uint64, error) {
	if !res.Exists() {
		return 0, xerrors.Errorf("missing amount: %w", ErrMalformed)
	}
	v, err := strconv.ParseUint(res.String(), 10, 64)
	if err != nil {
		return 0, xerrors.Errorf("amount %q: %w", res.Raw, ErrMalformed)
	}
	return v, nil
}

// parseDecimals keeps an absent field apart from a reported 0
func parseDecimals(res gjson.Result) *int32 {
	if !res.Exists() || res.Type == gjson.Null {
		return nil
	}
	v := int32(res.Int())
	return &v
}

func parseFarm(res gjson.Result) (*farm.FarmDescriptor, error) {
	if !res.IsObject() {
		return nil, ErrMalformed
	}
	farmId := res.Get("farmId").String()
	if farmId == "" {
		return nil, xerrors.Errorf("missing farmId: %w", ErrMalformed)
	}
	total, err := parseUint64(res.Get("totalStakedAmount"))
	if err != nil {
		return nil, err
	}
	f := &farm.FarmDescriptor{
		FarmId:            domain.Address(farmId),
		StakeCoinType:     domain.CoinType(res.Get("stakeCoinType").String()),
		RewardTypes:       []domain.CoinType{},
		RewardData:        map[domain.CoinType]farm.RewardSchedule{},
		TotalStakedAmount: total,
		StakeDecimals:     parseDecimals(res.Get("stakeDecimals")),
		RewardDecimals:    parseDecimals(res.Get("rewardDecimals")),
	}
	for _, t := range res.Get("rewardTypes").Array() {
		f.RewardTypes = append(f.RewardTypes, domain.CoinType(t.String()))
	}

	// coin types contain dots and colons, so iterate instead of building paths
	var parseErr error
	res.Get("rewardData").ForEach(func(key, value gjson.Result) bool {
		rps, err := parseUint64(value.Get("rewardsPerSecond"))
		if err != nil {
			parseErr = err
			return false
		}
		s := farm.RewardSchedule{RewardsPerSecond: rps}
		if end := value.Get("end"); end.Exists() && end.Type != gjson.Null {
			v := end.Int()
			s.End = &v
		}
		f.RewardData[domain.CoinType(key.String())] = s
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return f, nil
}

func parseAccount(res gjson.Result) (*farm.AccountPosition, error) {
	objectId := res.Get("objectId").String()
	if objectId == "" {
		return nil, xerrors.Errorf("missing objectId: %w", ErrMalformed)
	}
	balance, err := parseUint64(res.Get("stakeBalance"))
	if err != nil {
		return nil, err
	}
	return &farm.AccountPosition{
		ObjectId:     domain.Address(objectId),
		FarmId:       domain.Address(res.Get("farmId").String()),
		Owner:        domain.Address(res.Get("owner").String()),
		StakeBalance: balance,
	}, nil
}
