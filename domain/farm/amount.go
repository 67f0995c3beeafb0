package farm

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var amountReplacer = strings.NewReplacer(",", "", "_", "", " ", "")

// ParseAmount converts a display amount into smallest units, truncating extra precision.
// Empty, malformed, negative or out of range input yields 0.
func ParseAmount(s string, decimals int32) uint64 {
	cleaned := amountReplacer.Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil || !d.IsPositive() {
		return 0
	}
	units := d.Shift(decimals).Truncate(0).BigInt()
	if !units.IsUint64() {
		return 0
	}
	return units.Uint64()
}

// FormatAmount renders smallest units as a display amount without trailing zeros
func FormatAmount(amount uint64, decimals int32) string {
	return ToDecimal(amount, decimals).String()
}

func ToDecimal(amount uint64, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -decimals)
}

// IsMaxWithdrawal reports whether the requested display amount is exactly the staked balance
func IsMaxWithdrawal(requested string, stakeBalance uint64, decimals int32) bool {
	return ParseAmount(requested, decimals) == stakeBalance
}
