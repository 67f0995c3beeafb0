package farm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want uint64
	}{
		{name: "empty", in: "", want: 0},
		{name: "letters", in: "abc", want: 0},
		{name: "negative", in: "-1", want: 0},
		{name: "zero", in: "0.000", want: 0},
		{name: "integer", in: "12", want: 12_000_000_000},
		{name: "fraction", in: "0.5", want: 500_000_000},
		{name: "thousands separators", in: "1,234.5", want: 1_234_500_000_000},
		{name: "spaces and underscores", in: " 1 000_000 ", want: 1_000_000_000_000_000},
		{name: "truncates extra precision", in: "1.9999999999", want: 1_999_999_999},
		{name: "below smallest unit", in: "0.0000000001", want: 0},
		{name: "u64 max", in: "18446744073.709551615", want: 18_446_744_073_709_551_615},
		{name: "overflow", in: "18446744073.709551616", want: 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, ParseAmount(c.in, DefaultDecimals))
		})
	}
}

func TestParseAmountDecimals(t *testing.T) {
	req := require.New(t)
	req.Equal(uint64(1_500_000), ParseAmount("1.5", 6))
	req.Equal(uint64(1), ParseAmount("1.9", 0))
}

func TestParseFormatRoundTrip(t *testing.T) {
	req := require.New(t)
	for _, in := range []string{"1", "0.000000001", "123456.789", "42.1", "9,999.999999999"} {
		parsed := ParseAmount(in, DefaultDecimals)
		req.NotZero(parsed, in)
		req.Equal(parsed, ParseAmount(FormatAmount(parsed, DefaultDecimals), DefaultDecimals), in)
	}
	req.Equal("123456.789", FormatAmount(ParseAmount("123,456.789", DefaultDecimals), DefaultDecimals))
	req.Equal("0.000000001", FormatAmount(1, DefaultDecimals))
	req.Equal("0", FormatAmount(0, DefaultDecimals))
}

func TestIsMaxWithdrawal(t *testing.T) {
	req := require.New(t)
	balance := ParseAmount("10.123456789", DefaultDecimals)

	req.True(IsMaxWithdrawal("10.123456789", balance, DefaultDecimals))
	req.True(IsMaxWithdrawal(FormatAmount(balance, DefaultDecimals), balance, DefaultDecimals))
	req.False(IsMaxWithdrawal(FormatAmount(balance-1, DefaultDecimals), balance, DefaultDecimals))
	req.False(IsMaxWithdrawal("10.12345678", balance, DefaultDecimals))
	req.False(IsMaxWithdrawal("11", balance, DefaultDecimals))
}
