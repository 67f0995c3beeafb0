package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/xerrors"
)

// addressHexLen is the hex length of a 32 byte object-model address
const addressHexLen = 64

// Address is a wallet address or an object id, always 0x prefixed hex
type Address string

const EmptyAddress = Address("")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

// Equals compares two addresses after normalization; short forms such as 0x2 match their padded form
func (a Address) Equals(b Address) bool {
	na, errA := NormalizeAddress(string(a))
	nb, errB := NormalizeAddress(string(b))
	if errA != nil || errB != nil {
		return a.ToLowerStr() == b.ToLowerStr()
	}
	return na == nb
}

func (a Address) String() string {
	return string(a)
}

// NormalizeAddress lower-cases, left pads to 32 bytes and validates the hex body
func NormalizeAddress(s string) (Address, error) {
	body := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	if len(body) == 0 || len(body) > addressHexLen {
		return EmptyAddress, xerrors.Errorf("invalid address length %q: %w", s, ErrInvalidAddress)
	}
	padded := "0x" + strings.Repeat("0", addressHexLen-len(body)) + body
	if _, err := hexutil.Decode(padded); err != nil {
		return EmptyAddress, xerrors.Errorf("invalid address %q: %w", s, ErrInvalidAddress)
	}
	return Address(padded), nil
}

// IsValidAddress reports whether s is a 0x prefixed hex address of at most 32 bytes
func IsValidAddress(s string) bool {
	if !strings.HasPrefix(strings.ToLower(s), "0x") {
		return false
	}
	_, err := NormalizeAddress(s)
	return err == nil
}

// CoinType is a fully qualified coin type such as 0x2::sui::SUI
type CoinType string

func (c CoinType) String() string {
	return string(c)
}

func (c CoinType) IsEmpty() bool {
	return len(c) == 0
}

// Symbol returns the struct name of the coin type, used in user facing messages
func (c CoinType) Symbol() string {
	s := string(c)
	if i := strings.Index(s, "<"); i >= 0 {
		s = s[:i]
	}
	parts := strings.Split(s, "::")
	return parts[len(parts)-1]
}

// Normalize pads the package address of the coin type so that 0x2::sui::SUI equals its long form
func (c CoinType) Normalize() CoinType {
	parts := strings.SplitN(string(c), "::", 2)
	if len(parts) != 2 {
		return c
	}
	addr, err := NormalizeAddress(parts[0])
	if err != nil {
		return c
	}
	return CoinType(string(addr) + "::" + parts[1])
}

func (c CoinType) Equals(o CoinType) bool {
	return c.Normalize() == o.Normalize()
}

// TxDigest identifies an executed transaction
type TxDigest string
