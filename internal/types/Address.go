package types

import (
	"errors"
	"regexp"
	"strings"
)

// Address is a canonical lowercase hex wallet address. All lookups, cache
// keys, and comparisons operate on normalized addresses only.
type Address string

var ErrInvalidAddress = errors.New("invalid address format")

var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// NormalizeAddress lowercases an address so that two addresses differing
// only in case are always treated as identical.
func NormalizeAddress(address string) Address {
	return Address(strings.ToLower(address))
}

// ValidateAddress checks the 0x-prefixed 40-hex-digit format and returns
// the normalized form.
func ValidateAddress(address string) (Address, error) {
	if !addressPattern.MatchString(address) {
		return "", ErrInvalidAddress
	}
	return NormalizeAddress(address), nil
}

// String returns the address as a plain string.
func (a Address) String() string {
	return string(a)
}

// Short formats an address for display (0x1234...5678).
func (a Address) Short() string {
	s := string(a)
	if len(s) < 10 {
		return s
	}
	return s[:6] + "..." + s[len(s)-4:]
}
