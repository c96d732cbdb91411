package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAddress(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  Address
		valid bool
	}{
		{
			name:  "lowercase",
			input: "0x1234567890abcdef1234567890abcdef12345678",
			want:  "0x1234567890abcdef1234567890abcdef12345678",
			valid: true,
		},
		{
			name:  "mixed case normalized",
			input: "0x1234567890ABCDEF1234567890abcdef12345678",
			want:  "0x1234567890abcdef1234567890abcdef12345678",
			valid: true,
		},
		{name: "missing prefix", input: "1234567890abcdef1234567890abcdef12345678"},
		{name: "too short", input: "0x1234"},
		{name: "too long", input: "0x1234567890abcdef1234567890abcdef123456789"},
		{name: "non-hex characters", input: "0x1234567890abcdef1234567890abcdef1234567g"},
		{name: "empty", input: ""},
		{name: "ens name", input: "vitalik.eth"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateAddress(tc.input)
			if !tc.valid {
				require.ErrorIs(t, err, ErrInvalidAddress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	got := NormalizeAddress("0xABCDEF1234567890ABCDEF1234567890ABCDEF12")
	assert.Equal(t, Address("0xabcdef1234567890abcdef1234567890abcdef12"), got)
}

func TestAddressShort(t *testing.T) {
	addr := Address("0x1234567890abcdef1234567890abcdef12345678")
	assert.Equal(t, "0x1234...5678", addr.Short())

	assert.Equal(t, "0x1234", Address("0x1234").Short())
}
