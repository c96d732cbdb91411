package state

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/baserep/baserep/internal/types"
)

// Store adapts the package-level persistence functions to the collaborator
// interfaces the scoring pipeline and engine accept. Lookup failures on the
// advisory paths degrade to empty results with a warning.
type Store struct{}

func (Store) UpsertEconomicVector(_ context.Context, address types.Address, vector types.EconomicVector) error {
	return UpsertEconomicVector(address, vector)
}

func (Store) GetDefiMetrics(_ context.Context, address types.Address) (*types.DefiMetrics, error) {
	return GetDefiMetrics(address)
}

func (Store) UpsertDefiMetrics(_ context.Context, metrics types.DefiMetrics) error {
	return UpsertDefiMetrics(metrics)
}

// LinkedWallets reports the total wallet count for the address's user
// (primary included) and whether any linked wallet carries a control-proof
// signature.
func (Store) LinkedWallets(_ context.Context, address types.Address) (int, bool) {
	wallets, err := LinkedWalletsByAddress(address)
	if err != nil {
		log.Warn().
			Err(err).
			Str("address", address.Short()).
			Msg("Linked wallet lookup failed, assuming single wallet")
		return 1, false
	}

	hasSignature := false
	for _, wallet := range wallets {
		if wallet.Signature != "" {
			hasSignature = true
			break
		}
	}

	return len(wallets) + 1, hasSignature
}

func (Store) Reputation(_ context.Context, address types.Address) (*types.ReputationData, error) {
	return GetReputationByAddress(address)
}

func (Store) SaveReputation(_ context.Context, address types.Address, data types.ReputationData) error {
	return UpsertReputation(address, data)
}
