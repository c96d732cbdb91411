package state

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/baserep/baserep/internal/types"
)

// UpsertEconomicVector writes the derived economic vector for an address,
// breakdown included as JSONB.
func UpsertEconomicVector(address types.Address, vector types.EconomicVector) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	breakdownJSON, err := json.Marshal(vector.Breakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal vector breakdown: %w", err)
	}

	query := `
		INSERT INTO economic_vectors (
			address, capital_pillar, diversity_pillar, identity_pillar,
			multiplier, breakdown, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		ON CONFLICT (address) DO UPDATE SET
			capital_pillar = EXCLUDED.capital_pillar,
			diversity_pillar = EXCLUDED.diversity_pillar,
			identity_pillar = EXCLUDED.identity_pillar,
			multiplier = EXCLUDED.multiplier,
			breakdown = EXCLUDED.breakdown,
			updated_at = CURRENT_TIMESTAMP;
	`

	_, err = DB.Exec(
		query,
		address.String(), vector.CapitalPillar, vector.DiversityPillar,
		vector.IdentityPillar, vector.Multiplier, breakdownJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert economic vector: %w", err)
	}

	log.Debug().
		Str("address", address.Short()).
		Float64("multiplier", vector.Multiplier).
		Msg("Economic vector persisted")

	return nil
}

// GetEconomicVector loads the persisted vector, nil when absent.
func GetEconomicVector(address types.Address) (*types.EconomicVector, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	query := `
		SELECT capital_pillar, diversity_pillar, identity_pillar, multiplier, breakdown
		FROM economic_vectors
		WHERE address = $1;
	`

	var vector types.EconomicVector
	var breakdownJSON []byte
	err := DB.QueryRow(query, address.String()).Scan(
		&vector.CapitalPillar, &vector.DiversityPillar, &vector.IdentityPillar,
		&vector.Multiplier, &breakdownJSON,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query economic vector: %w", err)
	}

	if len(breakdownJSON) > 0 {
		if err := json.Unmarshal(breakdownJSON, &vector.Breakdown); err != nil {
			return nil, fmt.Errorf("failed to unmarshal vector breakdown: %w", err)
		}
	}

	return &vector, nil
}
