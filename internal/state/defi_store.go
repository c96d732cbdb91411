package state

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq" // PostgreSQL driver for array support
	"github.com/rs/zerolog/log"

	"github.com/baserep/baserep/internal/types"
)

// UpsertDefiMetrics writes the DeFi summary for an address.
func UpsertDefiMetrics(metrics types.DefiMetrics) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	query := `
		INSERT INTO defi_metrics (
			address, unique_protocols, vintage_contracts, protocol_categories,
			total_interactions, gas_used_eth, volume_usd,
			liquidity_duration_days, liquidity_positions, lending_utilization,
			capital_tier, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (address) DO UPDATE SET
			unique_protocols = EXCLUDED.unique_protocols,
			vintage_contracts = EXCLUDED.vintage_contracts,
			protocol_categories = EXCLUDED.protocol_categories,
			total_interactions = EXCLUDED.total_interactions,
			gas_used_eth = EXCLUDED.gas_used_eth,
			volume_usd = EXCLUDED.volume_usd,
			liquidity_duration_days = EXCLUDED.liquidity_duration_days,
			liquidity_positions = EXCLUDED.liquidity_positions,
			lending_utilization = EXCLUDED.lending_utilization,
			capital_tier = EXCLUDED.capital_tier,
			last_updated = EXCLUDED.last_updated;
	`

	_, err := DB.Exec(
		query,
		metrics.Address.String(), metrics.UniqueProtocols, metrics.VintageContracts,
		pq.Array(metrics.ProtocolCategories),
		metrics.TotalInteractions, metrics.GasUsedETH, metrics.VolumeUSD,
		metrics.LiquidityDurationDays, metrics.LiquidityPositions, metrics.LendingUtilization,
		metrics.CapitalTier, metrics.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert defi metrics: %w", err)
	}

	log.Debug().
		Str("address", metrics.Address.Short()).
		Int("unique_protocols", metrics.UniqueProtocols).
		Str("capital_tier", metrics.CapitalTier).
		Msg("DeFi metrics persisted")

	return nil
}

// GetDefiMetrics loads the persisted DeFi summary, nil when absent.
func GetDefiMetrics(address types.Address) (*types.DefiMetrics, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	query := `
		SELECT address, unique_protocols, vintage_contracts, protocol_categories,
			total_interactions, gas_used_eth, volume_usd,
			liquidity_duration_days, liquidity_positions, lending_utilization,
			capital_tier, last_updated
		FROM defi_metrics
		WHERE address = $1;
	`

	var metrics types.DefiMetrics
	var storedAddress string
	err := DB.QueryRow(query, address.String()).Scan(
		&storedAddress, &metrics.UniqueProtocols, &metrics.VintageContracts,
		pq.Array(&metrics.ProtocolCategories),
		&metrics.TotalInteractions, &metrics.GasUsedETH, &metrics.VolumeUSD,
		&metrics.LiquidityDurationDays, &metrics.LiquidityPositions, &metrics.LendingUtilization,
		&metrics.CapitalTier, &metrics.LastUpdated,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query defi metrics: %w", err)
	}
	metrics.Address = types.NormalizeAddress(storedAddress)

	return &metrics, nil
}
