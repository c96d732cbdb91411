package state

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/baserep/baserep/internal/types"
)

// UpsertReputation writes the latest reputation for an address, one column
// per metric plus the total and tier.
func UpsertReputation(address types.Address, data types.ReputationData) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	query := `
		INSERT INTO reputations (
			address, total_score, tier,
			tenure_score, mints_score, timeliness_score, farcaster_score,
			builder_score, creator_score, onchain_summer_score, hackathon_score,
			early_adopter_score, defi_score, last_calculated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (address) DO UPDATE SET
			total_score = EXCLUDED.total_score,
			tier = EXCLUDED.tier,
			tenure_score = EXCLUDED.tenure_score,
			mints_score = EXCLUDED.mints_score,
			timeliness_score = EXCLUDED.timeliness_score,
			farcaster_score = EXCLUDED.farcaster_score,
			builder_score = EXCLUDED.builder_score,
			creator_score = EXCLUDED.creator_score,
			onchain_summer_score = EXCLUDED.onchain_summer_score,
			hackathon_score = EXCLUDED.hackathon_score,
			early_adopter_score = EXCLUDED.early_adopter_score,
			defi_score = EXCLUDED.defi_score,
			last_calculated = EXCLUDED.last_calculated;
	`

	_, err := DB.Exec(
		query,
		address.String(), data.TotalScore, string(data.Tier),
		types.MetricScoreByName(data.Metrics, types.MetricTenure),
		types.MetricScoreByName(data.Metrics, types.MetricZoraMints),
		types.MetricScoreByName(data.Metrics, types.MetricTimeliness),
		types.MetricScoreByName(data.Metrics, types.MetricFarcaster),
		types.MetricScoreByName(data.Metrics, types.MetricBuilder),
		types.MetricScoreByName(data.Metrics, types.MetricCreator),
		types.MetricScoreByName(data.Metrics, types.MetricOnchainSummer),
		types.MetricScoreByName(data.Metrics, types.MetricHackathon),
		types.MetricScoreByName(data.Metrics, types.MetricEarlyAdopter),
		types.MetricScoreByName(data.Metrics, types.MetricDefi),
		data.LastCalculated,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert reputation: %w", err)
	}

	log.Debug().
		Str("address", address.Short()).
		Int("total_score", data.TotalScore).
		Str("tier", string(data.Tier)).
		Msg("Reputation persisted")

	return nil
}

// GetReputationByAddress loads the persisted reputation for an address,
// nil when none exists. Metric scores are rebuilt into the ordered slice
// the calculators produce.
func GetReputationByAddress(address types.Address) (*types.ReputationData, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	query := `
		SELECT total_score, tier,
			tenure_score, mints_score, timeliness_score, farcaster_score,
			builder_score, creator_score, onchain_summer_score, hackathon_score,
			early_adopter_score, defi_score, last_calculated
		FROM reputations
		WHERE address = $1;
	`

	var data types.ReputationData
	var tier string
	var tenure, mints, timeliness, farcaster, builder float64
	var creator, summer, hackathon, earlyAdopter, defi float64

	err := DB.QueryRow(query, address.String()).Scan(
		&data.TotalScore, &tier,
		&tenure, &mints, &timeliness, &farcaster,
		&builder, &creator, &summer, &hackathon,
		&earlyAdopter, &defi, &data.LastCalculated,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query reputation: %w", err)
	}

	data.Tier = types.Tier(tier)
	data.Metrics = []types.MetricScore{
		{Name: types.MetricTenure, Score: tenure, Weight: types.WeightTenure, MaxScore: float64(types.WeightTenure * 10)},
		{Name: types.MetricZoraMints, Score: mints, Weight: types.WeightZoraMints, MaxScore: float64(types.WeightZoraMints * 10)},
		{Name: types.MetricTimeliness, Score: timeliness, Weight: types.WeightTimeliness, MaxScore: float64(types.WeightTimeliness * 10)},
		{Name: types.MetricFarcaster, Score: farcaster, Weight: types.WeightFarcaster, MaxScore: float64(types.WeightFarcaster * 10)},
		{Name: types.MetricBuilder, Score: builder, Weight: types.WeightBuilder, MaxScore: float64(types.WeightBuilder * 10)},
		{Name: types.MetricCreator, Score: creator, Weight: types.WeightCreator, MaxScore: float64(types.WeightCreator * 10)},
		{Name: types.MetricOnchainSummer, Score: summer, Weight: types.WeightOnchainSummer, MaxScore: float64(types.WeightOnchainSummer * 10)},
		{Name: types.MetricHackathon, Score: hackathon, Weight: types.WeightHackathon, MaxScore: float64(types.WeightHackathon * 10)},
		{Name: types.MetricEarlyAdopter, Score: earlyAdopter, Weight: types.WeightEarlyAdopter, MaxScore: float64(types.WeightEarlyAdopter * 10)},
		{Name: types.MetricDefi, Score: defi, Weight: types.WeightDefi, MaxScore: 100},
	}

	return &data, nil
}
