package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baserep/baserep/internal/types"
)

func metricSet(scores map[string]float64) []types.MetricScore {
	metrics := make([]types.MetricScore, 0, len(scores))
	for name, score := range scores {
		metrics = append(metrics, types.MetricScore{Name: name, Score: score})
	}
	return metrics
}

func TestComposeEconomicVectorPillars(t *testing.T) {
	metrics := metricSet(map[string]float64{
		types.MetricBuilder:      100,
		types.MetricCreator:      50,
		types.MetricDefi:         40,
		types.MetricZoraMints:    20,
		types.MetricFarcaster:    80,
		types.MetricEarlyAdopter: 30,
	})
	analysis := types.TransactionAnalysis{TotalVolumeUSD: 0, CapitalDeployed: 0}

	vector, err := ComposeEconomicVector(metrics, analysis, 0)
	require.NoError(t, err)

	// capital: 100*1.2 + 50*1.2 + 40*1.5 = 240, no whale/deployment input.
	assert.InDelta(t, 240.0, vector.CapitalPillar, 1e-9)
	// diversity: (40+20)*3 = 180.
	assert.InDelta(t, 180.0, vector.DiversityPillar, 1e-9)
	// identity: (80+30)*2 = 220.
	assert.InDelta(t, 220.0, vector.IdentityPillar, 1e-9)
}

func TestComposeEconomicVectorPillarCaps(t *testing.T) {
	metrics := metricSet(map[string]float64{
		types.MetricBuilder:      200,
		types.MetricCreator:      100,
		types.MetricDefi:         100,
		types.MetricZoraMints:    120,
		types.MetricFarcaster:    150,
		types.MetricEarlyAdopter: 50,
	})
	analysis := types.TransactionAnalysis{TotalVolumeUSD: 1e9, CapitalDeployed: 1e9}

	vector, err := ComposeEconomicVector(metrics, analysis, 90)
	require.NoError(t, err)

	assert.Equal(t, 400.0, vector.CapitalPillar)
	assert.Equal(t, 300.0, vector.DiversityPillar)
	assert.Equal(t, 300.0, vector.IdentityPillar)
}

func TestComposeEconomicVectorMultiplierBonuses(t *testing.T) {
	base, err := ComposeEconomicVector(nil, types.TransactionAnalysis{}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, base.Multiplier)

	withEarly, err := ComposeEconomicVector(
		metricSet(map[string]float64{types.MetricEarlyAdopter: 10}),
		types.TransactionAnalysis{}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.1, withEarly.Multiplier, 1e-9)

	withBoth, err := ComposeEconomicVector(
		metricSet(map[string]float64{
			types.MetricEarlyAdopter:  10,
			types.MetricOnchainSummer: 20,
		}),
		types.TransactionAnalysis{}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.2, withBoth.Multiplier, 1e-9)

	// Hackathon alone also triggers the seasonal bonus, and the two badge
	// metrics together do not double it.
	withBadges, err := ComposeEconomicVector(
		metricSet(map[string]float64{
			types.MetricOnchainSummer: 20,
			types.MetricHackathon:     30,
		}),
		types.TransactionAnalysis{}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.1, withBadges.Multiplier, 1e-9)
}

func TestComposeEconomicVectorBreakdownRetainsSubValues(t *testing.T) {
	metrics := metricSet(map[string]float64{
		types.MetricBuilder: 100,
		types.MetricDefi:    40,
	})
	analysis := types.TransactionAnalysis{TotalVolumeUSD: 50000, CapitalDeployed: 10000}

	vector, err := ComposeEconomicVector(metrics, analysis, 14)
	require.NoError(t, err)

	for _, key := range []string{
		"builder_score", "creator_score", "defi_score", "mint_score",
		"social_score", "early_adopter_score", "onchain_summer_score",
		"hackathon_score", "whale_resistance", "capital_deployment",
		"liquidity_duration_days", "total_volume_usd", "capital_deployed_usd",
	} {
		assert.Contains(t, vector.Breakdown, key)
	}

	assert.Equal(t, 100.0, vector.Breakdown["builder_score"])
	assert.Equal(t, 14, vector.Breakdown["liquidity_duration_days"])
}
