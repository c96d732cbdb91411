/*

This file contains the economic vector composer. It is pure combination
logic over already-computed metric scores plus the transaction analysis,
producing the three pillars and the base multiplier. Every intermediate
sub-value is retained in the breakdown record.

*/

package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/baserep/baserep/internal/analyzer"
	"github.com/baserep/baserep/internal/logger"
	"github.com/baserep/baserep/internal/types"
)

var vectorLogger = logger.GetForComponent("economic-vector")

var ErrNonFiniteScore = errors.New("non-finite value in economic vector computation")

// Pillar caps and composition weights.
const (
	capitalPillarMax   = 400.0
	diversityPillarMax = 300.0
	identityPillarMax  = 300.0

	builderCapitalWeight    = 1.2
	creatorCapitalWeight    = 1.2
	defiCapitalWeight       = 1.5
	whaleCapitalWeight      = 0.8
	deploymentCapitalWeight = 0.5

	diversityMultiplier = 3.0
	identityMultiplier  = 2.0

	earlyAdopterMultiplierBonus = 0.1
	seasonalBadgeMultiplierBonus = 0.1
)

// ComposeEconomicVector combines metric scores and the transaction analysis
// into the three pillars plus the base multiplier. Returns an error if any
// computed value is NaN or infinite; scores reaching this point are trusted
// to be bounded, so a non-finite value indicates corrupt upstream data.
func ComposeEconomicVector(metrics []types.MetricScore, analysis types.TransactionAnalysis, liquidityDurationDays int) (types.EconomicVector, error) {
	builderScore := types.MetricScoreByName(metrics, types.MetricBuilder)
	creatorScore := types.MetricScoreByName(metrics, types.MetricCreator)
	defiScore := types.MetricScoreByName(metrics, types.MetricDefi)
	mintScore := types.MetricScoreByName(metrics, types.MetricZoraMints)
	socialScore := types.MetricScoreByName(metrics, types.MetricFarcaster)
	earlyAdopterScore := types.MetricScoreByName(metrics, types.MetricEarlyAdopter)
	summerScore := types.MetricScoreByName(metrics, types.MetricOnchainSummer)
	hackathonScore := types.MetricScoreByName(metrics, types.MetricHackathon)

	whaleResistance := analyzer.WhaleResistanceScore(analysis.TotalVolumeUSD)
	capitalDeployment := analyzer.CapitalDeploymentScore(analysis.CapitalDeployed, liquidityDurationDays)

	capitalPillar := math.Min(capitalPillarMax,
		builderScore*builderCapitalWeight+
			creatorScore*creatorCapitalWeight+
			defiScore*defiCapitalWeight+
			whaleResistance*whaleCapitalWeight+
			capitalDeployment*deploymentCapitalWeight)

	diversityPillar := math.Min(diversityPillarMax, (defiScore+mintScore)*diversityMultiplier)
	identityPillar := math.Min(identityPillarMax, (socialScore+earlyAdopterScore)*identityMultiplier)

	multiplier := 1.0
	if earlyAdopterScore > 0 {
		multiplier += earlyAdopterMultiplierBonus
	}
	if summerScore > 0 || hackathonScore > 0 {
		multiplier += seasonalBadgeMultiplierBonus
	}

	for name, value := range map[string]float64{
		"capitalPillar":   capitalPillar,
		"diversityPillar": diversityPillar,
		"identityPillar":  identityPillar,
		"multiplier":      multiplier,
	} {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return types.EconomicVector{}, fmt.Errorf("%w: %s", ErrNonFiniteScore, name)
		}
	}

	vector := types.EconomicVector{
		CapitalPillar:   capitalPillar,
		DiversityPillar: diversityPillar,
		IdentityPillar:  identityPillar,
		Multiplier:      multiplier,
		Breakdown: map[string]interface{}{
			"builder_score":           builderScore,
			"creator_score":           creatorScore,
			"defi_score":              defiScore,
			"mint_score":              mintScore,
			"social_score":            socialScore,
			"early_adopter_score":     earlyAdopterScore,
			"onchain_summer_score":    summerScore,
			"hackathon_score":         hackathonScore,
			"whale_resistance":        whaleResistance,
			"capital_deployment":      capitalDeployment,
			"liquidity_duration_days": liquidityDurationDays,
			"total_volume_usd":        analysis.TotalVolumeUSD,
			"capital_deployed_usd":    analysis.CapitalDeployed,
		},
	}

	vectorLogger.Debug().
		Float64("capitalPillar", capitalPillar).
		Float64("diversityPillar", diversityPillar).
		Float64("identityPillar", identityPillar).
		Float64("multiplier", multiplier).
		Msg("Economic vector composed")

	return vector, nil
}
