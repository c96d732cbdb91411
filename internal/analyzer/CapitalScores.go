/*

This file contains the pure derived scores over a transaction analysis.
Both are logarithmically damped so large actors do not dominate linearly.

*/

package analyzer

import (
	"math"

	"github.com/baserep/baserep/internal/types"
)

// Capital tier thresholds in USD.
const (
	capitalTierHighUSD = 100000.0
	capitalTierMidUSD  = 10000.0
)

// WhaleResistanceScore maps total volume to 0-100 with logarithmic damping.
func WhaleResistanceScore(volumeUSD float64) float64 {
	if volumeUSD < 0 {
		volumeUSD = 0
	}
	return math.Min(100, math.Log10(volumeUSD+1)*10)
}

// CapitalDeploymentScore maps deployed capital plus liquidity duration to
// 0-100. Duration earns a flat bonus: 50 for 30+ days, 25 for 7+ days.
func CapitalDeploymentScore(capitalDeployed float64, liquidityDurationDays int) float64 {
	if capitalDeployed < 0 {
		capitalDeployed = 0
	}

	base := math.Min(50, math.Log10(capitalDeployed+1)*5)

	durationBonus := 0.0
	switch {
	case liquidityDurationDays >= 30:
		durationBonus = 50
	case liquidityDurationDays >= 7:
		durationBonus = 25
	}

	return math.Min(100, base+durationBonus)
}

// CapitalTier buckets total volume into low/mid/high.
func CapitalTier(volumeUSD float64) string {
	switch {
	case volumeUSD >= capitalTierHighUSD:
		return types.CapitalTierHigh
	case volumeUSD >= capitalTierMidUSD:
		return types.CapitalTierMid
	default:
		return types.CapitalTierLow
	}
}
