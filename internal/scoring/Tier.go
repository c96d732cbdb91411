package scoring

import "github.com/baserep/baserep/internal/types"

// DetermineTier maps a total score onto the discrete tier ladder.
func DetermineTier(totalScore int) types.Tier {
	switch {
	case totalScore >= types.TierLegendMin:
		return types.TierLegend
	case totalScore >= types.TierBasedMin:
		return types.TierBased
	case totalScore >= types.TierBuilderMin:
		return types.TierBuilder
	case totalScore >= types.TierResidentMin:
		return types.TierResident
	default:
		return types.TierTourist
	}
}
