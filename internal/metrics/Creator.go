package metrics

import (
	"context"
	"math"

	"github.com/baserep/baserep/internal/types"
)

// CreatorCalculator scores NFT creation: 10 points per deployed collection
// capped at 60, plus a logarithmic sales-volume bonus capped at 40.
type CreatorCalculator struct {
	mints MintSource
}

func NewCreatorCalculator(mints MintSource) *CreatorCalculator {
	return &CreatorCalculator{mints: mints}
}

func (c *CreatorCalculator) Name() string { return types.MetricCreator }

func (c *CreatorCalculator) Calculate(ctx context.Context, input types.ScoreInput) types.MetricScore {
	maxScore := float64(types.WeightCreator * 10)

	if !c.mints.Configured() {
		return degraded(types.MetricCreator, types.WeightCreator, maxScore, nil, "creator API not configured")
	}

	stats, err := c.mints.Creator(ctx, input.Address)
	if err != nil {
		return degraded(types.MetricCreator, types.WeightCreator, maxScore, err, "creator stats fetch failed")
	}

	collectionScore := math.Min(float64(stats.Collections*10), 60)
	volumeBonus := math.Min(40, math.Log10(stats.TotalVolumeETH+1)*5)

	return bounded(types.MetricCreator, types.WeightCreator, maxScore, collectionScore+volumeBonus)
}
