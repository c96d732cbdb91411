package metrics

import (
	"context"

	"github.com/baserep/baserep/internal/nftapi"
	"github.com/baserep/baserep/internal/types"
)

// MintSource supplies NFT mint and creator data.
type MintSource interface {
	MintCount(ctx context.Context, address types.Address) (int, error)
	Creator(ctx context.Context, address types.Address) (nftapi.CreatorStats, error)
	Configured() bool
}

// ZoraMintsCalculator scores NFT minting activity: 2 points per mint,
// capped.
type ZoraMintsCalculator struct {
	mints MintSource
}

func NewZoraMintsCalculator(mints MintSource) *ZoraMintsCalculator {
	return &ZoraMintsCalculator{mints: mints}
}

func (c *ZoraMintsCalculator) Name() string { return types.MetricZoraMints }

func (c *ZoraMintsCalculator) Calculate(ctx context.Context, input types.ScoreInput) types.MetricScore {
	maxScore := float64(types.WeightZoraMints * 10)

	if !c.mints.Configured() {
		return degraded(types.MetricZoraMints, types.WeightZoraMints, maxScore, nil, "mint API not configured")
	}

	count, err := c.mints.MintCount(ctx, input.Address)
	if err != nil {
		return degraded(types.MetricZoraMints, types.WeightZoraMints, maxScore, err, "mint count fetch failed")
	}

	return bounded(types.MetricZoraMints, types.WeightZoraMints, maxScore, float64(count*2))
}
