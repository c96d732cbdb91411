package metrics

import (
	"context"
	"math"

	"github.com/baserep/baserep/internal/types"
)

// AnalysisSource produces the transaction analysis feeding the DeFi metric.
type AnalysisSource interface {
	Analyze(ctx context.Context, address types.Address) types.TransactionAnalysis
}

// DefiMaxScore is the flat cap for the composite DeFi metric.
const DefiMaxScore = 100.0

// DefiCalculator scores DeFi engagement as a composite of protocol
// diversity, vintage exposure, category diversity, volume tier, and
// interaction frequency.
type DefiCalculator struct {
	analysis AnalysisSource
}

func NewDefiCalculator(analysis AnalysisSource) *DefiCalculator {
	return &DefiCalculator{analysis: analysis}
}

func (c *DefiCalculator) Name() string { return types.MetricDefi }

func (c *DefiCalculator) Calculate(ctx context.Context, input types.ScoreInput) types.MetricScore {
	analysis := c.analysis.Analyze(ctx, input.Address)

	protocolScore := math.Min(float64(len(analysis.UniqueProtocols)*10), 30)
	vintageScore := math.Min(float64(analysis.VintageContracts*5), 15)
	categoryScore := math.Min(float64(len(analysis.ProtocolCategories)*5), 25)
	volumeBonus := volumeTierBonus(analysis.TotalVolumeUSD)
	frequencyScore := math.Min(math.Floor(float64(analysis.TransactionCount)/10), 30)

	total := protocolScore + vintageScore + categoryScore + volumeBonus + frequencyScore
	return bounded(types.MetricDefi, types.WeightDefi, DefiMaxScore, total)
}

func volumeTierBonus(volumeUSD float64) float64 {
	switch {
	case volumeUSD >= 100000:
		return 20
	case volumeUSD >= 10000:
		return 10
	default:
		return 0
	}
}
