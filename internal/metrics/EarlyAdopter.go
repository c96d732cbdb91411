package metrics

import (
	"context"
	"math"

	"github.com/baserep/baserep/internal/types"
)

// EarlyAdopterCalculator scores how soon after network launch the address
// first transacted, tiered on days since launch.
type EarlyAdopterCalculator struct {
	txData TxDataSource
}

func NewEarlyAdopterCalculator(txData TxDataSource) *EarlyAdopterCalculator {
	return &EarlyAdopterCalculator{txData: txData}
}

func (c *EarlyAdopterCalculator) Name() string { return types.MetricEarlyAdopter }

func (c *EarlyAdopterCalculator) Calculate(ctx context.Context, input types.ScoreInput) types.MetricScore {
	maxScore := float64(types.WeightEarlyAdopter * 10)

	data := c.txData.Lookup(ctx, input.Address)
	if data.FirstTxTimestamp == 0 {
		return degraded(types.MetricEarlyAdopter, types.WeightEarlyAdopter, maxScore, nil, "no first transaction timestamp")
	}

	daysSinceLaunch := math.Max(0, float64(data.FirstTxTimestamp-types.BaseLaunchTimestamp)/86400)
	return bounded(types.MetricEarlyAdopter, types.WeightEarlyAdopter, maxScore, earlyAdopterTierScore(daysSinceLaunch))
}

func earlyAdopterTierScore(daysSinceLaunch float64) float64 {
	switch {
	case daysSinceLaunch <= 7:
		return 50
	case daysSinceLaunch <= 30:
		return 40
	case daysSinceLaunch <= 90:
		return 30
	case daysSinceLaunch <= 180:
		return 20
	case daysSinceLaunch <= 365:
		return 10
	default:
		return 0
	}
}
