package metrics

import (
	"context"
	"math"
	"time"

	"github.com/baserep/baserep/internal/types"
)

// TimelinessCalculator scores activity consistency: a rate component from
// average transactions per day plus a recency bonus tiered on total count.
type TimelinessCalculator struct {
	txData TxDataSource
}

func NewTimelinessCalculator(txData TxDataSource) *TimelinessCalculator {
	return &TimelinessCalculator{txData: txData}
}

func (c *TimelinessCalculator) Name() string { return types.MetricTimeliness }

func (c *TimelinessCalculator) Calculate(ctx context.Context, input types.ScoreInput) types.MetricScore {
	maxScore := float64(types.WeightTimeliness * 10)

	data := c.txData.Lookup(ctx, input.Address)
	if data.TransactionCount == 0 {
		return degraded(types.MetricTimeliness, types.WeightTimeliness, maxScore, nil, "no transaction history")
	}

	days := 1.0
	if data.FirstTxTimestamp > 0 {
		days = math.Max(1, math.Floor(time.Since(time.Unix(data.FirstTxTimestamp, 0)).Hours()/24))
	}
	avgTxPerDay := float64(data.TransactionCount) / days

	consistency := math.Min(50, avgTxPerDay*10)

	recencyBonus := 0.0
	switch {
	case data.TransactionCount > 10:
		recencyBonus = 30
	case data.TransactionCount > 5:
		recencyBonus = 15
	}

	return bounded(types.MetricTimeliness, types.WeightTimeliness, maxScore, consistency+recencyBonus)
}
