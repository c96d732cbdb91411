package metrics

import (
	"context"
	"math"
	"time"

	"github.com/baserep/baserep/internal/chain"
	"github.com/baserep/baserep/internal/types"
)

// TxDataSource supplies cached transaction count and first-transaction
// timestamp lookups.
type TxDataSource interface {
	Lookup(ctx context.Context, address types.Address) chain.TxData
}

// TenureCalculator scores wallet age: one point per day since the first
// transaction, capped.
type TenureCalculator struct {
	txData TxDataSource
}

func NewTenureCalculator(txData TxDataSource) *TenureCalculator {
	return &TenureCalculator{txData: txData}
}

func (c *TenureCalculator) Name() string { return types.MetricTenure }

func (c *TenureCalculator) Calculate(ctx context.Context, input types.ScoreInput) types.MetricScore {
	maxScore := float64(types.WeightTenure * 10)

	data := c.txData.Lookup(ctx, input.Address)
	if data.FirstTxTimestamp == 0 {
		return degraded(types.MetricTenure, types.WeightTenure, maxScore, nil, "no first transaction timestamp")
	}

	days := math.Floor(time.Since(time.Unix(data.FirstTxTimestamp, 0)).Hours() / 24)
	return bounded(types.MetricTenure, types.WeightTenure, maxScore, days)
}
