package metrics

import (
	"context"

	"github.com/baserep/baserep/internal/types"
)

// DeploymentSource supplies contract deployment counts from the explorer.
type DeploymentSource interface {
	ContractDeployments(ctx context.Context, address types.Address) (int, error)
	Configured() bool
}

// BuilderCalculator scores contract deployment activity, tiered on detected
// deployments. When deployment detection is unavailable, a small credit is
// granted on high transaction count alone. That fallback is a crude proxy
// and is kept deliberately cheap.
type BuilderCalculator struct {
	deployments DeploymentSource
	txData      TxDataSource
}

func NewBuilderCalculator(deployments DeploymentSource, txData TxDataSource) *BuilderCalculator {
	return &BuilderCalculator{deployments: deployments, txData: txData}
}

func (c *BuilderCalculator) Name() string { return types.MetricBuilder }

func (c *BuilderCalculator) Calculate(ctx context.Context, input types.ScoreInput) types.MetricScore {
	maxScore := float64(types.WeightBuilder * 10)

	if c.deployments != nil && c.deployments.Configured() {
		count, err := c.deployments.ContractDeployments(ctx, input.Address)
		if err == nil && count > 0 {
			return bounded(types.MetricBuilder, types.WeightBuilder, maxScore, deploymentTierScore(count))
		}
		if err != nil {
			metricsLogger.Warn().
				Err(err).
				Str("address", input.Address.Short()).
				Msg("Deployment detection failed, using transaction-count proxy")
		}
	}

	txCount := c.txData.Lookup(ctx, input.Address).TransactionCount
	return bounded(types.MetricBuilder, types.WeightBuilder, maxScore, builderProxyScore(txCount))
}

func deploymentTierScore(deployments int) float64 {
	switch {
	case deployments >= 10:
		return 200
	case deployments >= 5:
		return 150
	case deployments >= 3:
		return 100
	case deployments >= 1:
		return 50
	default:
		return 0
	}
}

func builderProxyScore(txCount int) float64 {
	switch {
	case txCount > 100:
		return 10
	case txCount > 50:
		return 5
	default:
		return 0
	}
}
