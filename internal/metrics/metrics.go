/*

This file contains the calculator contract shared by all metrics. Every
calculator is fail-open: internal failures (network, missing API key, parse
error) collapse to a zero score at this boundary, logged and never
propagated, so one source outage cannot block overall computation.

*/

package metrics

import (
	"context"
	"math"

	"github.com/baserep/baserep/internal/logger"
	"github.com/baserep/baserep/internal/types"
)

var metricsLogger = logger.GetForComponent("metrics")

// Calculator produces one bounded MetricScore from a score input. Calculate
// never returns an error; it degrades to zero instead.
type Calculator interface {
	Name() string
	Calculate(ctx context.Context, input types.ScoreInput) types.MetricScore
}

// bounded builds a metric score clamped to [0, maxScore]. NaN and Inf
// collapse to zero so malformed upstream data cannot poison the total.
func bounded(name string, weight int, maxScore, score float64) types.MetricScore {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		metricsLogger.Warn().
			Str("metric", name).
			Float64("score", score).
			Msg("Non-finite metric score clamped to zero")
		score = 0
	}
	if score < 0 {
		score = 0
	}
	if score > maxScore {
		score = maxScore
	}
	return types.MetricScore{Name: name, Score: score, Weight: weight, MaxScore: maxScore}
}

// degraded is the fail-open boundary: it logs the cause and returns a zero
// score for the metric.
func degraded(name string, weight int, maxScore float64, err error, reason string) types.MetricScore {
	event := metricsLogger.Warn().Str("metric", name).Str("reason", reason)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg("Metric degraded to zero")
	return types.MetricScore{Name: name, Score: 0, Weight: weight, MaxScore: maxScore}
}
