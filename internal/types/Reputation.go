/*

This file contains the core scoring artifacts: metric scores, tiers, and the
externally visible reputation record.

*/

package types

import "time"

// Tier is the discrete reputation class determined solely by total score.
type Tier string

const (
	TierTourist  Tier = "TOURIST"
	TierResident Tier = "RESIDENT"
	TierBuilder  Tier = "BUILDER"
	TierBased    Tier = "BASED"
	TierLegend   Tier = "LEGEND"
)

// Tier thresholds on the 0-1000 scale. Non-overlapping and exhaustive.
const (
	TierResidentMin = 351
	TierBuilderMin  = 651
	TierBasedMin    = 851
	TierLegendMin   = 951
	TotalScoreMax   = 1000
)

// Metric names. These key metric lookup in the economic vector composer and
// the per-metric reputation columns, so they must stay stable.
const (
	MetricTenure        = "Base Tenure"
	MetricZoraMints     = "Zora Mints"
	MetricTimeliness    = "Timeliness"
	MetricFarcaster     = "Farcaster"
	MetricBuilder       = "Builder"
	MetricCreator       = "Creator"
	MetricOnchainSummer = "Onchain Summer"
	MetricHackathon     = "Hackathon"
	MetricEarlyAdopter  = "Early Adopter"
	MetricDefi          = "DeFi Metrics"
)

// Metric weights. The nine base weights sum to 100; DeFi adds 10 on top.
// Max score per metric is weight*10, except DeFi which is a flat 100.
const (
	WeightTenure        = 15
	WeightZoraMints     = 12
	WeightTimeliness    = 8
	WeightFarcaster     = 15
	WeightBuilder       = 20
	WeightCreator       = 10
	WeightOnchainSummer = 8
	WeightHackathon     = 7
	WeightEarlyAdopter  = 5
	WeightDefi          = 10
)

// BaseLaunchTimestamp is the Base mainnet launch (2023-08-09 UTC), the
// reference point for Early Adopter scoring.
const BaseLaunchTimestamp int64 = 1691539200

// MetricScore is the bounded output of a single metric calculator.
// Invariant: 0 <= Score <= MaxScore.
type MetricScore struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Weight   int     `json:"weight"`
	MaxScore float64 `json:"max_score"`
}

// ScoreInput identifies the address being scored plus any cryptographically
// linked secondary wallets.
type ScoreInput struct {
	Address       Address   `json:"address"`
	LinkedWallets []Address `json:"linked_wallets"`
}

// ReputationData is the final externally visible artifact. Immutable once
// produced; a new calculation produces a new value.
type ReputationData struct {
	TotalScore      int                   `json:"total_score"`
	Tier            Tier                  `json:"tier"`
	Metrics         []MetricScore         `json:"metrics"`
	SybilResistance SybilResistanceResult `json:"sybil_resistance"`
	LastCalculated  time.Time             `json:"last_calculated"`
}

// MetricScoreByName returns the score of the named metric, or 0 if absent.
func MetricScoreByName(metrics []MetricScore, name string) float64 {
	for _, m := range metrics {
		if m.Name == name {
			return m.Score
		}
	}
	return 0
}
