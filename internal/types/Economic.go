/*

This file contains the economic-model types: the per-calculation transaction
analysis aggregate, persisted DeFi metrics, the three-pillar economic vector,
and the Sybil resistance result.

*/

package types

import "time"

// TransactionAnalysis is the ephemeral per-calculation aggregate produced by
// the DeFi/transaction analyzer. Every field is populated with a non-negative
// value regardless of whether the real-scan or estimation path produced it.
type TransactionAnalysis struct {
	TotalVolumeETH     float64
	TotalVolumeUSD     float64
	DefiVolumeUSD      float64
	UniqueProtocols    map[string]struct{}
	ProtocolCategories map[string]struct{}
	VintageContracts   int
	GasUsedETH         float64
	CapitalDeployed    float64
	TransactionCount   int
}

// Capital tiers derived from total volume.
const (
	CapitalTierLow  = "low"
	CapitalTierMid  = "mid"
	CapitalTierHigh = "high"
)

// DefiMetrics is the persisted summary of a transaction analysis, keyed by
// normalized address.
type DefiMetrics struct {
	Address               Address   `json:"address"`
	UniqueProtocols       int       `json:"unique_protocols"`
	VintageContracts      int       `json:"vintage_contracts"`
	ProtocolCategories    []string  `json:"protocol_categories"`
	TotalInteractions     int       `json:"total_interactions"`
	GasUsedETH            float64   `json:"gas_used_eth"`
	VolumeUSD             float64   `json:"volume_usd"`
	LiquidityDurationDays int       `json:"liquidity_duration_days"`
	LiquidityPositions    int       `json:"liquidity_positions"`
	LendingUtilization    float64   `json:"lending_utilization"`
	CapitalTier           string    `json:"capital_tier"`
	LastUpdated           time.Time `json:"last_updated"`
}

// EconomicVector holds the three pillar scores plus the base multiplier.
// The breakdown retains every intermediate sub-value for auditability;
// nothing computed by the composer is discarded.
type EconomicVector struct {
	CapitalPillar   float64                `json:"capital_pillar"`
	DiversityPillar float64                `json:"diversity_pillar"`
	IdentityPillar  float64                `json:"identity_pillar"`
	Multiplier      float64                `json:"multiplier"`
	Breakdown       map[string]interface{} `json:"breakdown"`
}

// SybilFactors are the identity signals feeding the Sybil multiplier.
type SybilFactors struct {
	CoinbaseVerified     bool    `json:"coinbase_verified"`
	LinkedWalletCount    int     `json:"linked_wallet_count"`
	WalletAgeMonths      float64 `json:"wallet_age_months"`
	HasLinkingSignature  bool    `json:"has_linking_signature"`
	GitcoinPassportScore float64 `json:"gitcoin_passport_score"`
	HasPassportScore     bool    `json:"has_passport_score"`
	FarcasterLinked      bool    `json:"farcaster_linked"`
}

// SybilBreakdown records each additive bonus separately.
type SybilBreakdown struct {
	CoinbaseBonus    float64 `json:"coinbase_bonus"`
	WalletCountBonus float64 `json:"wallet_count_bonus"`
	WalletAgeBonus   float64 `json:"wallet_age_bonus"`
	SignatureBonus   float64 `json:"signature_bonus"`
	PassportBonus    float64 `json:"passport_bonus"`
	FarcasterBonus   float64 `json:"farcaster_bonus"`
}

// SybilResistanceResult is the evaluator output. Invariant:
// 1.0 <= Multiplier <= 1.7.
type SybilResistanceResult struct {
	Multiplier float64            `json:"multiplier"`
	Factors    SybilFactors       `json:"factors"`
	Breakdown  SybilBreakdown     `json:"breakdown"`
	Patterns   SybilPatternReport `json:"patterns"`
}

// SybilPatternReport is the advisory output of the heuristic Sybil pattern
// detector. It does not gate scoring.
type SybilPatternReport struct {
	IsPotentialSybil bool     `json:"is_potential_sybil"`
	RiskScore        float64  `json:"risk_score"`
	Indicators       []string `json:"indicators"`
}
