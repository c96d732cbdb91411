/*

This file contains the reputation aggregator, the single linear pipeline per
calculation: fan out all metric calculators, compose the economic vector,
evaluate Sybil resistance concurrently, combine the multipliers, clamp, and
tier. The only failure it reports itself is a malformed input address; every
metric source failure has already degraded to zero upstream.

*/

package scoring

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/baserep/baserep/internal/analyzer"
	"github.com/baserep/baserep/internal/chain"
	"github.com/baserep/baserep/internal/identity"
	"github.com/baserep/baserep/internal/logger"
	"github.com/baserep/baserep/internal/metrics"
	"github.com/baserep/baserep/internal/types"
)

var aggregatorLogger = logger.GetForComponent("aggregator")

// combinedMultiplierCap bounds the product of the economic and Sybil
// multipliers.
const combinedMultiplierCap = 1.7

const daysPerMonth = 30.44

// AnalysisSource produces the transaction analysis shared by the DeFi
// metric and the vector composer.
type AnalysisSource interface {
	Analyze(ctx context.Context, address types.Address) types.TransactionAnalysis
}

// TxDataSource supplies transaction count and first-transaction timestamp.
type TxDataSource interface {
	Lookup(ctx context.Context, address types.Address) chain.TxData
}

// Verifier checks for a strong external identity verification signal.
type Verifier interface {
	Verify(ctx context.Context, address types.Address) bool
}

// PassportSource fetches a decentralized-identity score, nil when absent.
type PassportSource interface {
	Score(ctx context.Context, address types.Address) *float64
}

// WalletLinkSource reports persisted wallet links for the address's user.
type WalletLinkSource interface {
	LinkedWallets(ctx context.Context, address types.Address) (count int, hasSignature bool)
}

// VectorStore persists economic vectors. Failures are logged, never fatal.
type VectorStore interface {
	UpsertEconomicVector(ctx context.Context, address types.Address, vector types.EconomicVector) error
}

// DefiStore persists and recalls DeFi metric summaries.
type DefiStore interface {
	GetDefiMetrics(ctx context.Context, address types.Address) (*types.DefiMetrics, error)
	UpsertDefiMetrics(ctx context.Context, metrics types.DefiMetrics) error
}

// Calculator orchestrates a full reputation computation.
type Calculator struct {
	calculators []metrics.Calculator
	analysis    AnalysisSource
	txData      TxDataSource
	verifier    Verifier
	passport    PassportSource
	wallets     WalletLinkSource
	vectors     VectorStore
	defi        DefiStore
}

// NewCalculator wires the aggregator. verifier, passport, wallets, vectors,
// and defi may be nil; the dependent signals then fall back to their
// defaults.
func NewCalculator(
	calculators []metrics.Calculator,
	analysis AnalysisSource,
	txData TxDataSource,
	verifier Verifier,
	passport PassportSource,
	wallets WalletLinkSource,
	vectors VectorStore,
	defi DefiStore,
) *Calculator {
	return &Calculator{
		calculators: calculators,
		analysis:    analysis,
		txData:      txData,
		verifier:    verifier,
		passport:    passport,
		wallets:     wallets,
		vectors:     vectors,
		defi:        defi,
	}
}

// CalculateReputation runs the full pipeline for one input. The returned
// data is immutable; repeat calls produce fresh values.
func (c *Calculator) CalculateReputation(ctx context.Context, input types.ScoreInput) (types.ReputationData, error) {
	normalized, err := types.ValidateAddress(input.Address.String())
	if err != nil {
		return types.ReputationData{}, err
	}
	input.Address = normalized

	aggregatorLogger.Info().
		Str("address", input.Address.Short()).
		Int("linkedWallets", len(input.LinkedWallets)).
		Msg("Starting reputation calculation")

	metricScores := c.computeMetrics(ctx, input)

	baseScore := 0.0
	for _, m := range metricScores {
		baseScore += m.Score
	}

	// Sybil evaluation has disjoint inputs from vector composition, so the
	// two run concurrently.
	sybilCh := make(chan types.SybilResistanceResult, 1)
	go func() {
		sybilCh <- c.evaluateSybil(ctx, input, metricScores)
	}()

	analysis := c.analysis.Analyze(ctx, input.Address)
	vector, err := ComposeEconomicVector(metricScores, analysis, c.liquidityDuration(ctx, input.Address))
	if err != nil {
		return types.ReputationData{}, err
	}

	sybil := <-sybilCh

	combined := math.Min(combinedMultiplierCap, vector.Multiplier*sybil.Multiplier)
	totalScore := int(math.Min(float64(types.TotalScoreMax), math.Floor(baseScore*combined)))

	data := types.ReputationData{
		TotalScore:      totalScore,
		Tier:            DetermineTier(totalScore),
		Metrics:         metricScores,
		SybilResistance: sybil,
		LastCalculated:  time.Now(),
	}

	c.persist(ctx, input.Address, vector, analysis)

	aggregatorLogger.Info().
		Str("address", input.Address.Short()).
		Float64("baseScore", baseScore).
		Float64("economicMultiplier", vector.Multiplier).
		Float64("sybilMultiplier", sybil.Multiplier).
		Bool("sybilFlagged", sybil.Patterns.IsPotentialSybil).
		Float64("combinedMultiplier", combined).
		Int("totalScore", totalScore).
		Str("tier", string(data.Tier)).
		Msg("Reputation calculation completed")

	return data, nil
}

// computeMetrics fans out every calculator and joins on all of them. Each
// goroutine writes only its own slice index, so results are order-stable
// without shared mutable state.
func (c *Calculator) computeMetrics(ctx context.Context, input types.ScoreInput) []types.MetricScore {
	results := make([]types.MetricScore, len(c.calculators))

	var wg sync.WaitGroup
	for i, calculator := range c.calculators {
		wg.Add(1)
		go func(i int, calculator metrics.Calculator) {
			defer wg.Done()
			results[i] = calculator.Calculate(ctx, input)
		}(i, calculator)
	}
	wg.Wait()

	return results
}

// evaluateSybil gathers identity signals and runs the additive multiplier
// model. Every signal fails open to its default on lookup error.
func (c *Calculator) evaluateSybil(ctx context.Context, input types.ScoreInput, metricScores []types.MetricScore) types.SybilResistanceResult {
	txData := c.txData.Lookup(ctx, input.Address)

	walletAgeMonths := 0.0
	if txData.FirstTxTimestamp > 0 {
		walletAgeMonths = time.Since(time.Unix(txData.FirstTxTimestamp, 0)).Hours() / 24 / daysPerMonth
	}

	linkedCount := 1 + len(input.LinkedWallets)
	hasSignature := false
	if c.wallets != nil {
		storedCount, storedSignature := c.wallets.LinkedWallets(ctx, input.Address)
		if storedCount > linkedCount {
			linkedCount = storedCount
		}
		hasSignature = storedSignature
	}

	factors := types.SybilFactors{
		LinkedWalletCount:   linkedCount,
		WalletAgeMonths:     walletAgeMonths,
		HasLinkingSignature: hasSignature,
		FarcasterLinked:     types.MetricScoreByName(metricScores, types.MetricFarcaster) > 0,
	}
	if c.verifier != nil {
		factors.CoinbaseVerified = c.verifier.Verify(ctx, input.Address)
	}
	if c.passport != nil {
		if score := c.passport.Score(ctx, input.Address); score != nil {
			factors.HasPassportScore = true
			factors.GitcoinPassportScore = *score
		}
	}

	patterns := identity.DetectSybilPatterns(factors, txData.TransactionCount)

	result := identity.EvaluateSybilResistance(factors)
	result.Patterns = patterns
	return result
}

func (c *Calculator) liquidityDuration(ctx context.Context, address types.Address) int {
	if c.defi == nil {
		return 0
	}
	stored, err := c.defi.GetDefiMetrics(ctx, address)
	if err != nil || stored == nil {
		return 0
	}
	return stored.LiquidityDurationDays
}

// persist writes the derived records. Failures are warnings; the in-memory
// result is already complete and must not be affected.
func (c *Calculator) persist(ctx context.Context, address types.Address, vector types.EconomicVector, analysis types.TransactionAnalysis) {
	if c.vectors != nil {
		if err := c.vectors.UpsertEconomicVector(ctx, address, vector); err != nil {
			aggregatorLogger.Warn().
				Err(err).
				Str("address", address.Short()).
				Msg("Failed to persist economic vector")
		}
	}

	if c.defi != nil {
		summary := summarizeAnalysis(address, analysis)
		if err := c.defi.UpsertDefiMetrics(ctx, summary); err != nil {
			aggregatorLogger.Warn().
				Err(err).
				Str("address", address.Short()).
				Msg("Failed to persist defi metrics")
		}
	}
}

// summarizeAnalysis reduces the ephemeral analysis into the persisted
// DefiMetrics record.
func summarizeAnalysis(address types.Address, a types.TransactionAnalysis) types.DefiMetrics {
	categories := make([]string, 0, len(a.ProtocolCategories))
	for category := range a.ProtocolCategories {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	return types.DefiMetrics{
		Address:            address,
		UniqueProtocols:    len(a.UniqueProtocols),
		VintageContracts:   a.VintageContracts,
		ProtocolCategories: categories,
		TotalInteractions:  a.TransactionCount,
		GasUsedETH:         a.GasUsedETH,
		VolumeUSD:          a.TotalVolumeUSD,
		CapitalTier:        analyzer.CapitalTier(a.TotalVolumeUSD),
		LastUpdated:        time.Now(),
	}
}
