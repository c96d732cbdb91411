/*

This file contains the Sybil resistance evaluator. Identity evidence is
converted into an additive multiplier in [1.0, 1.7] applied to the economic
multiplier, plus an advisory pattern report that never gates scoring.

*/

package identity

import (
	"math"

	"github.com/baserep/baserep/internal/logger"
	"github.com/baserep/baserep/internal/types"
)

var sybilLogger = logger.GetForComponent("sybil")

const (
	// SybilMultiplierMin is the floor for addresses with no identity evidence.
	SybilMultiplierMin = 1.0
	// SybilMultiplierMax caps the multiplier when every signal is present.
	SybilMultiplierMax = 1.7

	coinbaseBonus       = 0.2
	walletBonusPerLink  = 0.1
	walletBonusCap      = 0.3
	walletAgeBonus      = 0.1
	walletAgeMinMonths  = 12
	signatureBonus      = 0.05
	passportBonus       = 0.1
	passportMinScore    = 20
	farcasterLinkBonus  = 0.05
)

// EvaluateSybilResistance converts identity factors into the Sybil
// multiplier. Each signal contributes an independent additive bonus; the sum
// is clamped to [1.0, 1.7].
func EvaluateSybilResistance(factors types.SybilFactors) types.SybilResistanceResult {
	breakdown := types.SybilBreakdown{}

	if factors.CoinbaseVerified {
		breakdown.CoinbaseBonus = coinbaseBonus
	}
	if factors.LinkedWalletCount > 1 {
		breakdown.WalletCountBonus = math.Min(walletBonusCap, float64(factors.LinkedWalletCount-1)*walletBonusPerLink)
	}
	if factors.WalletAgeMonths >= walletAgeMinMonths {
		breakdown.WalletAgeBonus = walletAgeBonus
	}
	if factors.HasLinkingSignature {
		breakdown.SignatureBonus = signatureBonus
	}
	if factors.HasPassportScore && factors.GitcoinPassportScore > passportMinScore {
		breakdown.PassportBonus = passportBonus
	}
	if factors.FarcasterLinked {
		breakdown.FarcasterBonus = farcasterLinkBonus
	}

	multiplier := SybilMultiplierMin +
		breakdown.CoinbaseBonus +
		breakdown.WalletCountBonus +
		breakdown.WalletAgeBonus +
		breakdown.SignatureBonus +
		breakdown.PassportBonus +
		breakdown.FarcasterBonus

	if multiplier > SybilMultiplierMax {
		multiplier = SybilMultiplierMax
	}
	if multiplier < SybilMultiplierMin {
		multiplier = SybilMultiplierMin
	}

	sybilLogger.Debug().
		Float64("multiplier", multiplier).
		Bool("coinbaseVerified", factors.CoinbaseVerified).
		Int("linkedWallets", factors.LinkedWalletCount).
		Float64("walletAgeMonths", factors.WalletAgeMonths).
		Msg("Sybil resistance evaluated")

	return types.SybilResistanceResult{
		Multiplier: multiplier,
		Factors:    factors,
		Breakdown:  breakdown,
	}
}

// DetectSybilPatterns runs advisory heuristics over identity factors and
// transaction history. The report is logged and surfaced but never changes
// the score.
func DetectSybilPatterns(factors types.SybilFactors, transactionCount int) types.SybilPatternReport {
	report := types.SybilPatternReport{Indicators: []string{}}

	ageDays := factors.WalletAgeMonths * 30

	if ageDays < 30 && transactionCount > 100 {
		report.RiskScore += 0.3
		report.Indicators = append(report.Indicators, "new wallet with unusually high activity")
	}
	if ageDays < 30 {
		report.RiskScore += 0.1
		report.Indicators = append(report.Indicators, "wallet younger than 30 days")
	}
	if transactionCount == 0 {
		report.RiskScore += 0.2
		report.Indicators = append(report.Indicators, "no transaction history")
	}
	if !factors.CoinbaseVerified {
		report.RiskScore += 0.2
		report.Indicators = append(report.Indicators, "no coinbase verification")
	}
	if factors.LinkedWalletCount <= 1 {
		report.RiskScore += 0.1
		report.Indicators = append(report.Indicators, "no linked wallets")
	}

	report.IsPotentialSybil = report.RiskScore >= 0.5

	if report.IsPotentialSybil {
		sybilLogger.Info().
			Float64("riskScore", report.RiskScore).
			Strs("indicators", report.Indicators).
			Msg("Potential Sybil pattern detected")
	}

	return report
}
