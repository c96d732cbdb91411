package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baserep/baserep/internal/types"
)

func TestEvaluateSybilResistanceNoEvidence(t *testing.T) {
	result := EvaluateSybilResistance(types.SybilFactors{LinkedWalletCount: 1})
	assert.Equal(t, 1.0, result.Multiplier)
	assert.Equal(t, types.SybilBreakdown{}, result.Breakdown)
}

func TestEvaluateSybilResistanceAllSignalsCapAtMax(t *testing.T) {
	// Every bonus present: 1.0 + 0.2 + 0.2 + 0.1 + 0.05 + 0.1 + 0.05 = 1.7.
	factors := types.SybilFactors{
		CoinbaseVerified:     true,
		LinkedWalletCount:    3,
		WalletAgeMonths:      14,
		HasLinkingSignature:  true,
		GitcoinPassportScore: 25,
		HasPassportScore:     true,
		FarcasterLinked:      true,
	}

	result := EvaluateSybilResistance(factors)
	assert.InDelta(t, 1.7, result.Multiplier, 1e-9)
	assert.Equal(t, 0.2, result.Breakdown.CoinbaseBonus)
	assert.InDelta(t, 0.2, result.Breakdown.WalletCountBonus, 1e-9)
	assert.Equal(t, 0.1, result.Breakdown.WalletAgeBonus)
	assert.Equal(t, 0.05, result.Breakdown.SignatureBonus)
	assert.Equal(t, 0.1, result.Breakdown.PassportBonus)
	assert.Equal(t, 0.05, result.Breakdown.FarcasterBonus)
}

func TestEvaluateSybilResistanceWalletBonusCapped(t *testing.T) {
	result := EvaluateSybilResistance(types.SybilFactors{LinkedWalletCount: 10})
	assert.InDelta(t, 0.3, result.Breakdown.WalletCountBonus, 1e-9)
}

func TestEvaluateSybilResistancePassportThreshold(t *testing.T) {
	// A passport at or below 20 earns nothing.
	atThreshold := EvaluateSybilResistance(types.SybilFactors{
		HasPassportScore:     true,
		GitcoinPassportScore: 20,
	})
	assert.Equal(t, 0.0, atThreshold.Breakdown.PassportBonus)

	aboveThreshold := EvaluateSybilResistance(types.SybilFactors{
		HasPassportScore:     true,
		GitcoinPassportScore: 20.5,
	})
	assert.Equal(t, 0.1, aboveThreshold.Breakdown.PassportBonus)

	// A high score without a passport record earns nothing either.
	noPassport := EvaluateSybilResistance(types.SybilFactors{GitcoinPassportScore: 99})
	assert.Equal(t, 0.0, noPassport.Breakdown.PassportBonus)
}

func TestEvaluateSybilResistanceBounds(t *testing.T) {
	testCases := []types.SybilFactors{
		{},
		{LinkedWalletCount: -5},
		{WalletAgeMonths: 11.9},
		{CoinbaseVerified: true, LinkedWalletCount: 100, WalletAgeMonths: 600,
			HasLinkingSignature: true, GitcoinPassportScore: 100, HasPassportScore: true,
			FarcasterLinked: true},
	}

	for _, factors := range testCases {
		result := EvaluateSybilResistance(factors)
		assert.GreaterOrEqual(t, result.Multiplier, SybilMultiplierMin)
		assert.LessOrEqual(t, result.Multiplier, SybilMultiplierMax)
	}
}

func TestDetectSybilPatternsFlagsNewUnverifiedWallet(t *testing.T) {
	// Fresh wallet, high activity, unverified, unlinked: 0.3+0.1+0.2+0.1.
	report := DetectSybilPatterns(types.SybilFactors{WalletAgeMonths: 0.5, LinkedWalletCount: 1}, 500)

	assert.True(t, report.IsPotentialSybil)
	assert.InDelta(t, 0.7, report.RiskScore, 1e-9)
	assert.Contains(t, report.Indicators, "new wallet with unusually high activity")
}

func TestDetectSybilPatternsEstablishedWallet(t *testing.T) {
	report := DetectSybilPatterns(types.SybilFactors{
		CoinbaseVerified:  true,
		WalletAgeMonths:   24,
		LinkedWalletCount: 3,
	}, 50)

	assert.False(t, report.IsPotentialSybil)
	assert.Equal(t, 0.0, report.RiskScore)
	assert.Empty(t, report.Indicators)
}

func TestDetectSybilPatternsNoHistory(t *testing.T) {
	report := DetectSybilPatterns(types.SybilFactors{
		CoinbaseVerified:  true,
		WalletAgeMonths:   24,
		LinkedWalletCount: 2,
	}, 0)

	assert.False(t, report.IsPotentialSybil)
	assert.InDelta(t, 0.2, report.RiskScore, 1e-9)
	assert.Contains(t, report.Indicators, "no transaction history")
}
