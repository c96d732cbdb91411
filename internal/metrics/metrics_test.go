package metrics

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/baserep/baserep/internal/chain"
	"github.com/baserep/baserep/internal/identity"
	"github.com/baserep/baserep/internal/nftapi"
	"github.com/baserep/baserep/internal/types"
)

const testAddr = types.Address("0x1111111111111111111111111111111111111111")

func testInput() types.ScoreInput {
	return types.ScoreInput{Address: testAddr}
}

type stubTxData struct {
	data chain.TxData
}

func (s stubTxData) Lookup(context.Context, types.Address) chain.TxData {
	return s.data
}

type stubMints struct {
	mints      int
	stats      nftapi.CreatorStats
	err        error
	configured bool
}

func (s stubMints) MintCount(context.Context, types.Address) (int, error) {
	return s.mints, s.err
}

func (s stubMints) Creator(context.Context, types.Address) (nftapi.CreatorStats, error) {
	return s.stats, s.err
}

func (s stubMints) Configured() bool { return s.configured }

type stubDeployments struct {
	count      int
	err        error
	configured bool
}

func (s stubDeployments) ContractDeployments(context.Context, types.Address) (int, error) {
	return s.count, s.err
}

func (s stubDeployments) Configured() bool { return s.configured }

type stubBadges struct {
	attestations []identity.Attestation
	err          error
}

func (s stubBadges) Attestations(context.Context, string, types.Address) ([]identity.Attestation, error) {
	return s.attestations, s.err
}

func firstTxDaysAgo(days int) int64 {
	return time.Now().Add(-time.Duration(days) * 24 * time.Hour).Unix()
}

func TestTenureCapsAtMaxScore(t *testing.T) {
	calc := NewTenureCalculator(stubTxData{chain.TxData{
		TransactionCount: 40,
		FirstTxTimestamp: firstTxDaysAgo(365),
	}})

	score := calc.Calculate(context.Background(), testInput())

	// 365 days of tenure caps at the metric max of 150.
	assert.Equal(t, 150.0, score.Score)
	assert.Equal(t, 150.0, score.MaxScore)
	assert.Equal(t, types.MetricTenure, score.Name)
}

func TestTenureBelowCap(t *testing.T) {
	calc := NewTenureCalculator(stubTxData{chain.TxData{
		TransactionCount: 5,
		FirstTxTimestamp: firstTxDaysAgo(90),
	}})

	score := calc.Calculate(context.Background(), testInput())
	assert.Equal(t, 90.0, score.Score)
}

func TestTenureNoHistoryDegradesToZero(t *testing.T) {
	calc := NewTenureCalculator(stubTxData{})
	score := calc.Calculate(context.Background(), testInput())
	assert.Equal(t, 0.0, score.Score)
	assert.Equal(t, types.MetricTenure, score.Name)
}

func TestTimelinessCombinesRateAndRecency(t *testing.T) {
	// 20 txs over 10 days: consistency min(50, 2*10)=20, recency 30.
	calc := NewTimelinessCalculator(stubTxData{chain.TxData{
		TransactionCount: 20,
		FirstTxTimestamp: firstTxDaysAgo(10),
	}})

	score := calc.Calculate(context.Background(), testInput())
	assert.Equal(t, 50.0, score.Score)
}

func TestTimelinessConsistencyCapped(t *testing.T) {
	// 1000 txs in one day maxes the consistency component at 50, plus 30
	// recency, capped by maxScore 80.
	calc := NewTimelinessCalculator(stubTxData{chain.TxData{
		TransactionCount: 1000,
		FirstTxTimestamp: firstTxDaysAgo(1),
	}})

	score := calc.Calculate(context.Background(), testInput())
	assert.Equal(t, 80.0, score.Score)
}

func TestTimelinessNoHistory(t *testing.T) {
	calc := NewTimelinessCalculator(stubTxData{})
	score := calc.Calculate(context.Background(), testInput())
	assert.Equal(t, 0.0, score.Score)
}

func TestEarlyAdopterTiers(t *testing.T) {
	testCases := []struct {
		name          string
		daysAfterLaunch int64
		expected      float64
	}{
		{name: "first week", daysAfterLaunch: 5, expected: 50},
		{name: "first month", daysAfterLaunch: 20, expected: 40},
		{name: "first quarter", daysAfterLaunch: 60, expected: 30},
		{name: "first half year", daysAfterLaunch: 150, expected: 20},
		{name: "first year", daysAfterLaunch: 300, expected: 10},
		{name: "late arrival", daysAfterLaunch: 800, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			calc := NewEarlyAdopterCalculator(stubTxData{chain.TxData{
				TransactionCount: 1,
				FirstTxTimestamp: types.BaseLaunchTimestamp + tc.daysAfterLaunch*86400,
			}})

			score := calc.Calculate(context.Background(), testInput())
			assert.Equal(t, tc.expected, score.Score)
		})
	}
}

func TestEarlyAdopterNoHistory(t *testing.T) {
	calc := NewEarlyAdopterCalculator(stubTxData{})
	score := calc.Calculate(context.Background(), testInput())
	assert.Equal(t, 0.0, score.Score)
}

func TestBuilderDeploymentTiers(t *testing.T) {
	testCases := []struct {
		deployments int
		expected    float64
	}{
		{deployments: 12, expected: 200},
		{deployments: 10, expected: 200},
		{deployments: 7, expected: 150},
		{deployments: 3, expected: 100},
		{deployments: 1, expected: 50},
	}

	for _, tc := range testCases {
		calc := NewBuilderCalculator(
			stubDeployments{count: tc.deployments, configured: true},
			stubTxData{},
		)
		score := calc.Calculate(context.Background(), testInput())
		assert.Equal(t, tc.expected, score.Score, "deployments=%d", tc.deployments)
	}
}

func TestBuilderTransactionCountProxy(t *testing.T) {
	// No deployment detection available: high activity earns only the
	// small proxy credit.
	calc := NewBuilderCalculator(
		stubDeployments{configured: false},
		stubTxData{chain.TxData{TransactionCount: 150}},
	)
	score := calc.Calculate(context.Background(), testInput())
	assert.Equal(t, 10.0, score.Score)

	calc = NewBuilderCalculator(
		stubDeployments{configured: false},
		stubTxData{chain.TxData{TransactionCount: 60}},
	)
	assert.Equal(t, 5.0, calc.Calculate(context.Background(), testInput()).Score)

	calc = NewBuilderCalculator(
		stubDeployments{configured: false},
		stubTxData{chain.TxData{TransactionCount: 10}},
	)
	assert.Equal(t, 0.0, calc.Calculate(context.Background(), testInput()).Score)
}

func TestBuilderDetectionErrorFallsBackToProxy(t *testing.T) {
	calc := NewBuilderCalculator(
		stubDeployments{err: errors.New("explorer down"), configured: true},
		stubTxData{chain.TxData{TransactionCount: 150}},
	)
	score := calc.Calculate(context.Background(), testInput())
	assert.Equal(t, 10.0, score.Score)
}

func TestZoraMintsScoring(t *testing.T) {
	calc := NewZoraMintsCalculator(stubMints{mints: 30, configured: true})
	assert.Equal(t, 60.0, calc.Calculate(context.Background(), testInput()).Score)

	// 70 mints would be 140, capped at 120.
	calc = NewZoraMintsCalculator(stubMints{mints: 70, configured: true})
	assert.Equal(t, 120.0, calc.Calculate(context.Background(), testInput()).Score)
}

func TestZoraMintsDegradesWithoutAPI(t *testing.T) {
	calc := NewZoraMintsCalculator(stubMints{mints: 30, configured: false})
	assert.Equal(t, 0.0, calc.Calculate(context.Background(), testInput()).Score)
}

func TestZoraMintsDegradesOnError(t *testing.T) {
	calc := NewZoraMintsCalculator(stubMints{err: errors.New("rate limited"), configured: true})
	assert.Equal(t, 0.0, calc.Calculate(context.Background(), testInput()).Score)
}

func TestCreatorScoring(t *testing.T) {
	// 3 collections = 30, volume 999 ETH gives log10(1000)*5 = 15.
	calc := NewCreatorCalculator(stubMints{
		stats:      nftapi.CreatorStats{Collections: 3, TotalVolumeETH: 999},
		configured: true,
	})
	score := calc.Calculate(context.Background(), testInput())
	assert.InDelta(t, 45.0, score.Score, 0.01)
}

func TestCreatorCollectionCap(t *testing.T) {
	calc := NewCreatorCalculator(stubMints{
		stats:      nftapi.CreatorStats{Collections: 20},
		configured: true,
	})
	assert.Equal(t, 60.0, calc.Calculate(context.Background(), testInput()).Score)
}

func TestOnchainSummerBadges(t *testing.T) {
	badges := stubBadges{attestations: []identity.Attestation{{}, {}, {}}}
	calc := NewOnchainSummerCalculator(badges, "0xschema")
	assert.Equal(t, 60.0, calc.Calculate(context.Background(), testInput()).Score)

	// Five badges would be 100, capped at 80.
	badges = stubBadges{attestations: []identity.Attestation{{}, {}, {}, {}, {}}}
	calc = NewOnchainSummerCalculator(badges, "0xschema")
	assert.Equal(t, 80.0, calc.Calculate(context.Background(), testInput()).Score)
}

func TestOnchainSummerUnconfiguredSchema(t *testing.T) {
	calc := NewOnchainSummerCalculator(stubBadges{}, "")
	assert.Equal(t, 0.0, calc.Calculate(context.Background(), testInput()).Score)
}

func TestHackathonPlacements(t *testing.T) {
	badges := stubBadges{attestations: []identity.Attestation{
		{DecodedDataJSON: `{"placement":"Winner"}`},
	}}
	calc := NewHackathonCalculator(badges, "0xschema")
	assert.Equal(t, 50.0, calc.Calculate(context.Background(), testInput()).Score)

	badges = stubBadges{attestations: []identity.Attestation{
		{DecodedDataJSON: `{"placement":"finalist"}`},
		{DecodedDataJSON: `{"placement":"submission"}`},
	}}
	calc = NewHackathonCalculator(badges, "0xschema")
	assert.Equal(t, 50.0, calc.Calculate(context.Background(), testInput()).Score)

	// Winner plus finalist would be 80, capped at the metric max of 70.
	badges = stubBadges{attestations: []identity.Attestation{
		{DecodedDataJSON: `{"placement":"winner"}`},
		{DecodedDataJSON: `{"placement":"finalist"}`},
	}}
	calc = NewHackathonCalculator(badges, "0xschema")
	assert.Equal(t, 70.0, calc.Calculate(context.Background(), testInput()).Score)
}

type stubAnalysis struct {
	analysis types.TransactionAnalysis
}

func (s stubAnalysis) Analyze(context.Context, types.Address) types.TransactionAnalysis {
	return s.analysis
}

func TestDefiCompositeScore(t *testing.T) {
	analysis := types.TransactionAnalysis{
		UniqueProtocols: map[string]struct{}{
			"Uniswap V3": {}, "Aerodrome": {}, "Aave V3": {}, "Morpho": {},
		},
		ProtocolCategories: map[string]struct{}{"dex": {}, "lending": {}, "bridge": {}},
		VintageContracts:   2,
		TotalVolumeUSD:     50000,
		TransactionCount:   250,
	}

	calc := NewDefiCalculator(stubAnalysis{analysis})
	score := calc.Calculate(context.Background(), testInput())

	// protocols 30 (capped) + vintage 10 + categories 15 + volume 10 +
	// frequency 25 = 90.
	assert.Equal(t, 90.0, score.Score)
	assert.Equal(t, 100.0, score.MaxScore)
}

func TestDefiEmptyAnalysis(t *testing.T) {
	calc := NewDefiCalculator(stubAnalysis{types.TransactionAnalysis{
		UniqueProtocols:    map[string]struct{}{},
		ProtocolCategories: map[string]struct{}{},
	}})
	assert.Equal(t, 0.0, calc.Calculate(context.Background(), testInput()).Score)
}

func TestBoundedRejectsNonFinite(t *testing.T) {
	nan := bounded("test", 10, 100, math.NaN())
	assert.Equal(t, 0.0, nan.Score)

	inf := bounded("test", 10, 100, math.Inf(1))
	assert.Equal(t, 0.0, inf.Score)

	negative := bounded("test", 10, 100, -5)
	assert.Equal(t, 0.0, negative.Score)

	over := bounded("test", 10, 100, 150)
	assert.Equal(t, 100.0, over.Score)
}
