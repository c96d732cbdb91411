/*

This file contains the DeFi/transaction analyzer. Two analysis paths exist
behind the ANALYSIS_MODE capability flag: an exact scan over explorer
transaction lists, and a statistical estimation model driven only by the
cached transaction count. Either path fills every TransactionAnalysis field
with a non-negative value.

*/

package analyzer

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/baserep/baserep/internal/chain"
	"github.com/baserep/baserep/internal/config"
	"github.com/baserep/baserep/internal/explorer"
	"github.com/baserep/baserep/internal/logger"
	"github.com/baserep/baserep/internal/types"
)

var analyzerLogger = logger.GetForComponent("analyzer")

// ethPriceUSDFallback prices volume when no oracle is wired in.
const ethPriceUSDFallback = 2500.0

const weiPerEth = 1e18

// TxDataSource supplies the cached transaction count and first-transaction
// timestamp.
type TxDataSource interface {
	Lookup(ctx context.Context, address types.Address) chain.TxData
}

// TransactionSource supplies real transaction lists for the exact-scan path.
type TransactionSource interface {
	Transactions(ctx context.Context, address types.Address) ([]explorer.Transaction, error)
	Configured() bool
}

// memoTTL keeps one analysis per address alive long enough for the DeFi
// metric and the vector composer, which both need it during a single
// calculation, to share a fetch.
const memoTTL = time.Minute

type memoEntry struct {
	analysis  types.TransactionAnalysis
	fetchedAt time.Time
}

// Analyzer derives a TransactionAnalysis for an address.
type Analyzer struct {
	txData   TxDataSource
	explorer TransactionSource
	mode     string

	mu   sync.Mutex
	memo map[types.Address]memoEntry
}

// NewAnalyzer builds an analyzer. The explorer source may be nil; the
// estimation path is then the only one available.
func NewAnalyzer(txData TxDataSource, source TransactionSource, mode string) *Analyzer {
	return &Analyzer{
		txData:   txData,
		explorer: source,
		mode:     mode,
		memo:     make(map[types.Address]memoEntry),
	}
}

// Analyze produces the transaction analysis for an address. The scan path is
// used when selected and available; any scan failure falls back to
// estimation so the analysis is always populated.
func (a *Analyzer) Analyze(ctx context.Context, address types.Address) types.TransactionAnalysis {
	a.mu.Lock()
	if entry, ok := a.memo[address]; ok && time.Since(entry.fetchedAt) < memoTTL {
		a.mu.Unlock()
		return entry.analysis
	}
	a.mu.Unlock()

	analysis := a.analyze(ctx, address)

	a.mu.Lock()
	a.memo[address] = memoEntry{analysis: analysis, fetchedAt: time.Now()}
	a.mu.Unlock()

	return analysis
}

func (a *Analyzer) analyze(ctx context.Context, address types.Address) types.TransactionAnalysis {
	if a.mode == config.AnalysisModeScan && a.explorer != nil && a.explorer.Configured() {
		analysis, err := a.scan(ctx, address)
		if err == nil {
			return analysis
		}
		analyzerLogger.Warn().
			Err(err).
			Str("address", address.Short()).
			Msg("Transaction scan failed, falling back to estimation")
	}

	txCount := a.txData.Lookup(ctx, address).TransactionCount
	return Estimate(txCount, time.Now())
}

// scan walks the real transaction list, classifying counterparties against
// the protocol registry.
func (a *Analyzer) scan(ctx context.Context, address types.Address) (types.TransactionAnalysis, error) {
	txs, err := a.explorer.Transactions(ctx, address)
	if err != nil {
		return types.TransactionAnalysis{}, err
	}

	now := time.Now()
	analysis := newEmptyAnalysis()
	analysis.TransactionCount = len(txs)

	vintageSeen := make(map[string]struct{})

	for _, tx := range txs {
		valueETH := tx.ValueWei() / weiPerEth
		analysis.TotalVolumeETH += valueETH
		analysis.GasUsedETH += tx.GasCostWei() / weiPerEth

		protocol, known := LookupProtocol(strings.ToLower(tx.To))
		if !known {
			continue
		}

		analysis.UniqueProtocols[protocol.Name] = struct{}{}
		analysis.ProtocolCategories[protocol.Category] = struct{}{}
		analysis.DefiVolumeUSD += valueETH * ethPriceUSDFallback
		analysis.CapitalDeployed += valueETH * ethPriceUSDFallback

		if isVintage(protocol, now) {
			vintageSeen[protocol.Name] = struct{}{}
		}
	}

	analysis.VintageContracts = len(vintageSeen)
	analysis.TotalVolumeUSD = analysis.TotalVolumeETH * ethPriceUSDFallback

	analyzerLogger.Debug().
		Str("address", address.Short()).
		Int("transactions", analysis.TransactionCount).
		Int("protocols", len(analysis.UniqueProtocols)).
		Float64("volumeUSD", analysis.TotalVolumeUSD).
		Msg("Transaction scan completed")

	return analysis, nil
}

// Estimate builds a statistical analysis from the transaction count alone.
// Average value, gas, and DeFi share are tiered on activity level; protocol
// exposure is sampled deterministically from the registry.
func Estimate(txCount int, now time.Time) types.TransactionAnalysis {
	analysis := newEmptyAnalysis()
	if txCount <= 0 {
		return analysis
	}
	analysis.TransactionCount = txCount

	avgTxValueETH := estimatedAvgTxValue(txCount)
	analysis.TotalVolumeETH = float64(txCount) * avgTxValueETH
	analysis.TotalVolumeUSD = analysis.TotalVolumeETH * ethPriceUSDFallback

	defiShare := 0.3
	if txCount > 100 {
		defiShare = 0.5
	}
	analysis.DefiVolumeUSD = analysis.TotalVolumeUSD * defiShare

	gasPerTx := 0.001
	if txCount > 100 {
		gasPerTx = 0.002
	}
	analysis.GasUsedETH = float64(txCount) * gasPerTx

	// 15-30% of the DeFi share, not total volume, is assumed locked.
	if analysis.DefiVolumeUSD > 0 {
		capitalRatio := 0.15
		if txCount > 200 {
			capitalRatio = 0.3
		}
		analysis.CapitalDeployed = analysis.DefiVolumeUSD * capitalRatio
	}

	protocolCount := estimatedProtocolCount(txCount)
	for _, protocol := range registryByName()[:protocolCount] {
		analysis.UniqueProtocols[protocol.Name] = struct{}{}
		analysis.ProtocolCategories[protocol.Category] = struct{}{}
		if isVintage(protocol, now) {
			analysis.VintageContracts++
		}
	}

	return analysis
}

func estimatedAvgTxValue(txCount int) float64 {
	switch {
	case txCount > 1000:
		return 0.05
	case txCount > 500:
		return 0.02
	case txCount > 100:
		return 0.01
	case txCount > 50:
		return 0.008
	default:
		return 0.005
	}
}

func estimatedProtocolCount(txCount int) int {
	estimate := int(math.Floor(math.Log10(float64(txCount)+1) * 2))
	if estimate < 1 {
		estimate = 1
	}
	if estimate > RegistrySize() {
		estimate = RegistrySize()
	}
	return estimate
}

func newEmptyAnalysis() types.TransactionAnalysis {
	return types.TransactionAnalysis{
		UniqueProtocols:    make(map[string]struct{}),
		ProtocolCategories: make(map[string]struct{}),
	}
}
