package chain

import (
	"context"
	"encoding/json"

	"github.com/baserep/baserep/internal/cache"
	"github.com/baserep/baserep/internal/config"
	"github.com/baserep/baserep/internal/logger"
	"github.com/baserep/baserep/internal/types"
)

var txDataLogger = logger.GetForComponent("tx_data")

// TxData is the cached per-address transaction summary shared by the tenure,
// timeliness, early-adopter, analyzer, and Sybil components.
type TxData struct {
	TransactionCount int   `json:"transaction_count"`
	FirstTxTimestamp int64 `json:"first_tx_timestamp"`
}

// TxDataProvider resolves TxData through the long-lived transaction cache,
// falling back to RPC on a miss. The cache cuts RPC call volume sharply for
// repeat scoring of the same address.
type TxDataProvider struct {
	reader Reader
	cache  cache.Cache
}

// NewTxDataProvider wires a chain reader with a cache backend.
func NewTxDataProvider(reader Reader, c cache.Cache) *TxDataProvider {
	return &TxDataProvider{reader: reader, cache: c}
}

// Lookup returns the transaction summary for an address. Never fails: a cold
// cache plus a failing RPC yields the zero TxData.
func (p *TxDataProvider) Lookup(ctx context.Context, address types.Address) TxData {
	key := cache.TransactionKey(address.String())

	if raw, ok, err := p.cache.Get(ctx, key); err == nil && ok {
		var data TxData
		if err := json.Unmarshal(raw, &data); err == nil {
			return data
		}
		txDataLogger.Warn().Str("address", address.Short()).Msg("Corrupt transaction cache entry, refetching")
	} else if err != nil {
		txDataLogger.Warn().Err(err).Str("address", address.Short()).Msg("Transaction cache read failed")
	}

	data := TxData{
		TransactionCount: p.reader.TransactionCount(ctx, address),
		FirstTxTimestamp: p.reader.FirstTransactionTimestamp(ctx, address),
	}

	// Only cache a useful result: an address with activity but no located
	// first transaction is a degraded lookup worth retrying soon.
	if data.TransactionCount == 0 || data.FirstTxTimestamp > 0 {
		if raw, err := json.Marshal(data); err == nil {
			if err := p.cache.Set(ctx, key, raw, config.TransactionCacheTTL); err != nil {
				txDataLogger.Warn().Err(err).Str("address", address.Short()).Msg("Transaction cache write failed")
			}
		}
	}

	return data
}
