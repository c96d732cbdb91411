/*

This file contains the JSON-RPC chain client. First-transaction timestamps
are located by binary search over historical nonces, which is an estimate:
exact first-transaction data would come from an indexer.

*/

package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/baserep/baserep/internal/config"
	"github.com/baserep/baserep/internal/logger"
	"github.com/baserep/baserep/internal/types"
)

var chainLogger = logger.GetForComponent("chain_client")

// Reader exposes the two chain lookups the scoring pipeline needs. Both are
// resilient: any RPC failure degrades to the zero value and is logged, never
// surfaced to metric calculators.
type Reader interface {
	// TransactionCount returns the address nonce, or 0 on failure.
	TransactionCount(ctx context.Context, address types.Address) int
	// FirstTransactionTimestamp returns the unix timestamp of the earliest
	// detected activity, or 0 when the address has no transactions or the
	// lookup failed.
	FirstTransactionTimestamp(ctx context.Context, address types.Address) int64
}

// RPC is the ethclient-backed Reader.
type RPC struct {
	client *ethclient.Client
}

// Dial connects to the configured chain RPC endpoint.
func Dial(rpcURL string) (*RPC, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, err
	}
	chainLogger.Info().Str("endpoint", rpcURL).Msg("Chain RPC connected")
	return &RPC{client: client}, nil
}

// NewRPC wraps an existing ethclient, mainly for tests.
func NewRPC(client *ethclient.Client) *RPC {
	return &RPC{client: client}
}

// TransactionCount returns the current nonce for an address.
func (r *RPC) TransactionCount(ctx context.Context, address types.Address) int {
	ctx, cancel := context.WithTimeout(ctx, config.ExternalCallTimeout)
	defer cancel()

	nonce, err := r.client.NonceAt(ctx, common.HexToAddress(address.String()), nil)
	if err != nil {
		chainLogger.Warn().
			Err(err).
			Str("address", address.Short()).
			Msg("Transaction count lookup failed, degrading to zero")
		return 0
	}
	return int(nonce)
}

// FirstTransactionTimestamp binary-searches historical nonces for the first
// block at which the address had sent a transaction, then returns that
// block's timestamp. Requires archive state for old blocks; on any failure
// the search window narrows and the result degrades toward an estimate from
// the best block found, or 0 when nothing can be established.
func (r *RPC) FirstTransactionTimestamp(ctx context.Context, address types.Address) int64 {
	ctx, cancel := context.WithTimeout(ctx, config.ExternalCallTimeout)
	defer cancel()

	addr := common.HexToAddress(address.String())

	currentNonce, err := r.client.NonceAt(ctx, addr, nil)
	if err != nil {
		chainLogger.Warn().
			Err(err).
			Str("address", address.Short()).
			Msg("Nonce lookup failed during first-transaction search")
		return 0
	}
	if currentNonce == 0 {
		return 0 // no transactions
	}

	head, err := r.client.HeaderByNumber(ctx, nil)
	if err != nil {
		chainLogger.Warn().Err(err).Msg("Head header lookup failed")
		return 0
	}

	low := big.NewInt(0)
	high := new(big.Int).Set(head.Number)
	var firstBlock *big.Int

	// Binary search for the earliest block with nonce > 0. Each probe is one
	// historical NonceAt call, so the loop is O(log head).
	for low.Cmp(high) <= 0 {
		mid := new(big.Int).Add(low, high)
		mid.Rsh(mid, 1)

		nonce, err := r.client.NonceAt(ctx, addr, mid)
		if err != nil {
			// Non-archive nodes reject old blocks; move the window forward.
			low = new(big.Int).Add(mid, big.NewInt(1))
			continue
		}

		if nonce > 0 {
			firstBlock = new(big.Int).Set(mid)
			high = new(big.Int).Sub(mid, big.NewInt(1))
		} else {
			low = new(big.Int).Add(mid, big.NewInt(1))
		}
	}

	if firstBlock == nil {
		chainLogger.Debug().
			Str("address", address.Short()).
			Msg("First-transaction search found no usable block, degrading to zero")
		return 0
	}

	header, err := r.client.HeaderByNumber(ctx, firstBlock)
	if err != nil {
		chainLogger.Warn().
			Err(err).
			Str("address", address.Short()).
			Str("block", firstBlock.String()).
			Msg("Header lookup for first-transaction block failed")
		return 0
	}

	chainLogger.Debug().
		Str("address", address.Short()).
		Str("block", firstBlock.String()).
		Uint64("timestamp", header.Time).
		Msg("First transaction located")

	return int64(header.Time)
}
