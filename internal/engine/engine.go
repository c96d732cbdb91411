/*

This file contains the freshness-aware entry point wrapping the aggregator.
A persisted reputation younger than the policy max age is served as-is;
anything older, or a forced refresh, triggers a full recalculation and
overwrite.

*/

package engine

import (
	"context"
	"time"

	"github.com/baserep/baserep/internal/config"
	"github.com/baserep/baserep/internal/logger"
	"github.com/baserep/baserep/internal/types"
)

var engineLogger = logger.GetForComponent("engine")

// ReputationCalculator runs a full reputation computation.
type ReputationCalculator interface {
	CalculateReputation(ctx context.Context, input types.ScoreInput) (types.ReputationData, error)
}

// ReputationStore persists and recalls computed reputations.
type ReputationStore interface {
	Reputation(ctx context.Context, address types.Address) (*types.ReputationData, error)
	SaveReputation(ctx context.Context, address types.Address, data types.ReputationData) error
}

// Options control the freshness policy for one lookup.
type Options struct {
	// MaxAge overrides the default reuse window. Zero selects the primary
	// policy (config.ReputationMaxAge).
	MaxAge time.Duration
	// ForceRefresh recomputes regardless of the persisted timestamp.
	ForceRefresh bool
}

// SlowRefresh selects the relaxed freshness policy
// (config.ReputationMaxAgeSlow) for batch or background scoring where
// mildly stale results are acceptable.
func SlowRefresh() Options {
	return Options{MaxAge: config.ReputationMaxAgeSlow}
}

// Engine is the caller-facing reputation surface. Safe for concurrent use
// across distinct addresses; repeat calls for the same address are
// idempotent up to timestamps and live-data drift.
type Engine struct {
	calculator ReputationCalculator
	store      ReputationStore
}

// New builds an engine. The store may be nil, which disables reuse and
// persistence.
func New(calculator ReputationCalculator, store ReputationStore) *Engine {
	return &Engine{calculator: calculator, store: store}
}

// Reputation returns the reputation for an address, reusing the persisted
// result while it is fresh.
func (e *Engine) Reputation(ctx context.Context, input types.ScoreInput, opts Options) (types.ReputationData, error) {
	normalized, err := types.ValidateAddress(input.Address.String())
	if err != nil {
		return types.ReputationData{}, err
	}
	input.Address = normalized

	maxAge := opts.MaxAge
	if maxAge == 0 {
		maxAge = config.ReputationMaxAge
	}

	if e.store != nil && !opts.ForceRefresh {
		cached, err := e.store.Reputation(ctx, input.Address)
		if err != nil {
			engineLogger.Warn().
				Err(err).
				Str("address", input.Address.Short()).
				Msg("Persisted reputation lookup failed, recomputing")
		} else if cached != nil && time.Since(cached.LastCalculated) < maxAge {
			engineLogger.Debug().
				Str("address", input.Address.Short()).
				Time("lastCalculated", cached.LastCalculated).
				Msg("Serving fresh persisted reputation")
			return *cached, nil
		}
	}

	data, err := e.calculator.CalculateReputation(ctx, input)
	if err != nil {
		return types.ReputationData{}, err
	}

	if e.store != nil {
		if err := e.store.SaveReputation(ctx, input.Address, data); err != nil {
			engineLogger.Warn().
				Err(err).
				Str("address", input.Address.Short()).
				Msg("Failed to persist reputation")
		}
	}

	return data, nil
}
