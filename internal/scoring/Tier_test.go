package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baserep/baserep/internal/types"
)

func TestDetermineTierThresholds(t *testing.T) {
	testCases := []struct {
		score    int
		expected types.Tier
	}{
		{score: 0, expected: types.TierTourist},
		{score: 350, expected: types.TierTourist},
		{score: 351, expected: types.TierResident},
		{score: 650, expected: types.TierResident},
		{score: 651, expected: types.TierBuilder},
		{score: 850, expected: types.TierBuilder},
		{score: 851, expected: types.TierBased},
		{score: 950, expected: types.TierBased},
		{score: 951, expected: types.TierLegend},
		{score: 1000, expected: types.TierLegend},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, DetermineTier(tc.score), "score=%d", tc.score)
	}
}
