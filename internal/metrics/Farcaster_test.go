package metrics

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baserep/baserep/internal/types"
)

type stubSocial struct {
	user       *types.FarcasterUser
	userErr    error
	graph      types.FarcasterGraph
	graphErr   error
	configured bool
}

func (s stubSocial) UserByAddress(context.Context, types.Address) (*types.FarcasterUser, error) {
	return s.user, s.userErr
}

func (s stubSocial) Graph(context.Context, int64) (types.FarcasterGraph, error) {
	return s.graph, s.graphErr
}

func (s stubSocial) Configured() bool { return s.configured }

func TestFarcasterNoLinkedIdentity(t *testing.T) {
	calc := NewFarcasterCalculator(stubSocial{userErr: errors.New("no user"), configured: true})
	score := calc.Calculate(context.Background(), testInput())
	assert.Equal(t, 0.0, score.Score)
	assert.Equal(t, types.MetricFarcaster, score.Name)
}

func TestFarcasterUnconfigured(t *testing.T) {
	calc := NewFarcasterCalculator(stubSocial{configured: false})
	assert.Equal(t, 0.0, calc.Calculate(context.Background(), testInput()).Score)
}

func TestFarcasterBaseAndPercentile(t *testing.T) {
	// 2000 followers: 50th percentile bonus of 50, reach bonus
	// log10(2001)*10 ~= 33. Graph fetch fails, contributing nothing.
	calc := NewFarcasterCalculator(stubSocial{
		user:       &types.FarcasterUser{FID: 7, FollowerCount: 2000},
		graphErr:   errors.New("timeout"),
		configured: true,
	})

	score := calc.Calculate(context.Background(), testInput())
	expected := 50 + 50 + math.Min(50, math.Log10(2001)*10)
	assert.InDelta(t, expected, score.Score, 0.01)
}

func TestFarcasterClampedAtMax(t *testing.T) {
	// Top-percentile account with a dense mutual graph exceeds the raw sum
	// and clamps at 150.
	graph := types.FarcasterGraph{
		FID:       7,
		Follows:   []int64{1, 2, 3},
		Followers: []int64{1, 2, 3},
		Mentions:  map[int64]int{},
	}
	calc := NewFarcasterCalculator(stubSocial{
		user:       &types.FarcasterUser{FID: 7, FollowerCount: 50000},
		graph:      graph,
		configured: true,
	})

	score := calc.Calculate(context.Background(), testInput())
	assert.Equal(t, 150.0, score.Score)
}

func TestFarcasterEngagementAddedAtFullValue(t *testing.T) {
	// Fully mutual two-follow graph with zero followers: no percentile or
	// reach bonus. The trust-graph term of 100 is halved, then the full 25
	// engagement bonus lands on top of it, not inside the halving.
	graph := types.FarcasterGraph{
		FID:       7,
		Follows:   []int64{1, 2},
		Followers: []int64{1, 2},
		Mentions:  map[int64]int{},
	}
	calc := NewFarcasterCalculator(stubSocial{
		user:       &types.FarcasterUser{FID: 7},
		graph:      graph,
		configured: true,
	})

	score := calc.Calculate(context.Background(), testInput())
	assert.InDelta(t, 50+100*graphScoreMultiplier+25, score.Score, 0.01)
}

func TestEngagementBonus(t *testing.T) {
	full := engagementBonus(types.FarcasterGraph{
		Follows:   []int64{1, 2},
		Followers: []int64{1, 2},
	})
	assert.Equal(t, 25.0, full)

	half := engagementBonus(types.FarcasterGraph{
		Follows:   []int64{1, 2},
		Followers: []int64{1},
	})
	assert.Equal(t, 12.5, half)

	none := engagementBonus(types.FarcasterGraph{Followers: []int64{1}})
	assert.Equal(t, 0.0, none)
}
