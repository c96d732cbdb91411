package social

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baserep/baserep/internal/types"
)

func symmetricTriangle() []types.SocialGraphNode {
	edge := func(from, to string) types.TrustRelationship {
		return types.TrustRelationship{From: from, To: to, Trust: 0.8, Weight: 1.0}
	}
	node := func(id string, peers ...string) types.SocialGraphNode {
		n := types.SocialGraphNode{ID: id}
		for _, peer := range peers {
			n.OutgoingTrust = append(n.OutgoingTrust, edge(id, peer))
			n.IncomingTrust = append(n.IncomingTrust, edge(peer, id))
		}
		return n
	}
	return []types.SocialGraphNode{
		node("a", "b", "c"),
		node("b", "a", "c"),
		node("c", "a", "b"),
	}
}

func TestCalculateEigenTrustConvergesAndNormalizes(t *testing.T) {
	scores := CalculateEigenTrust(symmetricTriangle(), DefaultMaxIterations, DefaultConvergenceThreshold)

	require.Len(t, scores, 3)

	sum := 0.0
	for _, score := range scores {
		sum += score
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	// Fully symmetric trust must converge to the uniform distribution.
	for id, score := range scores {
		assert.InDelta(t, 1.0/3.0, score, 1e-3, "node %s", id)
	}
}

func TestCalculateEigenTrustZeroOutDegree(t *testing.T) {
	// "sink" trusts nobody; "source" trusts only the sink. The all-zero row
	// must not divide by zero, and the sink must not propagate trust
	// forward, so the trust mass drains to zero over the iterations.
	edge := types.TrustRelationship{From: "source", To: "sink", Trust: 1.0, Weight: 1.0}
	nodes := []types.SocialGraphNode{
		{ID: "source", OutgoingTrust: []types.TrustRelationship{edge}},
		{ID: "sink", IncomingTrust: []types.TrustRelationship{edge}},
	}

	scores := CalculateEigenTrust(nodes, DefaultMaxIterations, DefaultConvergenceThreshold)

	require.Len(t, scores, 2)
	assert.Equal(t, 0.0, scores["source"])
	for _, score := range scores {
		assert.False(t, math.IsNaN(score))
	}
}

func TestCalculateEigenTrustSingleNode(t *testing.T) {
	scores := CalculateEigenTrust([]types.SocialGraphNode{{ID: "only"}}, DefaultMaxIterations, DefaultConvergenceThreshold)
	require.Len(t, scores, 1)
	assert.Equal(t, 1.0, scores["only"])
}

func TestCalculateEigenTrustEmptyGraph(t *testing.T) {
	scores := CalculateEigenTrust(nil, DefaultMaxIterations, DefaultConvergenceThreshold)
	assert.Empty(t, scores)
}

func TestCalculateEigenTrustNegativeTrustIgnored(t *testing.T) {
	distrust := types.TrustRelationship{From: "a", To: "b", Trust: -1.0, Weight: 1.0}
	nodes := []types.SocialGraphNode{
		{ID: "a", OutgoingTrust: []types.TrustRelationship{distrust}},
		{ID: "b", IncomingTrust: []types.TrustRelationship{distrust}},
	}

	scores := CalculateEigenTrust(nodes, DefaultMaxIterations, DefaultConvergenceThreshold)

	// Distrust must contribute nothing: b receives no propagated trust.
	assert.Equal(t, 0.0, scores["b"])
}

func TestCalculateSocialGraphScoreTopBracket(t *testing.T) {
	scores := map[string]float64{
		"top":    0.50,
		"second": 0.30,
		"third":  0.10,
		"fourth": 0.05,
		"fifth":  0.03,
		"sixth":  0.01,
		"a":      0.005,
		"b":      0.003,
		"c":      0.001,
		"d":      0.001,
	}

	// Ten nodes, threshold at sorted index 1 (0.30). The top node sits at
	// the bracket maximum and interpolates to 100.
	assert.Equal(t, 100.0, CalculateSocialGraphScore(scores, "top", DefaultPercentile))
}

func TestCalculateSocialGraphScoreBelowThreshold(t *testing.T) {
	scores := map[string]float64{
		"top":    0.50,
		"second": 0.25,
		"third":  0.10,
		"fourth": 0.05,
		"fifth":  0.03,
		"sixth":  0.01,
		"a":      0.005,
		"b":      0.003,
		"c":      0.001,
		"d":      0.001,
	}

	// Threshold index is floor(10*0.1)=1, giving a threshold score of
	// 0.25. "second" sits exactly at the threshold and lands in the top
	// bracket at its floor of 80.
	assert.Equal(t, 80.0, CalculateSocialGraphScore(scores, "second", DefaultPercentile))

	// "third" is below the threshold: 0.10/0.25*80 = 32.
	assert.Equal(t, 32.0, CalculateSocialGraphScore(scores, "third", DefaultPercentile))
}

func TestCalculateSocialGraphScoreDiscontinuity(t *testing.T) {
	scores := map[string]float64{
		"top":    0.50,
		"second": 0.25,
		"third":  0.2499,
		"fourth": 0.05,
		"fifth":  0.03,
		"sixth":  0.01,
		"a":      0.005,
		"b":      0.003,
		"c":      0.001,
		"d":      0.001,
	}

	atThreshold := CalculateSocialGraphScore(scores, "second", DefaultPercentile)
	justBelow := CalculateSocialGraphScore(scores, "third", DefaultPercentile)

	// The curve jumps at the percentile boundary: just-below maps near 80
	// on the lower segment while at-threshold starts the 80-100 segment.
	assert.GreaterOrEqual(t, atThreshold, 80.0)
	assert.InDelta(t, 80.0, justBelow, 1.0)
	assert.Greater(t, atThreshold, justBelow-1)
}

func TestCalculateSocialGraphScoreEmpty(t *testing.T) {
	assert.Equal(t, 0.0, CalculateSocialGraphScore(nil, "x", DefaultPercentile))
}

func TestBuildFarcasterSocialGraphEdges(t *testing.T) {
	node := BuildFarcasterSocialGraph(
		1,
		[]int64{2, 3},     // follows
		[]int64{3, 4},     // followers
		map[int64]int{2: 5}, // mentions
	)

	assert.Equal(t, "farcaster:1", node.ID)
	require.Len(t, node.OutgoingTrust, 2)
	require.Len(t, node.IncomingTrust, 2)

	byTarget := map[string]types.TrustRelationship{}
	for _, edge := range node.OutgoingTrust {
		byTarget[edge.To] = edge
	}

	// Follow of 2 with 5 mentions: 0.5 base + capped 0.2 mention bonus.
	assert.InDelta(t, 0.7, byTarget["farcaster:2"].Trust, 1e-9)
	// Mutual follow of 3: 0.8 base, no mentions.
	assert.InDelta(t, 0.8, byTarget["farcaster:3"].Trust, 1e-9)

	bySource := map[string]types.TrustRelationship{}
	for _, edge := range node.IncomingTrust {
		bySource[edge.From] = edge
	}

	// Mutual follower 3 at 0.8, plain follower 4 at 0.3.
	assert.InDelta(t, 0.8, bySource["farcaster:3"].Trust, 1e-9)
	assert.InDelta(t, 0.3, bySource["farcaster:4"].Trust, 1e-9)
}

func TestFollowerPercentileTiers(t *testing.T) {
	testCases := []struct {
		followers int
		expected  float64
	}{
		{followers: 20000, expected: 90},
		{followers: 10001, expected: 90},
		{followers: 6000, expected: 75},
		{followers: 2000, expected: 50},
		{followers: 500, expected: 25},
		{followers: 50, expected: 10},
		{followers: 0, expected: 10},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FollowerPercentile(tc.followers), "followers=%d", tc.followers)
	}
}

func TestFollowerReachBonusCapped(t *testing.T) {
	assert.Equal(t, 0.0, FollowerReachBonus(0))
	assert.InDelta(t, 20.0, FollowerReachBonus(99), 0.1)
	assert.Equal(t, 50.0, FollowerReachBonus(10000000))
	assert.False(t, math.IsNaN(FollowerReachBonus(1)))
}
