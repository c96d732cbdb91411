package metrics

import (
	"context"
	"fmt"
	"math"

	"github.com/baserep/baserep/internal/social"
	"github.com/baserep/baserep/internal/types"
)

const (
	farcasterLinkedBase  = 50.0
	mutualEngagementMax  = 25.0
	graphScoreMultiplier = 0.5
)

// SocialSource resolves Farcaster identity and graph data.
type SocialSource interface {
	UserByAddress(ctx context.Context, address types.Address) (*types.FarcasterUser, error)
	Graph(ctx context.Context, fid int64) (types.FarcasterGraph, error)
	Configured() bool
}

// FarcasterCalculator scores social standing: a linked-identity base, a
// global-rank percentile bonus, the trust-propagation graph score, a
// mutual-follow engagement bonus, and a logarithmic follower-reach bonus.
type FarcasterCalculator struct {
	source SocialSource
}

func NewFarcasterCalculator(source SocialSource) *FarcasterCalculator {
	return &FarcasterCalculator{source: source}
}

func (c *FarcasterCalculator) Name() string { return types.MetricFarcaster }

func (c *FarcasterCalculator) Calculate(ctx context.Context, input types.ScoreInput) types.MetricScore {
	maxScore := float64(types.WeightFarcaster * 10)

	if !c.source.Configured() {
		return degraded(types.MetricFarcaster, types.WeightFarcaster, maxScore, nil, "farcaster API not configured")
	}

	user, err := c.source.UserByAddress(ctx, input.Address)
	if err != nil {
		return degraded(types.MetricFarcaster, types.WeightFarcaster, maxScore, err, "no linked farcaster identity")
	}

	graphScore, engagement := c.graphComponents(ctx, user.FID)

	score := farcasterLinkedBase
	score += percentileBonus(social.FollowerPercentile(user.FollowerCount))
	score += graphScore * graphScoreMultiplier
	score += engagement
	score += social.FollowerReachBonus(user.FollowerCount)

	return bounded(types.MetricFarcaster, types.WeightFarcaster, maxScore, score)
}

// graphComponents builds the per-user trust graph and derives both
// graph-based terms from one fetch: the trust-propagation score mapped onto
// 0-100, which the caller halves, and the mutual-follow engagement bonus,
// which is added at full value. Failures degrade to zero without failing
// the metric.
func (c *FarcasterCalculator) graphComponents(ctx context.Context, fid int64) (float64, float64) {
	graph, err := c.source.Graph(ctx, fid)
	if err != nil {
		metricsLogger.Warn().
			Err(err).
			Int64("fid", fid).
			Msg("Farcaster graph fetch failed, skipping trust score")
		return 0, 0
	}
	if len(graph.Follows) == 0 && len(graph.Followers) == 0 {
		return 0, 0
	}

	nodes := buildTrustGraph(graph)
	trustScores := social.CalculateEigenTrust(nodes, social.DefaultMaxIterations, social.DefaultConvergenceThreshold)
	graphScore := social.CalculateSocialGraphScore(trustScores, farcasterNodeID(fid), social.DefaultPercentile)

	return graphScore, engagementBonus(graph)
}

// buildTrustGraph assembles the target node plus one minimal node per
// neighbor so propagation has sources to draw trust from.
func buildTrustGraph(graph types.FarcasterGraph) []types.SocialGraphNode {
	target := social.BuildFarcasterSocialGraph(graph.FID, graph.Follows, graph.Followers, graph.Mentions)

	neighborEdges := make(map[string]*types.SocialGraphNode)
	ensure := func(id string) *types.SocialGraphNode {
		if node, ok := neighborEdges[id]; ok {
			return node
		}
		node := &types.SocialGraphNode{ID: id}
		neighborEdges[id] = node
		return node
	}

	// Mirror the target's edges onto the neighbors so each edge appears in
	// both endpoints' views.
	for _, edge := range target.OutgoingTrust {
		neighbor := ensure(edge.To)
		neighbor.IncomingTrust = append(neighbor.IncomingTrust, edge)
	}
	for _, edge := range target.IncomingTrust {
		neighbor := ensure(edge.From)
		neighbor.OutgoingTrust = append(neighbor.OutgoingTrust, edge)
	}

	nodes := make([]types.SocialGraphNode, 0, len(neighborEdges)+1)
	nodes = append(nodes, target)
	for _, node := range neighborEdges {
		nodes = append(nodes, *node)
	}
	return nodes
}

// engagementBonus rewards mutual follows: the ratio of mutuals to follows
// scaled onto 0-25.
func engagementBonus(graph types.FarcasterGraph) float64 {
	if len(graph.Follows) == 0 {
		return 0
	}

	followerSet := make(map[int64]struct{}, len(graph.Followers))
	for _, follower := range graph.Followers {
		followerSet[follower] = struct{}{}
	}

	mutuals := 0
	for _, follow := range graph.Follows {
		if _, ok := followerSet[follow]; ok {
			mutuals++
		}
	}

	ratio := float64(mutuals) / float64(len(graph.Follows))
	return math.Min(mutualEngagementMax, ratio*mutualEngagementMax)
}

func percentileBonus(percentile float64) float64 {
	switch {
	case percentile >= 90:
		return 100
	case percentile >= 75:
		return 75
	case percentile >= 50:
		return 50
	case percentile >= 25:
		return 25
	default:
		return 0
	}
}

func farcasterNodeID(fid int64) string {
	return fmt.Sprintf("farcaster:%d", fid)
}
