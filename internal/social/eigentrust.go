/*

This file contains the EigenTrust trust-propagation engine. Global trust is
computed from local pairwise opinions by iterating t_i = Σ c_ji * t_j over a
row-normalized local trust matrix until convergence.

Reference: Kamvar, Schlosser, Garcia-Molina, "The EigenTrust Algorithm for
Reputation Management in P2P Networks".

*/

package social

import (
	"fmt"
	"math"
	"sort"

	"github.com/baserep/baserep/internal/logger"
	"github.com/baserep/baserep/internal/types"
)

var trustLogger = logger.GetForComponent("eigentrust")

const (
	// DefaultMaxIterations bounds worst-case latency on pathological graphs.
	DefaultMaxIterations = 100
	// DefaultConvergenceThreshold terminates iteration once the maximum
	// per-node change falls below it.
	DefaultConvergenceThreshold = 0.0001
	// DefaultPercentile is the top bracket used by the percentile scorer.
	DefaultPercentile = 0.1
)

// Trust edge constants for graphs built from Farcaster data.
const (
	followTrust        = 0.5
	mutualFollowTrust  = 0.8
	followerTrust      = 0.3
	mentionTrustPerUse = 0.1
	mentionTrustCap    = 0.2
)

// CalculateEigenTrust computes convergent relative trust scores for a set of
// graph nodes. Scores are initialized to the uniform prior 1/N, propagated
// through positive normalized local trust only, and re-normalized to sum to
// 1 at the end to absorb numerical drift and disconnected subgraphs.
func CalculateEigenTrust(nodes []types.SocialGraphNode, maxIterations int, convergenceThreshold float64) map[string]float64 {
	scores := make(map[string]float64, len(nodes))
	if len(nodes) == 0 {
		return scores
	}
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	if convergenceThreshold <= 0 {
		convergenceThreshold = DefaultConvergenceThreshold
	}

	// A single-node graph converges trivially.
	if len(nodes) == 1 {
		scores[nodes[0].ID] = 1.0
		return scores
	}

	prior := 1.0 / float64(len(nodes))
	for _, node := range nodes {
		scores[node.ID] = prior
	}

	localTrust := buildNormalizedTrustMatrix(nodes)

	iterations := 0
	for iteration := 0; iteration < maxIterations; iteration++ {
		iterations = iteration + 1
		next := make(map[string]float64, len(nodes))
		maxChange := 0.0

		for _, node := range nodes {
			newScore := 0.0
			for _, incoming := range node.IncomingTrust {
				sourceScore := scores[incoming.From]
				newScore += localTrust[edgeKey(incoming.From, node.ID)] * sourceScore
			}
			next[node.ID] = newScore

			change := math.Abs(newScore - scores[node.ID])
			if change > maxChange {
				maxChange = change
			}
		}

		scores = next
		if maxChange < convergenceThreshold {
			break
		}
	}

	normalizeScores(scores)

	trustLogger.Debug().
		Int("nodes", len(nodes)).
		Int("iterations", iterations).
		Msg("EigenTrust computation converged")

	return scores
}

// buildNormalizedTrustMatrix row-normalizes each node's positive outgoing
// trust so that row sums are 1. Negative (distrust) edges contribute zero
// weight, per EigenTrust's non-negativity requirement. A node with no
// positive outgoing trust keeps an all-zero row; normalization is skipped so
// division by zero cannot occur.
func buildNormalizedTrustMatrix(nodes []types.SocialGraphNode) map[string]float64 {
	matrix := make(map[string]float64)

	for _, node := range nodes {
		totalOutgoing := 0.0
		outgoing := make(map[string]float64, len(node.OutgoingTrust))

		for _, trust := range node.OutgoingTrust {
			value := trust.Trust * trust.Weight
			outgoing[trust.To] = value
			totalOutgoing += math.Max(0, value)
		}

		if totalOutgoing <= 0 {
			continue
		}
		for target, value := range outgoing {
			matrix[edgeKey(node.ID, target)] = math.Max(0, value) / totalOutgoing
		}
	}

	return matrix
}

// normalizeScores rescales scores in place so they sum to 1.
func normalizeScores(scores map[string]float64) {
	sum := 0.0
	for _, score := range scores {
		sum += score
	}
	if sum <= 0 {
		return
	}
	for id, score := range scores {
		scores[id] = score / sum
	}
}

func edgeKey(from, to string) string {
	return from + "->" + to
}

// CalculateSocialGraphScore maps a node's trust score onto 0-100 with a
// two-segment piecewise-linear curve: nodes at or above the percentile
// threshold interpolate 80-100 within the top bracket; nodes below
// interpolate 0-80 against the threshold score. The discontinuity at the
// boundary deliberately rewards the top bracket disproportionately.
func CalculateSocialGraphScore(trustScores map[string]float64, targetID string, percentile float64) float64 {
	if len(trustScores) == 0 {
		return 0
	}
	if percentile <= 0 || percentile >= 1 {
		percentile = DefaultPercentile
	}

	targetScore := trustScores[targetID]

	sorted := make([]float64, 0, len(trustScores))
	for _, score := range trustScores {
		sorted = append(sorted, score)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	thresholdIndex := int(math.Floor(float64(len(sorted)) * percentile))
	if thresholdIndex >= len(sorted) {
		thresholdIndex = len(sorted) - 1
	}
	thresholdScore := sorted[thresholdIndex]

	if targetScore >= thresholdScore {
		maxScore := sorted[0]
		if maxScore == thresholdScore {
			return 100
		}
		normalized := (targetScore - thresholdScore) / (maxScore - thresholdScore)
		return math.Round(80 + normalized*20)
	}

	if thresholdScore <= 0 {
		return 0
	}
	return math.Round(targetScore / thresholdScore * 80)
}

// BuildFarcasterSocialGraph constructs a trust graph node from raw follow,
// follower, and mention data. Outgoing trust is 0.5 per follow (0.8 when
// mutual) plus a mention-frequency bonus of 0.1 per mention capped at 0.2;
// incoming trust is 0.3 per follower, 0.8 when mutual.
func BuildFarcasterSocialGraph(fid int64, follows, followers []int64, mentions map[int64]int) types.SocialGraphNode {
	nodeID := farcasterNodeID(fid)

	followerSet := make(map[int64]struct{}, len(followers))
	for _, follower := range followers {
		followerSet[follower] = struct{}{}
	}
	followSet := make(map[int64]struct{}, len(follows))
	for _, follow := range follows {
		followSet[follow] = struct{}{}
	}

	outgoing := make([]types.TrustRelationship, 0, len(follows))
	for _, followID := range follows {
		_, mutual := followerSet[followID]
		base := followTrust
		if mutual {
			base = mutualFollowTrust
		}
		mentionBonus := math.Min(mentionTrustCap, float64(mentions[followID])*mentionTrustPerUse)

		outgoing = append(outgoing, types.TrustRelationship{
			From:   nodeID,
			To:     farcasterNodeID(followID),
			Trust:  math.Min(1.0, base+mentionBonus),
			Weight: 1.0,
		})
	}

	incoming := make([]types.TrustRelationship, 0, len(followers))
	for _, followerID := range followers {
		_, mutual := followSet[followerID]
		base := followerTrust
		if mutual {
			base = mutualFollowTrust
		}
		incoming = append(incoming, types.TrustRelationship{
			From:   farcasterNodeID(followerID),
			To:     nodeID,
			Trust:  base,
			Weight: 1.0,
		})
	}

	return types.SocialGraphNode{
		ID:            nodeID,
		IncomingTrust: incoming,
		OutgoingTrust: outgoing,
	}
}

func farcasterNodeID(fid int64) string {
	return fmt.Sprintf("farcaster:%d", fid)
}
