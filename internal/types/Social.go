/*

This file contains the social-graph types consumed by the trust propagation
engine. Graphs are built per-address from follow/follower/mention data and
discarded after scoring.

*/

package types

// TrustRelationship is a single directed trust opinion between two graph
// nodes. Trust is signed: negative values express distrust and contribute
// nothing to propagation.
type TrustRelationship struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Trust  float64 `json:"trust"`  // -1 to 1
	Weight float64 `json:"weight"` // relationship strength
}

// SocialGraphNode carries a node's trust edges in both directions.
type SocialGraphNode struct {
	ID            string              `json:"id"`
	TrustScore    float64             `json:"trust_score"`
	IncomingTrust []TrustRelationship `json:"incoming_trust"`
	OutgoingTrust []TrustRelationship `json:"outgoing_trust"`
}

// FarcasterUser is the social identity resolved from a verified address.
type FarcasterUser struct {
	FID            int64    `json:"fid"`
	Username       string   `json:"username"`
	DisplayName    string   `json:"display_name"`
	FollowerCount  int      `json:"follower_count"`
	FollowingCount int      `json:"following_count"`
	VerifiedAddrs  []string `json:"verified_addresses"`
}

// FarcasterGraph is the raw follow/follower/mention data for one FID.
type FarcasterGraph struct {
	FID       int64           `json:"fid"`
	Follows   []int64         `json:"follows"`
	Followers []int64         `json:"followers"`
	Mentions  map[int64]int   `json:"mentions"` // FID -> mention count
}
