/*

This file contains the Farcaster data client. User identity is resolved
through Neynar's verified-address lookup; follow/follower/mention data feeds
the trust graph builder.

*/

package social

import (
	"context"
	"errors"
	"math"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/baserep/baserep/internal/config"
	"github.com/baserep/baserep/internal/logger"
	"github.com/baserep/baserep/internal/types"
)

var farcasterLogger = logger.GetForComponent("farcaster")

var (
	ErrNotConfigured = errors.New("farcaster API key not configured")
	ErrNoUser        = errors.New("no farcaster user for address")
)

const graphPageLimit = 100

// FarcasterClient resolves Farcaster identity and graph data for addresses.
type FarcasterClient struct {
	http   *resty.Client
	apiKey string
}

// NewFarcasterClient builds a client against the configured Neynar endpoint.
func NewFarcasterClient(baseURL, apiKey string) *FarcasterClient {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(config.ExternalCallTimeout).
		SetHeader("api_key", apiKey)
	return &FarcasterClient{http: http, apiKey: apiKey}
}

// Configured reports whether the client can make authorized requests.
func (c *FarcasterClient) Configured() bool {
	return c.apiKey != ""
}

type neynarUser struct {
	FID               int64  `json:"fid"`
	Username          string `json:"username"`
	DisplayName       string `json:"display_name"`
	FollowerCount     int    `json:"follower_count"`
	FollowingCount    int    `json:"following_count"`
	VerifiedAddresses struct {
		EthAddresses []string `json:"eth_addresses"`
	} `json:"verified_addresses"`
}

type userByVerificationResponse struct {
	User   *neynarUser `json:"user"`
	Result struct {
		User *neynarUser `json:"user"`
	} `json:"result"`
}

type followListResponse struct {
	Users []struct {
		User neynarUser `json:"user"`
	} `json:"users"`
	Next struct {
		Cursor string `json:"cursor"`
	} `json:"next"`
}

type castListResponse struct {
	Casts []struct {
		MentionedProfiles []neynarUser `json:"mentioned_profiles"`
	} `json:"casts"`
}

// UserByAddress resolves the Farcaster user that has verified the given
// address. ErrNoUser is returned when the address has no linked account.
func (c *FarcasterClient) UserByAddress(ctx context.Context, address types.Address) (*types.FarcasterUser, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var result userByVerificationResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("address", address.String()).
		SetResult(&result).
		Get("/v2/farcaster/user/by_verification")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == 404 {
		return nil, ErrNoUser
	}

	user := result.User
	if user == nil {
		user = result.Result.User
	}
	if user == nil {
		return nil, ErrNoUser
	}

	farcasterLogger.Debug().
		Str("address", address.Short()).
		Int64("fid", user.FID).
		Str("username", user.Username).
		Msg("Farcaster user resolved")

	return &types.FarcasterUser{
		FID:            user.FID,
		Username:       user.Username,
		DisplayName:    user.DisplayName,
		FollowerCount:  user.FollowerCount,
		FollowingCount: user.FollowingCount,
		VerifiedAddrs:  user.VerifiedAddresses.EthAddresses,
	}, nil
}

// Graph fetches one page each of follows, followers, and recent cast
// mentions for a FID. A single page bounds the size of the trust graph built
// per lookup.
func (c *FarcasterClient) Graph(ctx context.Context, fid int64) (types.FarcasterGraph, error) {
	graph := types.FarcasterGraph{
		FID:      fid,
		Mentions: make(map[int64]int),
	}
	if !c.Configured() {
		return graph, ErrNotConfigured
	}

	follows, err := c.followList(ctx, fid, "/v2/farcaster/following")
	if err != nil {
		return graph, err
	}
	graph.Follows = follows

	followers, err := c.followList(ctx, fid, "/v2/farcaster/followers")
	if err != nil {
		return graph, err
	}
	graph.Followers = followers

	var casts castListResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"fid":   formatFID(fid),
			"limit": formatFID(graphPageLimit),
		}).
		SetResult(&casts).
		Get("/v2/farcaster/feed/user/casts")
	if err != nil {
		return graph, err
	}
	if resp.StatusCode() == 200 {
		for _, cast := range casts.Casts {
			for _, profile := range cast.MentionedProfiles {
				graph.Mentions[profile.FID]++
			}
		}
	}

	farcasterLogger.Debug().
		Int64("fid", fid).
		Int("follows", len(graph.Follows)).
		Int("followers", len(graph.Followers)).
		Int("mentioned_fids", len(graph.Mentions)).
		Msg("Farcaster graph fetched")

	return graph, nil
}

func (c *FarcasterClient) followList(ctx context.Context, fid int64, path string) ([]int64, error) {
	var result followListResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"fid":   formatFID(fid),
			"limit": formatFID(graphPageLimit),
		}).
		SetResult(&result).
		Get(path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, errors.New("farcaster follow list request rejected")
	}

	fids := make([]int64, 0, len(result.Users))
	for _, entry := range result.Users {
		fids = append(fids, entry.User.FID)
	}
	return fids, nil
}

// FollowerPercentile approximates a user's global-rank percentile from
// follower count. Used in place of a full network-wide EigenTrust run, which
// would require the entire follow graph.
func FollowerPercentile(followerCount int) float64 {
	switch {
	case followerCount > 10000:
		return 90
	case followerCount > 5000:
		return 75
	case followerCount > 1000:
		return 50
	case followerCount > 100:
		return 25
	default:
		return 10
	}
}

// FollowerReachBonus is a logarithmic bonus on raw follower reach, capped
// at 50.
func FollowerReachBonus(followerCount int) float64 {
	return math.Min(50, math.Log10(float64(followerCount)+1)*10)
}

func formatFID(fid int64) string {
	return strconv.FormatInt(fid, 10)
}
