/*

This file contains the Gitcoin Passport scorer client. Passport scores are
optional identity evidence: an address without a submitted passport simply
has no score, which is distinct from a score of zero.

*/

package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/baserep/baserep/internal/cache"
	"github.com/baserep/baserep/internal/config"
	"github.com/baserep/baserep/internal/logger"
	"github.com/baserep/baserep/internal/types"
)

var passportLogger = logger.GetForComponent("passport")

// PassportClient fetches Gitcoin Passport scores, cached for 24 hours.
type PassportClient struct {
	http   *resty.Client
	cache  cache.Cache
	apiKey string
}

// NewPassportClient builds a client against the configured scorer endpoint.
func NewPassportClient(baseURL, apiKey string, store cache.Cache) *PassportClient {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(config.ExternalCallTimeout).
		SetHeader("X-API-Key", apiKey)
	return &PassportClient{http: http, cache: store, apiKey: apiKey}
}

// Configured reports whether the client can make authorized requests.
func (c *PassportClient) Configured() bool {
	return c.apiKey != ""
}

type passportScoreResponse struct {
	Score  string `json:"score"`
	Status string `json:"status"`
}

// Score returns the passport score for an address clamped to [0, 100], or
// nil when the address has no passport or the scorer is unavailable.
func (c *PassportClient) Score(ctx context.Context, address types.Address) *float64 {
	if !c.Configured() {
		return nil
	}

	key := cache.PassportKey(address.String())
	if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		var cached float64
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached
		}
	}

	var result passportScoreResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/registry/score/%s", address.String()))
	if err != nil {
		passportLogger.Warn().
			Err(err).
			Str("address", address.Short()).
			Msg("Passport score fetch failed, treating as absent")
		return nil
	}
	if resp.StatusCode() == 404 {
		return nil
	}
	if resp.StatusCode() != 200 {
		passportLogger.Warn().
			Int("status", resp.StatusCode()).
			Str("address", address.Short()).
			Msg("Passport scorer rejected request, treating as absent")
		return nil
	}

	score, err := strconv.ParseFloat(result.Score, 64)
	if err != nil {
		return nil
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	if encoded, err := json.Marshal(score); err == nil {
		if err := c.cache.Set(ctx, key, encoded, config.VerificationCacheTTL); err != nil {
			passportLogger.Warn().Err(err).Msg("Failed to cache passport score")
		}
	}

	passportLogger.Debug().
		Str("address", address.Short()).
		Float64("score", score).
		Msg("Passport score fetched")

	return &score
}
