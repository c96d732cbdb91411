/*

This file contains the Zora GraphQL client. It answers two questions about
an address: how many NFTs it has minted on Base, and what it has created
(collection count plus sales volume).

*/

package nftapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/baserep/baserep/internal/config"
	"github.com/baserep/baserep/internal/logger"
	"github.com/baserep/baserep/internal/types"
)

var zoraLogger = logger.GetForComponent("zora")

var ErrNotConfigured = errors.New("zora API key not configured")

const weiPerEth = 1e18

// CreatorStats summarizes an address's creator activity.
type CreatorStats struct {
	Collections    int
	TotalVolumeETH float64
}

const mintCountQuery = `query MintCount($minter: [String!], $network: NetworkInput!) {
  mints(where: {minterAddresses: $minter}, networks: [$network], pagination: {limit: 1}) {
    pageInfo {
      totalCount
    }
  }
}`

const creatorQuery = `query Creator($creator: [String!], $network: NetworkInput!) {
  collections(where: {creatorAddresses: $creator}, networks: [$network], pagination: {limit: 100}) {
    nodes {
      address
      totalSupply
      salesVolume {
        totalWei
      }
    }
  }
}`

type mintCountResponse struct {
	Data struct {
		Mints struct {
			PageInfo struct {
				TotalCount int `json:"totalCount"`
			} `json:"pageInfo"`
		} `json:"mints"`
	} `json:"data"`
	Errors []graphError `json:"errors"`
}

type creatorResponse struct {
	Data struct {
		Collections struct {
			Nodes []struct {
				Address     string `json:"address"`
				TotalSupply int    `json:"totalSupply"`
				SalesVolume struct {
					TotalWei float64 `json:"totalWei"`
				} `json:"salesVolume"`
			} `json:"nodes"`
		} `json:"collections"`
	} `json:"data"`
	Errors []graphError `json:"errors"`
}

type graphError struct {
	Message string `json:"message"`
}

// ZoraClient queries the Zora aggregation API for Base network activity.
type ZoraClient struct {
	http   *resty.Client
	apiKey string
}

// NewZoraClient builds a client against the configured Zora endpoint.
func NewZoraClient(baseURL, apiKey string) *ZoraClient {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(config.ExternalCallTimeout)
	if apiKey != "" {
		http.SetHeader("X-API-KEY", apiKey)
	}
	return &ZoraClient{http: http, apiKey: apiKey}
}

// Configured reports whether the client can make authorized requests.
func (c *ZoraClient) Configured() bool {
	return c.apiKey != ""
}

// MintCount returns the number of NFTs the address has minted on Base.
func (c *ZoraClient) MintCount(ctx context.Context, address types.Address) (int, error) {
	if !c.Configured() {
		return 0, ErrNotConfigured
	}

	var result mintCountResponse
	if err := c.query(ctx, mintCountQuery, map[string]interface{}{
		"minter":  []string{address.String()},
		"network": baseNetwork(),
	}, &result); err != nil {
		return 0, err
	}
	if len(result.Errors) > 0 {
		return 0, fmt.Errorf("zora mint query error: %s", result.Errors[0].Message)
	}

	count := result.Data.Mints.PageInfo.TotalCount

	zoraLogger.Debug().
		Str("address", address.Short()).
		Int("mints", count).
		Msg("Zora mint count fetched")

	return count, nil
}

// Creator returns collections created by the address and their aggregate
// sales volume in ETH.
func (c *ZoraClient) Creator(ctx context.Context, address types.Address) (CreatorStats, error) {
	if !c.Configured() {
		return CreatorStats{}, ErrNotConfigured
	}

	var result creatorResponse
	if err := c.query(ctx, creatorQuery, map[string]interface{}{
		"creator": []string{address.String()},
		"network": baseNetwork(),
	}, &result); err != nil {
		return CreatorStats{}, err
	}
	if len(result.Errors) > 0 {
		return CreatorStats{}, fmt.Errorf("zora creator query error: %s", result.Errors[0].Message)
	}

	stats := CreatorStats{Collections: len(result.Data.Collections.Nodes)}
	for _, node := range result.Data.Collections.Nodes {
		stats.TotalVolumeETH += node.SalesVolume.TotalWei / weiPerEth
	}

	zoraLogger.Debug().
		Str("address", address.Short()).
		Int("collections", stats.Collections).
		Float64("volumeETH", stats.TotalVolumeETH).
		Msg("Zora creator stats fetched")

	return stats, nil
}

func (c *ZoraClient) query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"query":     query,
			"variables": variables,
		}).
		SetResult(out).
		Post("")
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("zora API returned status %d", resp.StatusCode())
	}
	return nil
}

func baseNetwork() map[string]string {
	return map[string]string{"network": "BASE", "chain": "BASE_MAINNET"}
}
