/*

This file contains the EAS (Ethereum Attestation Service) GraphQL client.
Coinbase verification, Onchain Summer badges, and hackathon placements are
all read as attestations against their respective schema UIDs.

*/

package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/baserep/baserep/internal/config"
	"github.com/baserep/baserep/internal/logger"
	"github.com/baserep/baserep/internal/types"
)

var easLogger = logger.GetForComponent("eas")

var ErrSchemaNotConfigured = errors.New("attestation schema UID not configured")

// Attestation is one non-revoked attestation issued to a recipient.
type Attestation struct {
	ID              string `json:"id"`
	Attester        string `json:"attester"`
	Recipient       string `json:"recipient"`
	TimeCreated     int64  `json:"timeCreated"`
	DecodedDataJSON string `json:"decodedDataJson"`
}

type attestationQueryResponse struct {
	Data struct {
		Attestations []Attestation `json:"attestations"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

const attestationQuery = `query Attestations($where: AttestationWhereInput) {
  attestations(where: $where, take: 100) {
    id
    attester
    recipient
    timeCreated
    decodedDataJson
  }
}`

// EASClient queries the Base attestation graph.
type EASClient struct {
	http *resty.Client
}

// NewEASClient builds a client against the configured EAS GraphQL endpoint.
func NewEASClient(baseURL string) *EASClient {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(config.ExternalCallTimeout)
	return &EASClient{http: http}
}

// Attestations returns the non-revoked attestations issued to the recipient
// under the given schema.
func (c *EASClient) Attestations(ctx context.Context, schemaUID string, recipient types.Address) ([]Attestation, error) {
	if schemaUID == "" {
		return nil, ErrSchemaNotConfigured
	}

	body := map[string]interface{}{
		"query": attestationQuery,
		"variables": map[string]interface{}{
			"where": map[string]interface{}{
				"schemaId":  map[string]interface{}{"equals": schemaUID},
				"recipient": map[string]interface{}{"equals": recipient.String(), "mode": "insensitive"},
				"revoked":   map[string]interface{}{"equals": false},
			},
		},
	}

	var result attestationQueryResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		Post("")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("attestation graph returned status %d", resp.StatusCode())
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("attestation graph error: %s", result.Errors[0].Message)
	}

	easLogger.Debug().
		Str("address", recipient.Short()).
		Str("schema", schemaUID).
		Int("attestations", len(result.Data.Attestations)).
		Msg("Attestations fetched")

	return result.Data.Attestations, nil
}

// AttestationCount returns the number of non-revoked attestations under a
// schema for the recipient.
func (c *EASClient) AttestationCount(ctx context.Context, schemaUID string, recipient types.Address) (int, error) {
	attestations, err := c.Attestations(ctx, schemaUID, recipient)
	if err != nil {
		return 0, err
	}
	return len(attestations), nil
}
