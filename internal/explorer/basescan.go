/*

This file contains the block-explorer client used by the real-scan analysis
path and builder deployment detection. The API is BaseScan-compatible
(Etherscan module=account endpoints).

*/

package explorer

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"

	"github.com/baserep/baserep/internal/config"
	"github.com/baserep/baserep/internal/logger"
	"github.com/baserep/baserep/internal/types"
)

var explorerLogger = logger.GetForComponent("explorer")

var (
	ErrNotConfigured = errors.New("explorer API key not configured")
	ErrBadResponse   = errors.New("explorer API returned an unusable response")
)

const (
	maxTransactionsPerPage = 10000
	maxRetries             = 3
)

// Transaction is one entry from the txlist endpoint. Numeric fields arrive
// as decimal strings.
type Transaction struct {
	Hash            string `json:"hash"`
	TimeStamp       string `json:"timeStamp"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	GasUsed         string `json:"gasUsed"`
	GasPrice        string `json:"gasPrice"`
	ContractAddress string `json:"contractAddress"`
	IsError         string `json:"isError"`
}

// ValueWei parses the transaction value, 0 on malformed input.
func (t Transaction) ValueWei() float64 {
	v, err := strconv.ParseFloat(t.Value, 64)
	if err != nil {
		return 0
	}
	return v
}

// GasCostWei returns gasUsed*gasPrice, 0 on malformed input.
func (t Transaction) GasCostWei() float64 {
	used, err1 := strconv.ParseFloat(t.GasUsed, 64)
	price, err2 := strconv.ParseFloat(t.GasPrice, 64)
	if err1 != nil || err2 != nil {
		return 0
	}
	return used * price
}

// IsDeployment reports whether this transaction created a contract.
func (t Transaction) IsDeployment() bool {
	return t.To == "" && t.ContractAddress != ""
}

type txListResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Result  []Transaction `json:"result"`
}

// Client queries the explorer with retries. A zero API key disables it.
type Client struct {
	http   *resty.Client
	apiKey string
}

// NewClient builds an explorer client against the configured endpoint.
func NewClient(baseURL, apiKey string) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(config.ExternalCallTimeout)
	return &Client{http: http, apiKey: apiKey}
}

// Configured reports whether the client can make authorized requests.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Transactions fetches the full outgoing+incoming transaction list for an
// address, most recent first, capped at one explorer page.
func (c *Client) Transactions(ctx context.Context, address types.Address) ([]Transaction, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var result txListResponse

	operation := func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"module":  "account",
				"action":  "txlist",
				"address": address.String(),
				"page":    "1",
				"offset":  strconv.Itoa(maxTransactionsPerPage),
				"sort":    "desc",
				"apikey":  c.apiKey,
			}).
			SetResult(&result).
			Get("")
		if err != nil {
			return err
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("explorer returned status %d", resp.StatusCode())
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		explorerLogger.Warn().
			Err(err).
			Str("address", address.Short()).
			Msg("Transaction list fetch failed after retries")
		return nil, err
	}

	// Status "0" with message "No transactions found" is a valid empty result.
	if result.Status != "1" && len(result.Result) == 0 && result.Message != "No transactions found" {
		explorerLogger.Warn().
			Str("status", result.Status).
			Str("message", result.Message).
			Msg("Explorer rejected transaction list request")
		return nil, ErrBadResponse
	}

	explorerLogger.Debug().
		Str("address", address.Short()).
		Int("transactions", len(result.Result)).
		Msg("Transaction list fetched")

	return result.Result, nil
}

// ContractDeployments counts contracts created by the address. Used by the
// builder metric's exact detection path.
func (c *Client) ContractDeployments(ctx context.Context, address types.Address) (int, error) {
	txs, err := c.Transactions(ctx, address)
	if err != nil {
		return 0, err
	}

	deployments := 0
	for _, tx := range txs {
		if tx.IsDeployment() && tx.IsError != "1" {
			deployments++
		}
	}

	explorerLogger.Debug().
		Str("address", address.Short()).
		Int("deployments", deployments).
		Msg("Contract deployments counted")

	return deployments, nil
}
