// Package authorizer calls the external service that approves or denies a
// proposed transfer. Any outcome other than an explicit approval is a denial.
package authorizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/payzap/payzap/internal/domain"
	"github.com/payzap/payzap/internal/usecase"
)

// approvalMessage is the only payload the authorization service returns for
// an approved transfer.
const approvalMessage = "Autorizado"

// Client implements usecase.Authorizer over HTTP.
type Client struct {
	httpClient *http.Client
	url        string
}

// NewClient creates a new Client. The http.Client's timeout bounds each
// check; the caller's context deadline applies on top of it.
func NewClient(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient: httpClient,
		url:        url,
	}
}

type checkRequest struct {
	SenderID   string          `json:"sender_id"`
	ReceiverID string          `json:"receiver_id"`
	Amount     decimal.Decimal `json:"amount"`
}

type checkResponse struct {
	Message string `json:"message"`
}

// Check issues one call per transfer attempt. A transport failure, timeout or
// expired context resolves to DecisionUnavailable with the underlying error;
// a response that is not an explicit approval resolves to DecisionDeny.
func (c *Client) Check(ctx context.Context, req domain.TransferRequest) (usecase.Decision, error) {
	payload, err := json.Marshal(checkRequest{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Amount:     req.Amount,
	})
	if err != nil {
		return usecase.DecisionUnavailable, fmt.Errorf("encode authorization request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return usecase.DecisionUnavailable, fmt.Errorf("build authorization request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return usecase.DecisionUnavailable, fmt.Errorf("authorization request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return usecase.DecisionDeny, nil
	}

	var body checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return usecase.DecisionDeny, nil
	}

	if body.Message != approvalMessage {
		return usecase.DecisionDeny, nil
	}

	return usecase.DecisionAllow, nil
}
