// Package culqi is a minimal client for the Culqi card-charge API.
package culqi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	baseURL    string
	privateKey string
	httpClient *http.Client
}

type ChargeRequest struct {
	Amount       int    `json:"amount"` // minor units
	CurrencyCode string `json:"currency_code"`
	Email        string `json:"email"`
	SourceID     string `json:"source_id"` // card token from the browser
	Description  string `json:"description,omitempty"`
}

type Charge struct {
	ID           string `json:"id"`
	Amount       int    `json:"amount"`
	CurrencyCode string `json:"currency_code"`
	Outcome      struct {
		Type            string `json:"type"`
		UserMessage     string `json:"user_message"`
		MerchantMessage string `json:"merchant_message"`
	} `json:"outcome"`
}

// APIError is a charge rejection reported by Culqi; the user message is
// safe to surface to the caller.
type APIError struct {
	StatusCode      int
	UserMessage     string `json:"user_message"`
	MerchantMessage string `json:"merchant_message"`
}

func (e *APIError) Error() string {
	if e.UserMessage != "" {
		return e.UserMessage
	}
	return fmt.Sprintf("culqi request failed with status %d", e.StatusCode)
}

func NewClient(baseURL, privateKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		privateKey: privateKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateCharge creates a synchronous charge against a card token.
func (c *Client) CreateCharge(ctx context.Context, req *ChargeRequest) (*Charge, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal charge request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/charges", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build charge request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.privateKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("culqi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return nil, apiErr
	}

	var charge Charge
	if err := json.NewDecoder(resp.Body).Decode(&charge); err != nil {
		return nil, fmt.Errorf("failed to decode charge response: %w", err)
	}

	return &charge, nil
}
