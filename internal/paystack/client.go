package paystack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the production Paystack API.
const DefaultBaseURL = "https://api.paystack.co"

// DefaultVerifyTimeout bounds the outbound verification call. The webhook
// handler must answer within the provider's delivery timeout, so this stays
// well under it; a timed-out verification is treated as a transient failure
// and the provider redelivers.
const DefaultVerifyTimeout = 10 * time.Second

// TransactionVerifier confirms a transaction with the provider's own API.
// The webhook handler depends on this interface so tests can substitute a
// stub.
type TransactionVerifier interface {
	VerifyTransaction(ctx context.Context, reference string) (*TransactionData, error)
}

// Client talks to the Paystack REST API using the server-side secret key.
// The secret never leaves this process: it is sent only as a bearer token to
// the provider and is never logged or echoed in responses.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient returns a Client bound to baseURL (DefaultBaseURL if empty) with
// a bounded request timeout (DefaultVerifyTimeout if zero).
func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultVerifyTimeout
	}
	return &Client{
		baseURL:    baseURL,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// VerifyTransaction fetches the authoritative state of a transaction from
// GET /transaction/verify/{reference}. It returns the transaction data for
// any well-formed response; deciding whether the status authorizes
// reconciliation is the caller's job.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*TransactionData, error) {
	url := fmt.Sprintf("%s/transaction/verify/%s", c.baseURL, reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verify transaction %s: %w", reference, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verify transaction %s: unexpected status %d", reference, res.StatusCode)
	}

	var body verifyResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode verify response for %s: %w", reference, err)
	}
	if body.Data == nil {
		return nil, fmt.Errorf("verify response for %s has no data", reference)
	}
	return body.Data, nil
}
