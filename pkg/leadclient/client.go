// Package leadclient is the wizard's thin caller into the submission API.
package leadclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"lead-capture-backend/internal/domain"
)

// Client posts collected leads to the submission endpoint and interprets the
// ok envelope.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New creates a client for the given endpoint. A nil httpClient falls back
// to http.DefaultClient.
func New(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

// Submit sends {lead, answers} and returns the decoded envelope. A non-2xx
// status without a decodable body still yields a result (ok=false with a
// generic message); errors are reserved for transport failures.
func (c *Client) Submit(ctx context.Context, lead domain.LeadContact, answers domain.Answers) (*domain.SubmissionResult, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"lead":    lead,
		"answers": answers,
	})
	if err != nil {
		return nil, fmt.Errorf("error encoding submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling lead endpoint: %w", err)
	}
	defer resp.Body.Close()

	var result domain.SubmissionResult
	_ = json.NewDecoder(resp.Body).Decode(&result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !result.OK {
		if result.Error == "" {
			result.Error = "Sorry, we couldn't save your details. Please try again."
		}
		result.OK = false
	}

	return &result, nil
}
