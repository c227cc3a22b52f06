// Package sheets posts lead submissions to the Apps Script web app that
// appends them to the marketing spreadsheet.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"lead-capture-backend/internal/domain"
)

// Client forwards submissions to the spreadsheet webhook.
type Client interface {
	Write(ctx context.Context, req *domain.SubmissionRequest) (*domain.SubmissionResult, error)
}

type clientImpl struct {
	webhookURL string
	httpClient *http.Client
}

// NewClient creates a webhook client. A nil httpClient falls back to
// http.DefaultClient, whose transport defaults are the de facto timeout
// bound for the single write attempt (no retry).
func NewClient(webhookURL string, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &clientImpl{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

// Write performs one POST to the webhook and interprets its reply. A non-2xx
// status or an explicit ok:false body is a rejection, returned as a result
// rather than an error; errors are reserved for transport failures. A body
// that fails to parse degrades to an empty result, so a 2xx with garbage JSON
// still counts as success — that matches the upstream behavior and is pinned
// by a test; do not "fix" it here without changing the contract.
func (c *clientImpl) Write(ctx context.Context, req *domain.SubmissionRequest) (*domain.SubmissionResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("error encoding submission: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error calling sheet webhook: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		OK    *bool  `json:"ok"`
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || (body.OK != nil && !*body.OK) {
		message := body.Error
		if message == "" {
			message = "Sheet write failed"
		}
		return &domain.SubmissionResult{OK: false, Error: message}, nil
	}

	return &domain.SubmissionResult{OK: true}, nil
}
