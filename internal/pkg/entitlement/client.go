package entitlement

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/moodvault/moodvault/internal/pkg/env"
)

const defaultProviderBaseURL = "https://entitlements.moodvault.app/api"

// Client talks to the entitlement provider, the authoritative source for
// subscription status and the journal-lock record.
type Client struct {
	BaseURL  string
	APIToken string

	HTTPClient *http.Client
}

// NewClientFromEnv builds a provider client from environment configuration.
func NewClientFromEnv() *Client {
	return &Client{
		BaseURL:  strings.TrimRight(env.GetEnv("ENTITLEMENT_API_URL", defaultProviderBaseURL), "/"),
		APIToken: strings.TrimSpace(env.GetEnv("ENTITLEMENT_API_TOKEN", "")),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SubscriptionDetails fetches the current billing relationship for a
// subscriber. The returned subscription is normalized onto the closed
// status set with the grace-period invariant enforced.
func (c *Client) SubscriptionDetails(ctx context.Context, subscriberRef string) (*Subscription, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/v1/subscribers/"+url.PathEscape(subscriberRef)+"/subscription", nil, "subscription")
	if err != nil {
		return nil, err
	}

	var sub Subscription
	if err := json.Unmarshal(body, &sub); err != nil {
		return nil, &FetchError{Kind: KindParse, Op: "subscription", Err: err}
	}
	sub.normalize()
	return &sub, nil
}

// ToggleJournalLock asks the provider to flip the journal-lock record.
// A reachable provider answering success=false yields a KindRejected error.
func (c *Client) ToggleJournalLock(ctx context.Context, subscriberRef, password string) (*ToggleResponse, error) {
	payload := map[string]string{"password": password}
	body, err := c.doJSON(ctx, http.MethodPost, "/v1/subscribers/"+url.PathEscape(subscriberRef)+"/journal-lock", payload, "journal-lock")
	if err != nil {
		return nil, err
	}

	var out ToggleResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &FetchError{Kind: KindParse, Op: "journal-lock", Err: err}
	}
	if !out.Success {
		return nil, &FetchError{Kind: KindRejected, Op: "journal-lock", Message: out.Message}
	}
	return &out, nil
}

// CheckJournalPassword verifies the journal password against the provider
// record without changing any state.
func (c *Client) CheckJournalPassword(ctx context.Context, subscriberRef, password string) (bool, error) {
	payload := map[string]string{"password": password}
	body, err := c.doJSON(ctx, http.MethodPost, "/v1/subscribers/"+url.PathEscape(subscriberRef)+"/journal-lock/check", payload, "journal-lock-check")
	if err != nil {
		return false, err
	}

	var out struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return false, &FetchError{Kind: KindParse, Op: "journal-lock-check", Err: err}
	}
	return out.Success, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any, op string) ([]byte, error) {
	if strings.TrimSpace(c.BaseURL) == "" {
		return nil, &FetchError{Kind: KindNetwork, Op: op, Err: errors.New("ENTITLEMENT_API_URL is not configured")}
	}

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, &FetchError{Kind: KindParse, Op: op, Err: err}
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{
			Kind:    KindNetwork,
			Op:      op,
			Message: fmt.Sprintf("status=%d body=%s", resp.StatusCode, string(body)),
		}
	}
	return body, nil
}
