package grantsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is a small HTTP client for the grantlink service. The zero value
// is not usable; construct with New.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// New creates a grantlink client. apiKey is the issuer key sent as a
// Bearer token on issuing endpoints; pass "" for a client that only calls
// public endpoints.
func New(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// IssueToken mints a new grant token.
func (c *Client) IssueToken(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	var resp TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/tokens", req, &resp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetToken fetches a token record, including its current use count.
func (c *Client) GetToken(ctx context.Context, id string) (*TokenResponse, error) {
	var resp TokenResponse
	path := "/v1/tokens/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExpireToken stamps a token's expiry to now, cutting it off immediately.
func (c *Client) ExpireToken(ctx context.Context, id string) (*TokenResponse, error) {
	var resp TokenResponse
	path := "/v1/tokens/" + url.PathEscape(id) + "/expire"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListTokenLogs fetches a token's audit entries, newest first. limit 0
// uses the server default.
func (c *Client) ListTokenLogs(ctx context.Context, id string, limit, offset int) (*TokenLogsResponse, error) {
	path := "/v1/tokens/" + url.PathEscape(id) + "/logs"

	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp TokenLogsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Redeem exercises the demonstration guarded endpoint for scope with the
// encoded token attached as the query parameter tokenParam.
func (c *Client) Redeem(ctx context.Context, scope, tokenParam, encoded string) (*RedeemResponse, error) {
	path := "/v1/redeem/" + url.PathEscape(scope) + "?" +
		url.Values{tokenParam: {encoded}}.Encode()

	var resp RedeemResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health calls the liveness endpoint.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// doJSON performs one request with optional JSON body, attaching the issuer
// key when present, and decodes the response into out. Non-expected status
// codes decode into *APIError.
func (c *Client) doJSON(
	ctx context.Context,
	method, path string,
	body, out any,
	expectedStatus int,
) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
