// Package anilist talks to the upstream AniList GraphQL endpoint.
package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUserNotFound marks the upstream 404: the identity no longer exists.
// Every other fetch error is transient and safe to retry.
var ErrUserNotFound = errors.New("anilist: user not found")

// Client posts the fixed stats query against one GraphQL endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient builds a client with the given endpoint and request timeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphqlResponse struct {
	Data map[string]interface{} `json:"data"`
}

// FetchUserStats runs the stats query for one user and returns the raw
// data object from the response. A 404 status maps to ErrUserNotFound;
// any other non-2xx status, transport error, or unparseable body is a
// transient error.
func (c *Client) FetchUserStats(ctx context.Context, userID int64) (map[string]interface{}, error) {
	payload, err := json.Marshal(graphqlRequest{
		Query:     UserStatsQuery,
		Variables: map[string]interface{}{"userId": userID},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post stats query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrUserNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("stats query returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var decoded graphqlResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if decoded.Data == nil {
		return nil, fmt.Errorf("no data in response")
	}
	return decoded.Data, nil
}
