package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	// The feed source is queried with a fixed language filter
	feedLanguage = "en"

	fetchTimeout = 30 * time.Second
)

// Client calls the external news search API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
	userAgent  string
}

// NewClient creates a new feed client
func NewClient(httpClient *http.Client, baseURL, apiToken, userAgent string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiToken:   apiToken,
		userAgent:  userAgent,
	}
}

// FetchFeed queries the news search API for the given keyword and returns
// the raw article records from the response. A missing or empty data array
// is an empty result, not an error. Transport failures and non-2xx
// responses are returned as *FeedError; retry policy is the caller's.
func (c *Client) FetchFeed(ctx context.Context, keyword string) ([]RawArticle, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("api_token", c.apiToken)
	params.Set("search", keyword)
	params.Set("language", feedLanguage)

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FeedError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FeedError{StatusCode: resp.StatusCode}
	}

	var parsed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode feed response: %w", err)
	}

	slog.Debug("Feed fetched", "keyword", keyword, "records", len(parsed.Data))

	if parsed.Data == nil {
		return []RawArticle{}, nil
	}

	return parsed.Data, nil
}
