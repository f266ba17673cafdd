package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

const extractTimeout = 30 * time.Second

// Extractor fetches article pages and extracts their readable text.
// Extraction is best effort: every failure mode collapses to "no content"
// and never crosses the adapter boundary as an error.
type Extractor struct {
	httpClient *http.Client
	userAgent  string
}

// NewExtractor creates a new content extractor
func NewExtractor(httpClient *http.Client, userAgent string) *Extractor {
	return &Extractor{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Extract returns the readable text of the page at pageURL, or nil when no
// content could be obtained. An empty extraction result counts as absent.
func (e *Extractor) Extract(ctx context.Context, pageURL string) *string {
	if pageURL == "" {
		return nil
	}

	data, err := e.fetchPage(ctx, pageURL)
	if err != nil {
		slog.Warn("Failed to fetch article page", "url", pageURL, "error", err)
		return nil
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		parsedURL = nil
	}

	article, err := readability.FromReader(strings.NewReader(string(data)), parsedURL)
	if err != nil {
		slog.Warn("Failed to extract content", "url", pageURL, "error", err)
		return nil
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return nil
	}

	slog.Debug("Content extracted successfully", "url", pageURL, "content_length", len(text))

	return &text
}

func (e *Extractor) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, extractTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", pageURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	return io.ReadAll(resp.Body)
}
