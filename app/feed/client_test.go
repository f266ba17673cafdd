package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchFeed_ParsesDataArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "markets" {
			t.Errorf("Expected search param 'markets', got '%s'", got)
		}
		if got := r.URL.Query().Get("api_token"); got != "test-token" {
			t.Errorf("Expected api_token 'test-token', got '%s'", got)
		}
		if got := r.URL.Query().Get("language"); got != "en" {
			t.Errorf("Expected language 'en', got '%s'", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": [
				{
					"uuid": "ext-1",
					"title": "First Article",
					"description": "First description",
					"snippet": "First snippet",
					"url": "https://example.com/1",
					"image_url": "https://example.com/1.jpg",
					"source": "example.com",
					"language": "en",
					"published_at": "2024-05-01T10:00:00.000000Z"
				},
				{
					"uuid": "ext-2",
					"title": "Second Article",
					"url": "https://example.com/2"
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "test-token", "Test Agent")

	articles, err := client.FetchFeed(context.Background(), "markets")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("Expected 2 articles, got: %d", len(articles))
	}

	first := articles[0]
	if first.UUID != "ext-1" {
		t.Errorf("Expected UUID 'ext-1', got '%s'", first.UUID)
	}
	if first.Title != "First Article" {
		t.Errorf("Expected title 'First Article', got '%s'", first.Title)
	}
	if first.PublishedAt != "2024-05-01T10:00:00.000000Z" {
		t.Errorf("Expected published_at '2024-05-01T10:00:00.000000Z', got '%s'", first.PublishedAt)
	}

	// Fields absent in the response decode to their zero values
	second := articles[1]
	if second.Description != "" {
		t.Errorf("Expected empty description, got '%s'", second.Description)
	}
	if second.PublishedAt != "" {
		t.Errorf("Expected empty published_at, got '%s'", second.PublishedAt)
	}
}

func TestFetchFeed_EmptyDataArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "test-token", "Test Agent")

	articles, err := client.FetchFeed(context.Background(), "markets")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("Expected 0 articles, got: %d", len(articles))
	}
}

func TestFetchFeed_MissingDataField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meta": {"found": 0}}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "test-token", "Test Agent")

	articles, err := client.FetchFeed(context.Background(), "markets")
	if err != nil {
		t.Fatalf("Expected no error for missing data field, got: %v", err)
	}
	if articles == nil {
		t.Fatal("Expected empty slice, got nil")
	}
	if len(articles) != 0 {
		t.Errorf("Expected 0 articles, got: %d", len(articles))
	}
}

func TestFetchFeed_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "bad-token", "Test Agent")

	_, err := client.FetchFeed(context.Background(), "markets")
	if err == nil {
		t.Fatal("Expected error for non-2xx response")
	}

	var feedErr *FeedError
	if !errors.As(err, &feedErr) {
		t.Fatalf("Expected *FeedError, got: %T", err)
	}
	if feedErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status code 401, got: %d", feedErr.StatusCode)
	}
}

func TestFetchFeed_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately unreachable

	client := NewClient(http.DefaultClient, server.URL, "test-token", "Test Agent")

	_, err := client.FetchFeed(context.Background(), "markets")
	if err == nil {
		t.Fatal("Expected error for unreachable server")
	}

	var feedErr *FeedError
	if !errors.As(err, &feedErr) {
		t.Fatalf("Expected *FeedError, got: %T", err)
	}
}

func TestFetchFeed_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "test-token", "Test Agent")

	_, err := client.FetchFeed(context.Background(), "markets")
	if err == nil {
		t.Fatal("Expected error for malformed JSON response")
	}
}
