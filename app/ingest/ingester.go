package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ilyakh/newsdigest/app/database"
	"github.com/ilyakh/newsdigest/app/feed"
)

type FeedFetcher interface {
	FetchFeed(ctx context.Context, keyword string) ([]feed.RawArticle, error)
}

type ContentExtractor interface {
	Extract(ctx context.Context, pageURL string) *string
}

var _ FeedFetcher = (*feed.Client)(nil)
var _ ContentExtractor = (*feed.Extractor)(nil)

// Result aggregates per-record outcomes of one ingestion run
type Result struct {
	Fetched int
	Skipped int
	Failed  int
}

// Ingester runs the article ingestion pipeline: fetch the feed for a
// keyword, dedup against stored articles by external identifier, enrich
// new records with scraped content, and persist them in one batch.
// Runs are serialized within the process; the unique constraint on
// external_id backstops concurrent runs in other processes.
type Ingester struct {
	fetcher   FeedFetcher
	extractor ContentExtractor
	repo      database.ArticleRepository

	mu sync.Mutex
}

// NewIngester creates a new ingester
func NewIngester(fetcher FeedFetcher, extractor ContentExtractor, repo database.ArticleRepository) *Ingester {
	return &Ingester{
		fetcher:   fetcher,
		extractor: extractor,
		repo:      repo,
	}
}

// Run ingests articles for the given keyword. Records are processed in
// feed response order. Per-record problems (missing external id,
// extraction failure, unparsable timestamp) are absorbed into the counts;
// a feed failure or a commit failure fails the whole call with no partial
// results.
func (i *Ingester) Run(ctx context.Context, keyword string) (Result, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	records, err := i.fetcher.FetchFeed(ctx, keyword)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch feed: %w", err)
	}

	var result Result
	var staged []database.Article

	for _, record := range records {
		if record.UUID == "" {
			result.Failed++
			continue
		}

		exists, err := i.repo.ExistsByExternalID(record.UUID)
		if err != nil {
			return Result{}, fmt.Errorf("failed to check existing article: %w", err)
		}
		if exists {
			// Dedup gate: stored articles are immutable, the feed never
			// overwrites locally captured fields
			result.Skipped++
			continue
		}

		staged = append(staged, database.Article{
			ExternalID:    record.UUID,
			Title:         record.Title,
			Description:   record.Description,
			Snippet:       record.Snippet,
			Content:       i.extractor.Extract(ctx, record.URL),
			URL:           record.URL,
			ImageURL:      record.ImageURL,
			Source:        record.Source,
			Language:      defaultLanguage(record.Language),
			PublishedAt:   parsePublishedAt(record.PublishedAt),
			SearchKeyword: keyword,
		})
		result.Fetched++
	}

	inserted, err := i.repo.InsertBatch(staged)
	if err != nil {
		return Result{}, fmt.Errorf("failed to persist articles: %w", err)
	}

	// A concurrent run may have inserted the same external id between our
	// existence check and the commit; the storage backstop drops such rows
	// and they count as skipped
	if lost := len(staged) - inserted; lost > 0 {
		result.Fetched -= lost
		result.Skipped += lost
		slog.Warn("Concurrent ingestion detected, recounted conflicting rows as skipped",
			"keyword", keyword, "conflicts", lost)
	}

	slog.Info("Ingestion completed",
		"keyword", keyword,
		"fetched", result.Fetched,
		"skipped", result.Skipped,
		"failed", result.Failed)

	return result, nil
}

func defaultLanguage(language string) string {
	if language == "" {
		return "en"
	}
	return language
}

// parsePublishedAt parses the feed's ISO-8601 timestamp. Parse failures
// drop the timestamp to absent rather than rejecting the record.
func parsePublishedAt(value string) *time.Time {
	if value == "" {
		return nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		slog.Debug("Failed to parse published_at, storing as absent", "value", value, "error", err)
		return nil
	}

	return &parsed
}
