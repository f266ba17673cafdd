package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakh/newsdigest/app/cache"
	"github.com/ilyakh/newsdigest/app/database"
)

const summaryKeyPrefix = "summary:"

var (
	// ErrArticleNotFound indicates the requested article id does not exist
	ErrArticleNotFound = errors.New("article not found")

	// ErrNoContent indicates the article exists but has no content to summarize
	ErrNoContent = errors.New("article has no content to summarize")
)

type Generator interface {
	Summarize(ctx context.Context, content string) (string, error)
}

type SummaryCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

var _ SummaryCache = (*cache.Cache)(nil)

// Result is the outcome of one summary request
type Result struct {
	ID      string
	Title   string
	Summary string
	Cached  bool
}

// Service implements the summary cache-aside protocol: check the cache
// before generating, populate it with a TTL on miss.
type Service struct {
	repo      database.ArticleRepository
	cache     SummaryCache
	generator Generator
	ttl       time.Duration
}

// NewService creates a new summary service
func NewService(repo database.ArticleRepository, summaryCache SummaryCache, generator Generator, ttl time.Duration) *Service {
	return &Service{
		repo:      repo,
		cache:     summaryCache,
		generator: generator,
		ttl:       ttl,
	}
}

// SummaryKey returns the cache key for an article's summary
func SummaryKey(articleID string) string {
	return summaryKeyPrefix + articleID
}

// GetSummary returns a summary for the given article, generating and
// caching one when no fresh cached copy exists. The cache is an
// optimization: read failures degrade to a regeneration and write
// failures are logged without failing the request.
func (s *Service) GetSummary(ctx context.Context, articleID string) (Result, error) {
	article, err := s.repo.GetByID(articleID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load article: %w", err)
	}
	if article == nil {
		return Result{}, ErrArticleNotFound
	}

	if article.Content == nil || strings.TrimSpace(*article.Content) == "" {
		return Result{}, ErrNoContent
	}

	key := SummaryKey(articleID)

	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("Summary cache read failed, regenerating", "article_id", articleID, "error", err)
	} else if cached != "" {
		return Result{ID: article.ID, Title: article.Title, Summary: cached, Cached: true}, nil
	}

	text, err := s.generator.Summarize(ctx, *article.Content)
	if err != nil {
		return Result{}, fmt.Errorf("failed to generate summary: %w", err)
	}

	if err := s.cache.Set(ctx, key, text, s.ttl); err != nil {
		slog.Warn("Summary cache write failed", "article_id", articleID, "error", err)
	}

	return Result{ID: article.ID, Title: article.Title, Summary: text, Cached: false}, nil
}
