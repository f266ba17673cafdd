package api

import (
	"context"
	"time"

	"github.com/ilyakh/newsdigest/app/database"
	"github.com/ilyakh/newsdigest/app/ingest"
	"github.com/ilyakh/newsdigest/app/summary"
)

type SummarizerInterface interface {
	GetSummary(ctx context.Context, articleID string) (summary.Result, error)
}

var _ SummarizerInterface = (*summary.Service)(nil)

type IngesterInterface interface {
	Run(ctx context.Context, keyword string) (ingest.Result, error)
}

var _ IngesterInterface = (*ingest.Ingester)(nil)

type Handler struct {
	repo         database.ArticleRepository
	summarizer   SummarizerInterface
	ingester     IngesterInterface
	fetchKeyword string
}

// ArticleResponse is the list representation of a stored article
type ArticleResponse struct {
	ID            string     `json:"id"`
	ExternalID    string     `json:"external_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Snippet       string     `json:"snippet,omitempty"`
	URL           string     `json:"url"`
	ImageURL      string     `json:"image_url,omitempty"`
	Source        string     `json:"source,omitempty"`
	Language      string     `json:"language,omitempty"`
	PublishedAt   *time.Time `json:"published_at"`
	SearchKeyword string     `json:"search_keyword,omitempty"`
	FetchedAt     time.Time  `json:"fetched_at"`
}

// ArticleDetailResponse extends the list representation with content
type ArticleDetailResponse struct {
	ArticleResponse
	Content *string `json:"content"`
}

type PaginatedResponse struct {
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Results  []ArticleResponse `json:"results"`
}

type SummaryResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Cached  bool   `json:"cached"`
}

type FetchResponse struct {
	Fetched int `json:"fetched"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

func toArticleResponse(a database.Article) ArticleResponse {
	return ArticleResponse{
		ID:            a.ID,
		ExternalID:    a.ExternalID,
		Title:         a.Title,
		Description:   a.Description,
		Snippet:       a.Snippet,
		URL:           a.URL,
		ImageURL:      a.ImageURL,
		Source:        a.Source,
		Language:      a.Language,
		PublishedAt:   a.PublishedAt,
		SearchKeyword: a.SearchKeyword,
		FetchedAt:     a.FetchedAt,
	}
}
