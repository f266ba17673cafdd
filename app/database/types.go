package database

import (
	"time"
)

// Article is a persisted news article. Rows are insert-only: once captured
// from the feed they are never updated or deleted.
type Article struct {
	ID            string // Database UUID
	ExternalID    string // Identifier assigned by the feed source, dedup key
	Title         string
	Description   string
	Snippet       string
	Content       *string // Absent until content extraction succeeds
	URL           string
	ImageURL      string
	Source        string
	Language      string
	PublishedAt   *time.Time // Absent when the feed timestamp could not be parsed
	SearchKeyword string
	FetchedAt     time.Time
}

// ListOptions holds filtering and pagination parameters for article listings.
type ListOptions struct {
	Page          int
	PageSize      int
	SearchKeyword string
	Source        string
}
