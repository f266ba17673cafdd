package feed

import "fmt"

// RawArticle is one article object as returned by the news search API.
// Every field is optional at the boundary; the ingestion pipeline decides
// which absences are tolerable.
type RawArticle struct {
	UUID        string `json:"uuid"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Snippet     string `json:"snippet"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url"`
	Source      string `json:"source"`
	Language    string `json:"language"`
	PublishedAt string `json:"published_at"`
}

type feedResponse struct {
	Data []RawArticle `json:"data"`
}

// FeedError is returned when the news search API call itself fails,
// either at the transport level or with a non-2xx response.
type FeedError struct {
	StatusCode int
	Err        error
}

func (e *FeedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("feed request failed: %v", e.Err)
	}
	return fmt.Sprintf("feed request failed with status %d", e.StatusCode)
}

func (e *FeedError) Unwrap() error {
	return e.Err
}
