package summary

import (
	"context"
	"fmt"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

const (
	summaryPromptTemplate = "Summarize the following news article in 2-3 concise sentences:\n\n%s"

	// Bounds output length to keep generation cost and latency predictable
	summaryMaxTokens = 300

	generateTimeout = 60 * time.Second
)

// CohereGenerator produces article summaries through the Cohere chat API
type CohereGenerator struct {
	client *cohereclient.Client
	model  string
}

var _ Generator = (*CohereGenerator)(nil)

// NewCohereGenerator creates a new Cohere-backed summary generator
func NewCohereGenerator(apiKey, model string) *CohereGenerator {
	return &CohereGenerator{
		client: cohereclient.NewClient(cohereclient.WithToken(apiKey)),
		model:  model,
	}
}

// Summarize generates a short summary of the given article content.
// Failures propagate to the caller; there is no retry and no fallback text.
func (g *CohereGenerator) Summarize(ctx context.Context, content string) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	resp, err := g.client.Chat(timeoutCtx, &cohere.ChatRequest{
		Message:   fmt.Sprintf(summaryPromptTemplate, content),
		Model:     cohere.String(g.model),
		MaxTokens: cohere.Int(summaryMaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}

	return resp.Text, nil
}
