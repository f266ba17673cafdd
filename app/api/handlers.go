package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ilyakh/newsdigest/app/database"
	"github.com/ilyakh/newsdigest/app/summary"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func NewHandler(repo database.ArticleRepository, summarizer SummarizerInterface,
	ingester IngesterInterface, fetchKeyword string) *Handler {
	return &Handler{
		repo:         repo,
		summarizer:   summarizer,
		ingester:     ingester,
		fetchKeyword: fetchKeyword,
	}
}

func (h *Handler) ListArticles(c *gin.Context) {
	page, err := parsePositiveInt(c.Query("page"), 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
		return
	}

	pageSize, err := parsePositiveInt(c.Query("page_size"), defaultPageSize)
	if err != nil || pageSize > maxPageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page_size must be between 1 and 100"})
		return
	}

	opts := database.ListOptions{
		Page:          page,
		PageSize:      pageSize,
		SearchKeyword: c.Query("search_keyword"),
		Source:        c.Query("source"),
	}

	articles, total, err := h.repo.List(opts)
	if err != nil {
		slog.Error("Database error", "operation", "list_articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list articles"})
		return
	}

	results := make([]ArticleResponse, 0, len(articles))
	for _, article := range articles {
		results = append(results, toArticleResponse(article))
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Results:  results,
	})
}

func (h *Handler) GetArticle(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	article, err := h.repo.GetByID(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_article", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load article"})
		return
	}

	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, ArticleDetailResponse{
		ArticleResponse: toArticleResponse(*article),
		Content:         article.Content,
	})
}

func (h *Handler) GetSummary(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	result, err := h.summarizer.GetSummary(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, summary.ErrArticleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		case errors.Is(err, summary.ErrNoContent):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Article has no content to summarize"})
		default:
			slog.Error("Summary generation failed", "id", id, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate summary"})
		}
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{
		ID:      result.ID,
		Title:   result.Title,
		Summary: result.Summary,
		Cached:  result.Cached,
	})
}

func (h *Handler) TriggerFetch(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		keyword = h.fetchKeyword
	}

	result, err := h.ingester.Run(c.Request.Context(), keyword)
	if err != nil {
		slog.Error("Manual ingestion failed", "keyword", keyword, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "ingestion failed"})
		return
	}

	c.JSON(http.StatusOK, FetchResponse{
		Fetched: result.Fetched,
		Skipped: result.Skipped,
		Failed:  result.Failed,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{"status": "ok"}

	if count, err := h.repo.GetArticleCount(); err == nil {
		health["articles"] = count
	}

	c.JSON(http.StatusOK, health)
}

func parsePositiveInt(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return 0, errors.New("not a positive integer")
	}

	return parsed, nil
}
