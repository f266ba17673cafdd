// Standalone one-shot ingestion entry point for external schedulers (cron).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/ilyakh/newsdigest/app/cfg"
	"github.com/ilyakh/newsdigest/app/database"
	"github.com/ilyakh/newsdigest/app/feed"
	"github.com/ilyakh/newsdigest/app/ingest"
)

func main() {
	appConfig, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appConfig == nil {
		return
	}

	db, err := database.NewConnection(
		appConfig.DBHost, appConfig.DBPort, appConfig.DBUser,
		appConfig.DBPassword, appConfig.DBName)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if _, _, err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	articleRepo := database.NewArticleRepository(db)
	feedClient := feed.NewClient(httpClient, appConfig.FeedURL, appConfig.FeedAPIToken, appConfig.UserAgent)
	extractor := feed.NewExtractor(httpClient, appConfig.UserAgent)
	ingester := ingest.NewIngester(feedClient, extractor, articleRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := ingester.Run(ctx, appConfig.FetchKeyword)
	if err != nil {
		slog.Error("Ingestion failed", "keyword", appConfig.FetchKeyword, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Fetch complete: fetched=%d skipped=%d failed=%d\n",
		result.Fetched, result.Skipped, result.Failed)
}
