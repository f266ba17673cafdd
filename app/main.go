package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ilyakh/newsdigest/app/api"
	"github.com/ilyakh/newsdigest/app/cache"
	"github.com/ilyakh/newsdigest/app/cfg"
	"github.com/ilyakh/newsdigest/app/database"
	"github.com/ilyakh/newsdigest/app/feed"
	"github.com/ilyakh/newsdigest/app/ingest"
	"github.com/ilyakh/newsdigest/app/summary"
	"github.com/ilyakh/newsdigest/app/tasks"
)

func main() {
	appConfig, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	if appConfig.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	slog.Info("Starting News Digest server", "version", appConfig.Version)

	// Database connection
	db, err := database.NewConnection(
		appConfig.DBHost, appConfig.DBPort, appConfig.DBUser,
		appConfig.DBPassword, appConfig.DBName)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("Connected to database")

	// Apply schema migrations
	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations applied", "version", version, "dirty", dirty)

	// Redis cache for summaries
	summaryCache, err := cache.NewCache(appConfig.RedisAddr)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer summaryCache.Close()

	// Initialize core components
	httpClient := &http.Client{Timeout: 30 * time.Second}
	articleRepo := database.NewArticleRepository(db)

	feedClient := feed.NewClient(httpClient, appConfig.FeedURL, appConfig.FeedAPIToken, appConfig.UserAgent)
	extractor := feed.NewExtractor(httpClient, appConfig.UserAgent)
	ingester := ingest.NewIngester(feedClient, extractor, articleRepo)

	generator := summary.NewCohereGenerator(appConfig.CohereAPIKey, appConfig.SummaryModel)
	summaryService := summary.NewService(articleRepo, summaryCache, generator,
		time.Duration(appConfig.SummaryCacheTTL)*time.Second)

	// Start the periodic ingestion scheduler
	scheduler := tasks.NewScheduler(ingester, appConfig.FetchKeyword,
		time.Duration(appConfig.FetchIntervalHours)*time.Hour)
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize HTTP server
	apiHandler := api.NewHandler(articleRepo, summaryService, ingester, appConfig.FetchKeyword)
	server := api.NewServer(apiHandler, appConfig.Version)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appConfig.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("News Digest server started successfully")

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	// Graceful shutdown
	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler, cache, and database are released via defer
	slog.Info("News Digest server shutdown complete")
}
