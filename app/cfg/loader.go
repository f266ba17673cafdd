package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"postgres" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" default:"postgres" description:"Database password (required)" required:"true"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"articles" description:"Database name"`

	// Cache configuration
	RedisAddr       string `long:"redis-addr" env:"REDIS_ADDR" default:"localhost:6379" description:"Redis address (host:port)"`
	SummaryCacheTTL int    `long:"summary-cache-ttl" env:"SUMMARY_CACHE_TTL" default:"86400" description:"Summary cache TTL in seconds"`

	// External API configuration
	FeedURL      string `long:"feed-url" env:"FEED_URL" default:"https://api.marketaux.com/v1/news/all" description:"News search API endpoint"`
	FeedAPIToken string `long:"feed-api-token" env:"FEED_API_TOKEN" description:"News search API token (required)" required:"true"`
	CohereAPIKey string `long:"cohere-api-key" env:"COHERE_API_KEY" description:"Cohere API key (required)" required:"true"`
	SummaryModel string `long:"summary-model" env:"SUMMARY_MODEL" default:"command-r-08-2024" description:"Cohere model used for article summaries"`

	// Ingestion configuration
	FetchKeyword       string `long:"fetch-keyword" env:"FETCH_KEYWORD" default:"markets" description:"Default search keyword for scheduled ingestion"`
	FetchIntervalHours int    `long:"fetch-interval-hours" env:"FETCH_INTERVAL_HOURS" default:"6" description:"Hours between scheduled ingestion runs"`

	// Application configuration
	Port string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"News Digest/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBHost:             raw.DBHost,
		DBPort:             raw.DBPort,
		DBUser:             raw.DBUser,
		DBPassword:         raw.DBPassword,
		DBName:             raw.DBName,
		RedisAddr:          raw.RedisAddr,
		SummaryCacheTTL:    raw.SummaryCacheTTL,
		FeedURL:            raw.FeedURL,
		FeedAPIToken:       raw.FeedAPIToken,
		CohereAPIKey:       raw.CohereAPIKey,
		SummaryModel:       raw.SummaryModel,
		FetchKeyword:       raw.FetchKeyword,
		FetchIntervalHours: raw.FetchIntervalHours,
		Port:               raw.Port,
		UserAgent:          raw.UserAgent,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
