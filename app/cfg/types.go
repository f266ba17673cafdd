package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Cache configuration
	RedisAddr       string
	SummaryCacheTTL int

	// External API configuration
	FeedURL      string
	FeedAPIToken string
	CohereAPIKey string
	SummaryModel string

	// Ingestion configuration
	FetchKeyword       string
	FetchIntervalHours int

	// Application configuration
	Port string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
