// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/AI-Template-SDK/brand-visibility/internal/mentions"
)

type QdrantConfig struct {
	Host       string
	Port       int
	Collection string
}

type TypesenseConfig struct {
	Host       string
	Port       int
	APIKey     string
	Collection string
}

// SearchConfig controls how AI platforms are queried
type SearchConfig struct {
	RatePerSecond float64
	Burst         int
	CacheTTL      time.Duration
	MockFallback  bool
}

// ScoringConfig is the process-wide mention scoring configuration
type ScoringConfig struct {
	ContextWindow   int
	SentimentWindow int
	MaxContexts     int
	VocabularyFile  string
}

type Config struct {
	Port              string
	Environment       string
	InngestEventKey   string
	InngestSigningKey string
	OpenAIAPIKey      string
	AnthropicAPIKey   string
	PerplexityAPIKey  string
	OpenAIModel       string
	AnthropicModel    string
	PerplexityModel   string
	EmbeddingModel    string
	SlackWebhookURL   string
	DatabaseURL       string
	Database          DatabaseConfig
	Qdrant            QdrantConfig
	Typesense         TypesenseConfig
	Search            SearchConfig
	Scoring           ScoringConfig
}

type DatabaseConfig struct {
	// SQLitePath selects an embedded sqlite database instead of postgres
	SQLitePath      string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

func Load() *Config {
	config := &Config{
		Port:              getEnv("PORT", "8000"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		InngestEventKey:   os.Getenv("INNGEST_EVENT_KEY"),
		InngestSigningKey: os.Getenv("INNGEST_SIGNING_KEY"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		PerplexityAPIKey:  os.Getenv("PERPLEXITY_API_KEY"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicModel:    getEnv("ANTHROPIC_MODEL", "claude-3-haiku-20240307"),
		PerplexityModel:   getEnv("PERPLEXITY_MODEL", "sonar"),
		EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		SlackWebhookURL:   os.Getenv("SLACK_WEBHOOK_URL"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
	}

	dbConfig, err := parseDatabaseConfig()
	if err != nil {
		// If DATABASE_URL parsing fails, try individual env vars as fallback
		dbConfig = DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "brand_visibility"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getEnvInt("DB_CONN_MAX_LIFETIME", 300),
		}
	}
	dbConfig.SQLitePath = os.Getenv("SQLITE_PATH")
	config.Database = dbConfig

	config.Qdrant = QdrantConfig{
		Host:       getEnv("QDRANT_HOST", "qdrant"),
		Port:       getEnvInt("QDRANT_PORT", 6334),
		Collection: getEnv("QDRANT_COLLECTION", "platform_responses"),
	}
	config.Typesense = TypesenseConfig{
		Host:       getEnv("TYPESENSE_HOST", "typesense"),
		Port:       getEnvInt("TYPESENSE_PORT", 8108),
		APIKey:     getEnv("TYPESENSE_API_KEY", "xyz"),
		Collection: getEnv("TYPESENSE_COLLECTION", "mention_contexts"),
	}

	config.Search = SearchConfig{
		RatePerSecond: getEnvFloat("SEARCH_RATE_PER_SECOND", 2),
		Burst:         getEnvInt("SEARCH_BURST", 4),
		CacheTTL:      time.Duration(getEnvInt("SEARCH_CACHE_TTL_SECONDS", 300)) * time.Second,
		MockFallback:  getEnvBool("SEARCH_MOCK_FALLBACK", true),
	}
	config.Scoring = ScoringConfig{
		ContextWindow:   getEnvInt("CONTEXT_WINDOW", mentions.DefaultContextWindow),
		SentimentWindow: getEnvInt("SENTIMENT_WINDOW", mentions.DefaultSentimentWindow),
		MaxContexts:     getEnvInt("MAX_CONTEXTS", mentions.DefaultMaxContexts),
		VocabularyFile:  os.Getenv("VOCABULARY_FILE"),
	}

	return config
}

// NewAnalyzer builds the analyzer shared by every service from the scoring
// configuration.
func (c *Config) NewAnalyzer() (*mentions.Analyzer, error) {
	opts := []mentions.Option{
		mentions.WithContextWindow(c.Scoring.ContextWindow),
		mentions.WithSentimentWindow(c.Scoring.SentimentWindow),
		mentions.WithMaxContexts(c.Scoring.MaxContexts),
	}
	if c.Scoring.VocabularyFile != "" {
		vocab, err := mentions.LoadVocabulary(c.Scoring.VocabularyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load vocabulary: %w", err)
		}
		opts = append(opts, mentions.WithVocabulary(vocab))
	}
	return mentions.NewAnalyzer(opts...), nil
}

func parseDatabaseConfig() (DatabaseConfig, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return DatabaseConfig{}, fmt.Errorf("DATABASE_URL not set")
	}

	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return DatabaseConfig{}, fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	if len(parsedURL.Path) < 2 {
		return DatabaseConfig{}, fmt.Errorf("DATABASE_URL has no database name")
	}

	config := DatabaseConfig{
		Host:            parsedURL.Hostname(),
		Port:            5432, // default
		User:            parsedURL.User.Username(),
		Name:            parsedURL.Path[1:],
		SSLMode:         getEnv("DB_SSLMODE", "require"),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 25),
		ConnMaxLifetime: getEnvInt("DB_CONN_MAX_LIFETIME", 300),
	}
	if sslMode := parsedURL.Query().Get("sslmode"); sslMode != "" {
		config.SSLMode = sslMode
	}

	if password, ok := parsedURL.User.Password(); ok {
		config.Password = password
	}

	if parsedURL.Port() != "" {
		if port, err := strconv.Atoi(parsedURL.Port()); err == nil {
			config.Port = port
		}
	}

	return config, nil
}

// DSN returns the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
