package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Ledger backends.
const (
	LedgerFile     = "file"
	LedgerPostgres = "postgres"
	LedgerMemory   = "memory"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Logging
	LogLevel string // debug, info, warn or error

	// Server
	ServerAddr string
	BaseURL    string

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // Client CA for mTLS; optional

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Rate limiting
	RateLimitMax int    // Requests per minute per IP
	RedisURL     string // Limiter storage; in-memory when empty

	// Ledger
	LedgerBackend string // file, postgres or memory
	LedgerFile    string
	DatabaseURL   string
	StatsCacheTTL time.Duration

	// Topic generation
	BriefDir             string
	TopicSchedule        string // cron expression, UTC
	EnableTopicScheduler bool
	RandomSeed           int64 // 0 means seed from the clock at start-up

	// Pricing
	PricingTimezone string

	// Admin
	AdminAPIKey string

	// Catalogue overrides
	ConfigFile string

	// Third-party credentials. Missing values degrade the matching feature.
	GeminiAPIKey        string
	MediumToken         string
	PinterestToken      string
	SpotifyClientID     string
	SpotifyClientSecret string
	GSCCredentialsFile  string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", ""),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		TLSEnabled:  getEnv("TLS_CERT_FILE", "") != "" && getEnv("TLS_KEY_FILE", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:   getEnv("TLS_CA_FILE", ""),

		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 100),
		RedisURL:     getEnv("REDIS_URL", ""),

		LedgerBackend: getEnv("LEDGER_BACKEND", LedgerFile),
		LedgerFile:    getEnv("LEDGER_FILE", "data/topics_database.json"),
		DatabaseURL:   getEnv("DATABASE_URL", "postgres://localhost:5432/titan?sslmode=disable"),
		StatsCacheTTL: getEnvDuration("STATS_CACHE_TTL", 30*time.Second),

		BriefDir:             getEnv("BRIEF_DIR", "data/briefs"),
		TopicSchedule:        getEnv("TOPIC_SCHEDULE", "0 6 * * *"),
		EnableTopicScheduler: getEnv("ENABLE_TOPIC_SCHEDULER", "") != "",
		RandomSeed:           int64(getEnvInt("RANDOM_SEED", 0)),

		PricingTimezone: getEnv("PRICING_TIMEZONE", "Europe/London"),

		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
		ConfigFile:  getEnv("CONFIG_FILE", "config.yaml"),

		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		MediumToken:         getEnv("MEDIUM_TOKEN", ""),
		PinterestToken:      getEnv("PINTEREST_TOKEN", ""),
		SpotifyClientID:     getEnv("SPOTIFY_CLIENT_ID", ""),
		SpotifyClientSecret: getEnv("SPOTIFY_CLIENT_SECRET", ""),
		GSCCredentialsFile:  getEnv("GSC_CREDENTIALS_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, value, fallback)
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// Location returns the pricing time zone, falling back to UTC when the zone
// database does not know the configured name.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.PricingTimezone)
	if err != nil {
		log.Printf("Unknown PRICING_TIMEZONE %q, using UTC", c.PricingTimezone)
		return time.UTC
	}
	return loc
}
