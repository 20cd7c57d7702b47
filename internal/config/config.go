package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mtlprog/stockstat/internal/yahoo"
)

// Price sources understood by PRICE_SOURCE.
const (
	SourceYahoo    = "yahoo"
	SourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	HTTPPort              string
	DefaultSymbol         string
	PriceSource           string
	YahooURL              string
	YahooRetryMax         int
	YahooRetryBaseDelay   time.Duration
	YahooTimeout          time.Duration
	HTTPSProxy            string
	DatabaseURL           string
	GoogleCredentialsJSON string
	LogLevel              slog.Level
	LogFormat             string
}

// LoadDotEnv loads variables from the given .env files without overriding ones already set.
// Missing files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to load env file", "file", f, "error", err)
		}
	}
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	cfg := Config{
		HTTPPort:              envOrDefault("HTTP_PORT", "8080"),
		DefaultSymbol:         strings.ToUpper(envOrDefault("DEFAULT_SYMBOL", "VTI")),
		PriceSource:           envOrDefault("PRICE_SOURCE", SourceYahoo),
		YahooURL:              envOrDefault("YAHOO_URL", yahoo.DefaultBaseURL),
		YahooRetryMax:         envOrDefaultInt("YAHOO_RETRY_MAX", 3),
		YahooRetryBaseDelay:   envOrDefaultDuration("YAHOO_RETRY_BASE_DELAY", 2*time.Second),
		YahooTimeout:          envOrDefaultDuration("YAHOO_TIMEOUT", 30*time.Second),
		HTTPSProxy:            envOrDefault("HTTPS_PROXY", ""),
		DatabaseURL:           envOrDefault("DATABASE_URL", ""),
		GoogleCredentialsJSON: envOrDefault("GOOGLE_CREDENTIALS_JSON", ""),
		LogLevel:              envOrDefaultLevel("LOG_LEVEL", slog.LevelInfo),
		LogFormat:             envOrDefault("LOG_FORMAT", "text"),
	}

	switch cfg.PriceSource {
	case SourceYahoo:
	case SourcePostgres:
		if cfg.DatabaseURL == "" {
			slog.Warn("required env var not set", "key", "DATABASE_URL", "price_source", cfg.PriceSource)
		}
	default:
		slog.Warn("unknown price source, using default", "value", cfg.PriceSource, "default", SourceYahoo)
		cfg.PriceSource = SourceYahoo
	}

	return cfg
}

func envOrDefault(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}

func envOrDefaultLevel(key string, defaultVal slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err != nil {
			slog.Warn("invalid log level env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return lvl
	}
	return defaultVal
}
