package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mtlprog/stockstat/internal/yahoo"
)

var allKeys = []string{
	"HTTP_PORT", "DEFAULT_SYMBOL", "PRICE_SOURCE", "YAHOO_URL", "YAHOO_RETRY_MAX",
	"YAHOO_RETRY_BASE_DELAY", "YAHOO_TIMEOUT", "HTTPS_PROXY", "DATABASE_URL",
	"GOOGLE_CREDENTIALS_JSON", "LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
	if cfg.DefaultSymbol != "VTI" {
		t.Errorf("DefaultSymbol = %q, want VTI", cfg.DefaultSymbol)
	}
	if cfg.PriceSource != SourceYahoo {
		t.Errorf("PriceSource = %q, want yahoo", cfg.PriceSource)
	}
	if cfg.YahooURL != yahoo.DefaultBaseURL {
		t.Errorf("YahooURL = %q, want default", cfg.YahooURL)
	}
	if cfg.YahooRetryMax != 3 {
		t.Errorf("YahooRetryMax = %d, want 3", cfg.YahooRetryMax)
	}
	if cfg.YahooRetryBaseDelay != 2*time.Second {
		t.Errorf("YahooRetryBaseDelay = %v, want 2s", cfg.YahooRetryBaseDelay)
	}
	if cfg.YahooTimeout != 30*time.Second {
		t.Errorf("YahooTimeout = %v, want 30s", cfg.YahooTimeout)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want INFO", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want text", cfg.LogFormat)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DEFAULT_SYMBOL", "spy")
	t.Setenv("PRICE_SOURCE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/testdb")
	t.Setenv("YAHOO_RETRY_MAX", "10")
	t.Setenv("YAHOO_RETRY_BASE_DELAY", "5s")
	t.Setenv("HTTPS_PROXY", "http://proxy:3128")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg := Load()

	if cfg.HTTPPort != "9090" {
		t.Errorf("HTTPPort = %q, want 9090", cfg.HTTPPort)
	}
	if cfg.DefaultSymbol != "SPY" {
		t.Errorf("DefaultSymbol = %q, want SPY", cfg.DefaultSymbol)
	}
	if cfg.PriceSource != SourcePostgres {
		t.Errorf("PriceSource = %q, want postgres", cfg.PriceSource)
	}
	if cfg.DatabaseURL != "postgres://localhost/testdb" {
		t.Errorf("DatabaseURL = %q, want override", cfg.DatabaseURL)
	}
	if cfg.YahooRetryMax != 10 {
		t.Errorf("YahooRetryMax = %d, want 10", cfg.YahooRetryMax)
	}
	if cfg.YahooRetryBaseDelay != 5*time.Second {
		t.Errorf("YahooRetryBaseDelay = %v, want 5s", cfg.YahooRetryBaseDelay)
	}
	if cfg.HTTPSProxy != "http://proxy:3128" {
		t.Errorf("HTTPSProxy = %q, want override", cfg.HTTPSProxy)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want DEBUG", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}
}

func TestLoadInvalidEnvFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("YAHOO_RETRY_MAX", "not-a-number")
	t.Setenv("YAHOO_RETRY_BASE_DELAY", "invalid-duration")
	t.Setenv("PRICE_SOURCE", "bloomberg")
	t.Setenv("LOG_LEVEL", "loud")

	cfg := Load()

	if cfg.YahooRetryMax != 3 {
		t.Errorf("YahooRetryMax = %d, want default 3 on invalid input", cfg.YahooRetryMax)
	}
	if cfg.YahooRetryBaseDelay != 2*time.Second {
		t.Errorf("YahooRetryBaseDelay = %v, want default 2s on invalid input", cfg.YahooRetryBaseDelay)
	}
	if cfg.PriceSource != SourceYahoo {
		t.Errorf("PriceSource = %q, want yahoo on unknown source", cfg.PriceSource)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want INFO on invalid input", cfg.LogLevel)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "7070")

	path := filepath.Join(t.TempDir(), ".env")
	content := "HTTP_PORT=6060\nDEFAULT_SYMBOL=qqq\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing env file: %v", err)
	}

	LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env"))
	t.Cleanup(func() { os.Unsetenv("DEFAULT_SYMBOL") })

	cfg := Load()

	if cfg.HTTPPort != "7070" {
		t.Errorf("HTTPPort = %q, want 7070 (process env wins)", cfg.HTTPPort)
	}
	if cfg.DefaultSymbol != "QQQ" {
		t.Errorf("DefaultSymbol = %q, want QQQ from env file", cfg.DefaultSymbol)
	}
}
