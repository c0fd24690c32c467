package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Unset all COMPASS_ env vars to test pure defaults
	envVars := []string{
		"COMPASS_PORT", "COMPASS_METRICS_PORT", "COMPASS_API_KEY",
		"COMPASS_DATABASE_URL", "COMPASS_REDIS_ADDR", "COMPASS_REDIS_PASSWORD",
		"COMPASS_EVENTS_URL", "COMPASS_MATCH_MODE", "COMPASS_OPTIMIZED_ENABLED",
		"COMPASS_MEMO_CACHE_SIZE", "COMPASS_SHORTLIST_MARGIN", "COMPASS_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("expected redis disabled by default, got '%s'", cfg.Redis.Addr)
	}
	if cfg.Redis.TTLSeconds != 900 {
		t.Errorf("expected result TTL 900s, got %d", cfg.Redis.TTLSeconds)
	}
	if cfg.Events.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Events.URL)
	}
	if cfg.Matching.Mode != "balanced" {
		t.Errorf("expected mode 'balanced', got '%s'", cfg.Matching.Mode)
	}
	if !cfg.Matching.OptimizedEnabled {
		t.Error("expected optimized path enabled by default")
	}
	if cfg.Matching.MemoCacheSize != 4096 {
		t.Errorf("expected memo cache size 4096, got %d", cfg.Matching.MemoCacheSize)
	}
	if cfg.Matching.ShortlistMargin != 5 {
		t.Errorf("expected shortlist margin 5, got %d", cfg.Matching.ShortlistMargin)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}

	// Duration helpers
	if cfg.ResultTTL() != 15*time.Minute {
		t.Errorf("expected ResultTTL 15m, got %v", cfg.ResultTTL())
	}
	if cfg.MemoTTL() != 10*time.Minute {
		t.Errorf("expected MemoTTL 10m, got %v", cfg.MemoTTL())
	}
	if cfg.RefreshInterval() != time.Minute {
		t.Errorf("expected RefreshInterval 1m, got %v", cfg.RefreshInterval())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("COMPASS_PORT", "9000")
	t.Setenv("COMPASS_METRICS_PORT", "9001")
	t.Setenv("COMPASS_API_KEY", "secret-key")
	t.Setenv("COMPASS_DATABASE_URL", "postgres://localhost/compass_test")
	t.Setenv("COMPASS_REDIS_ADDR", "redis:6379")
	t.Setenv("COMPASS_EVENTS_URL", "nats://nats:4222")
	t.Setenv("COMPASS_MATCH_MODE", "academic-first")
	t.Setenv("COMPASS_OPTIMIZED_ENABLED", "false")
	t.Setenv("COMPASS_MEMO_CACHE_SIZE", "256")
	t.Setenv("COMPASS_SHORTLIST_MARGIN", "10")
	t.Setenv("COMPASS_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9001 {
		t.Errorf("expected metrics port 9001, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.APIKey != "secret-key" {
		t.Errorf("expected api key 'secret-key', got '%s'", cfg.Server.APIKey)
	}
	if cfg.Database.URL != "postgres://localhost/compass_test" {
		t.Errorf("expected database URL, got '%s'", cfg.Database.URL)
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Errorf("expected redis addr, got '%s'", cfg.Redis.Addr)
	}
	if cfg.Events.URL != "nats://nats:4222" {
		t.Errorf("expected events URL, got '%s'", cfg.Events.URL)
	}
	if cfg.Matching.Mode != "academic-first" {
		t.Errorf("expected mode 'academic-first', got '%s'", cfg.Matching.Mode)
	}
	if cfg.Matching.OptimizedEnabled {
		t.Error("expected optimized path disabled")
	}
	if cfg.Matching.MemoCacheSize != 256 {
		t.Errorf("expected memo cache size 256, got %d", cfg.Matching.MemoCacheSize)
	}
	if cfg.Matching.ShortlistMargin != 10 {
		t.Errorf("expected shortlist margin 10, got %d", cfg.Matching.ShortlistMargin)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	os.Unsetenv("COMPASS_MATCH_MODE")
	os.Unsetenv("COMPASS_PORT")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: 8800
matching:
  mode: exploration
  weights:
    academic: 0.4
    location: 0.2
    field: 0.4
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8800 {
		t.Errorf("expected port 8800 from file, got %d", cfg.Server.Port)
	}
	if cfg.Matching.Mode != "exploration" {
		t.Errorf("expected mode 'exploration', got '%s'", cfg.Matching.Mode)
	}
	if cfg.Matching.Weights.Field != 0.4 {
		t.Errorf("expected field weight 0.4, got %f", cfg.Matching.Weights.Field)
	}
	// File must not clobber untouched defaults.
	if cfg.Matching.MemoCacheSize != 4096 {
		t.Errorf("expected default memo cache size, got %d", cfg.Matching.MemoCacheSize)
	}
}
