package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Events   EventsConfig   `yaml:"events"`
	Matching MatchingConfig `yaml:"matching"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	APIKey      string `yaml:"api_key"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

type MatchingConfig struct {
	Mode                string          `yaml:"mode"`
	Weights             MatchingWeights `yaml:"weights"`
	OptimizedEnabled    bool            `yaml:"optimized_enabled"`
	MemoCacheSize       int             `yaml:"memo_cache_size"`
	MemoCacheTTLSeconds int             `yaml:"memo_cache_ttl_seconds"`
	ShortlistMargin     int             `yaml:"shortlist_margin"`
	RefreshIntervalMs   int             `yaml:"refresh_interval_ms"`
}

type MatchingWeights struct {
	Academic float64 `yaml:"academic"`
	Location float64 `yaml:"location"`
	Field    float64 `yaml:"field"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) ResultTTL() time.Duration {
	return time.Duration(c.Redis.TTLSeconds) * time.Second
}

func (c *Config) MemoTTL() time.Duration {
	return time.Duration(c.Matching.MemoCacheTTLSeconds) * time.Second
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Matching.RefreshIntervalMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Redis: RedisConfig{
			Addr:       "",
			TTLSeconds: 900,
		},
		Events: EventsConfig{
			URL: "nats://localhost:4222",
		},
		Matching: MatchingConfig{
			Mode:                "balanced",
			OptimizedEnabled:    true,
			MemoCacheSize:       4096,
			MemoCacheTTLSeconds: 600,
			ShortlistMargin:     5,
			RefreshIntervalMs:   60000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("COMPASS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("COMPASS_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("COMPASS_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("COMPASS_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("COMPASS_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("COMPASS_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("COMPASS_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("COMPASS_MATCH_MODE"); v != "" {
		cfg.Matching.Mode = v
	}
	if v := os.Getenv("COMPASS_OPTIMIZED_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Matching.OptimizedEnabled = b
		}
	}
	if v := os.Getenv("COMPASS_MEMO_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Matching.MemoCacheSize = n
		}
	}
	if v := os.Getenv("COMPASS_SHORTLIST_MARGIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Matching.ShortlistMargin = n
		}
	}
	if v := os.Getenv("COMPASS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
