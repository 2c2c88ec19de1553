package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort             = "8080"
	DefaultMarketAPITimeout = 10 * time.Second
	DefaultCacheTTL         = 30 * time.Second
	DefaultDeadlineZone     = "America/Los_Angeles"
)

type MarketAPI struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Config is the service configuration. Values come from defaults, then the
// optional YAML file, then environment variables.
type Config struct {
	Port                string        `yaml:"port"`
	DatabaseURL         string        `yaml:"database_url"`
	RedisURL            string        `yaml:"redis_url"`
	MarketAPI           MarketAPI     `yaml:"market_api"`
	DeadlineZone        string        `yaml:"deadline_zone"`
	AllowedEmailDomains []string      `yaml:"allowed_email_domains"`
	CacheTTL            time.Duration `yaml:"cache_ttl"`
	LogLevel            string        `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Port: DefaultPort,
		MarketAPI: MarketAPI{
			Timeout: DefaultMarketAPITimeout,
		},
		DeadlineZone:        DefaultDeadlineZone,
		AllowedEmailDomains: []string{".edu"},
		CacheTTL:            DefaultCacheTTL,
		LogLevel:            "info",
	}
}

// Load builds a Config. A missing file at path is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("load config: read %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("load config: parse %q: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// RequireMarketAPI reports whether the remote market API is configured.
// Tools that only touch the database skip this check.
func (c Config) RequireMarketAPI() error {
	if strings.TrimSpace(c.MarketAPI.URL) == "" {
		return errors.New("config: MARKET_API_URL is required")
	}
	return nil
}

// RequireDatabase reports whether a database URL is configured.
func (c Config) RequireDatabase() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("config: DATABASE_URL is required")
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = Get("PORT", c.Port)
	c.DatabaseURL = Get("DATABASE_URL", c.DatabaseURL)
	c.RedisURL = Get("REDIS_URL", c.RedisURL)
	c.MarketAPI.URL = strings.TrimRight(Get("MARKET_API_URL", c.MarketAPI.URL), "/")
	c.DeadlineZone = Get("DEADLINE_ZONE", c.DeadlineZone)
	c.LogLevel = Get("LOG_LEVEL", c.LogLevel)

	if v := os.Getenv("ALLOWED_EMAIL_DOMAINS"); v != "" {
		c.AllowedEmailDomains = splitList(v)
	}

	var err error
	if c.MarketAPI.Timeout, err = getDuration("MARKET_API_TIMEOUT", c.MarketAPI.Timeout); err != nil {
		return err
	}
	if c.CacheTTL, err = getDuration("CACHE_TTL", c.CacheTTL); err != nil {
		return err
	}

	return nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, v)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}
