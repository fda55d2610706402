package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/fazil-api/prayer-times-service/internal/cache"
)

// Config holds service configuration loaded from YAML and env.
type Config struct {
	ServerPort string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	RateLimitRPS   int
	RateLimitBurst int

	CacheCapacity int
	TTLToday      time.Duration
	TTLFuture     time.Duration
	TTLPast       time.Duration
	TTLQibla      time.Duration

	WarmCache     bool
	WarmCron      string
	WarmLocations []cache.WarmLocation

	PersistenceEnabled bool
	PostgresDSN        string
}

type fileConfig struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Request struct {
		Timeout string `yaml:"timeout"`
	} `yaml:"request"`

	Cache struct {
		Capacity int `yaml:"capacity"`
		TTL      struct {
			Today  string `yaml:"today"`
			Future string `yaml:"future"`
			Past   string `yaml:"past"`
			Qibla  string `yaml:"qibla"`
		} `yaml:"ttl"`
		Warming struct {
			Enabled   bool                 `yaml:"enabled"`
			Cron      string               `yaml:"cron"`
			Locations []cache.WarmLocation `yaml:"locations"`
		} `yaml:"warming"`
	} `yaml:"cache"`

	Reliability struct {
		RateLimitRPS   int `yaml:"rate_limit_rps"`
		RateLimitBurst int `yaml:"rate_limit_burst"`
	} `yaml:"reliability"`

	Shutdown struct {
		Timeout string `yaml:"timeout"`
	} `yaml:"shutdown"`

	Persistence struct {
		Enabled bool   `yaml:"enabled"`
		DSN     string `yaml:"dsn"`
	} `yaml:"persistence"`
}

// Load reads configuration from config/{ENV_NAME}.yaml (default dev).
// A .env file, when present, is loaded first; PORT and DATABASE_URL env
// vars override their file counterparts. Call from the project root.
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := os.Getenv("ENV_NAME")
	if env == "" {
		env = "dev"
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}
	configPath := filepath.Join(cwd, "config", env+".yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg := &Config{}

	cfg.ServerPort = strings.TrimSpace(os.Getenv("PORT"))
	if cfg.ServerPort == "" {
		cfg.ServerPort = fc.Server.Port
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	cfg.RequestTimeout = parseDuration(fc.Request.Timeout, 5*time.Second)
	cfg.ShutdownTimeout = parseDuration(fc.Shutdown.Timeout, 30*time.Second)

	cfg.RateLimitRPS = fc.Reliability.RateLimitRPS
	if cfg.RateLimitRPS < 0 {
		cfg.RateLimitRPS = 0
	}
	cfg.RateLimitBurst = fc.Reliability.RateLimitBurst
	if cfg.RateLimitBurst <= 0 && cfg.RateLimitRPS > 0 {
		cfg.RateLimitBurst = cfg.RateLimitRPS * 2
	}

	cfg.CacheCapacity = fc.Cache.Capacity
	if cfg.CacheCapacity <= 0 {
		cfg.CacheCapacity = 1000
	}
	cfg.TTLToday = parseDuration(fc.Cache.TTL.Today, 24*time.Hour)
	cfg.TTLFuture = parseDuration(fc.Cache.TTL.Future, 7*24*time.Hour)
	cfg.TTLPast = parseDuration(fc.Cache.TTL.Past, 10*365*24*time.Hour)
	cfg.TTLQibla = parseDuration(fc.Cache.TTL.Qibla, 30*24*time.Hour)

	cfg.WarmCache = fc.Cache.Warming.Enabled
	cfg.WarmCron = fc.Cache.Warming.Cron
	if cfg.WarmCron == "" {
		cfg.WarmCron = "0 0 * * *" // daily at midnight
	}
	cfg.WarmLocations = fc.Cache.Warming.Locations

	cfg.PersistenceEnabled = fc.Persistence.Enabled
	cfg.PostgresDSN = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.PostgresDSN == "" {
		cfg.PostgresDSN = fc.Persistence.DSN
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseDuration parses a duration string and returns defaultVal when the
// string is empty, unparseable or not positive.
func parseDuration(s string, defaultVal time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

// validate performs post-load validation of configuration values.
func validate(cfg *Config) error {
	if cfg.PersistenceEnabled && cfg.PostgresDSN == "" {
		return fmt.Errorf("persistence enabled but no DSN (set DATABASE_URL or persistence.dsn)")
	}
	if cfg.WarmCache && len(cfg.WarmLocations) == 0 {
		return fmt.Errorf("cache warming enabled but no locations configured")
	}
	return nil
}
