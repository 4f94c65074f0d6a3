// Package config loads service configuration from an optional YAML file and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"

	"menufind/variants"
)

// ErrNoTaxonomySource is returned when neither a taxonomy URL nor a database
// DSN is configured.
var ErrNoTaxonomySource = errors.New("no taxonomy source configured: set taxonomy.source_url or database.dsn")

// Config holds all configuration for the service and the CLI.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Taxonomy  TaxonomyConfig  `yaml:"taxonomy"`
	Database  DatabaseConfig  `yaml:"database"`
	Geocoding GeocodingConfig `yaml:"geocoding"`
	Cache     CacheConfig     `yaml:"cache"`
	Variants  VariantsConfig  `yaml:"variants"`
	Worker    WorkerConfig    `yaml:"worker"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// TaxonomyConfig holds the taxonomy catalog source settings.
type TaxonomyConfig struct {
	SourceURL string        `yaml:"source_url"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
	Timeout   time.Duration `yaml:"timeout"`
}

// DatabaseConfig holds the Postgres connection used as a taxonomy source
// when no source URL is set.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// GeocodingConfig holds geocoder settings. An empty APIKey disables the
// geocoder and leaves only the built-in city table.
type GeocodingConfig struct {
	APIKey   string        `yaml:"api_key"`
	Country  string        `yaml:"country"`
	Language string        `yaml:"language"`
	BaseURL  string        `yaml:"base_url"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
	Timeout  time.Duration `yaml:"timeout"`
}

// CacheConfig selects the geocode cache backend.
type CacheConfig struct {
	Driver string      `yaml:"driver"` // memory or redis
	Redis  RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
	Prefix   string `yaml:"prefix"`
}

// VariantsConfig holds variant generation settings.
type VariantsConfig struct {
	MaxVariants int `yaml:"max_variants"`
}

// WorkerConfig holds cache warmer settings. A zero interval disables it.
type WorkerConfig struct {
	WarmInterval time.Duration `yaml:"warm_interval"`
	PoolSize     int           `yaml:"pool_size"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// Load reads configuration from a YAML file and applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns the development defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           3003,
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173", "http://localhost:5174"},
		},
		Taxonomy: TaxonomyConfig{
			CacheTTL: 10 * time.Minute,
			Timeout:  10 * time.Second,
		},
		Geocoding: GeocodingConfig{
			Country:  "hr",
			Language: "hr",
			CacheTTL: 30 * time.Minute,
			Timeout:  10 * time.Second,
		},
		Cache: CacheConfig{
			Driver: "memory",
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				PoolSize: 10,
				Prefix:   "menufind:",
			},
		},
		Variants: VariantsConfig{
			MaxVariants: variants.DefaultMaxVariants,
		},
		Worker: WorkerConfig{
			PoolSize: 4,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Cache.Driver != "memory" && c.Cache.Driver != "redis" {
		return fmt.Errorf("invalid cache driver: %s", c.Cache.Driver)
	}

	if c.Variants.MaxVariants < variants.MinVariants || c.Variants.MaxVariants > variants.MaxVariants {
		return fmt.Errorf("max_variants must be between %d and %d", variants.MinVariants, variants.MaxVariants)
	}

	if c.Taxonomy.CacheTTL < 0 || c.Geocoding.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}

	if c.Worker.WarmInterval < 0 {
		return fmt.Errorf("invalid warm interval: %s", c.Worker.WarmInterval)
	}

	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}
	return nil
}

// RequireTaxonomySource reports ErrNoTaxonomySource when the server would have
// nowhere to read the catalog from.
func (c *Config) RequireTaxonomySource() error {
	if c.Taxonomy.SourceURL == "" && c.Database.DSN == "" {
		return ErrNoTaxonomySource
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}

	if v := os.Getenv("TAXONOMY_SOURCE_URL"); v != "" {
		cfg.Taxonomy.SourceURL = v
	}

	if d, ok := envDuration("TAXONOMY_CACHE_TTL"); ok {
		cfg.Taxonomy.CacheTTL = d
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}

	if v := os.Getenv("GOOGLE_MAPS_API_KEY"); v != "" {
		cfg.Geocoding.APIKey = v
	}

	if v := os.Getenv("GEOCODE_COUNTRY"); v != "" {
		cfg.Geocoding.Country = v
	}

	if v := os.Getenv("GEOCODE_LANGUAGE"); v != "" {
		cfg.Geocoding.Language = v
	}

	if d, ok := envDuration("GEOCODE_CACHE_TTL"); ok {
		cfg.Geocoding.CacheTTL = d
	}

	if v := os.Getenv("REDIS_URL"); v != "" {
		opts, err := redis.ParseURL(v)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		cfg.Cache.Driver = "redis"
		cfg.Cache.Redis.Addr = opts.Addr
		cfg.Cache.Redis.Password = opts.Password
		cfg.Cache.Redis.DB = opts.DB
	}

	if v := os.Getenv("MAX_VARIANTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Variants.MaxVariants = n
		}
	}

	if d, ok := envDuration("CACHE_WARM_INTERVAL"); ok {
		cfg.Worker.WarmInterval = d
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return nil
}

// envDuration reads a Go duration ("90s", "10m"). A bare integer is taken as
// seconds.
func envDuration(key string) (time.Duration, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, true
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
