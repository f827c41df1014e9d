package config

import (
	"fmt"
	"os"
	"time"

	"github.com/aretw0/markcheck/internal/logging"
	"github.com/aretw0/markcheck/pkg/adapters/redis"
	"github.com/aretw0/markcheck/pkg/feedback"
	"gopkg.in/yaml.v3"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds the settings shared by the CLI and the servers.
type Config struct {
	// HTTP listen address of `markcheck serve`.
	Addr string `yaml:"addr"`

	// Feedback rendering
	Format         string `yaml:"format"` // escape, markdown
	SuccessMessage string `yaml:"success_message"`

	LogLevel string `yaml:"log_level"`

	// Directory of exercise files served by the catalog endpoints.
	ExercisesDir string `yaml:"exercises_dir"`

	Cache CacheConfig `yaml:"cache"`
	Redis RedisConfig `yaml:"redis"`
}

// CacheConfig configures the result cache.
type CacheConfig struct {
	Backend string `yaml:"backend"` // none, memory, redis
	TTL     string `yaml:"ttl"`
	Prefix  string `yaml:"prefix"`
}

// RedisConfig configures the Redis connection of the redis cache backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Addr:           ":8080",
		Format:         string(feedback.FormatEscape),
		SuccessMessage: feedback.DefaultSuccessMessage,
		LogLevel:       "info",
		Cache: CacheConfig{
			Backend: CacheMemory,
			TTL:     "1h",
			Prefix:  redis.DefaultPrefix,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
	}
}

// Load reads a YAML configuration file over the defaults. A missing file is
// not an error. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MARKCHECK_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("MARKCHECK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("MARKCHECK_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("MARKCHECK_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := feedback.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch c.Cache.Backend {
	case "", CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("cache.backend: unknown backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL != "" {
		if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
			return fmt.Errorf("cache.ttl: %w", err)
		}
	}
	if c.Cache.Backend == CacheRedis && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required by the redis cache backend")
	}
	return nil
}

// GetCacheTTL returns the cache TTL, zero meaning no expiry.
func (c *Config) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0
	}
	return d
}

// Reporter builds the feedback reporter from the format settings.
func (c *Config) Reporter() feedback.Reporter {
	format, err := feedback.ParseFormat(c.Format)
	if err != nil {
		format = feedback.FormatEscape
	}
	r := feedback.NewReporter()
	r.Format = format
	if c.SuccessMessage != "" {
		r.SuccessMessage = c.SuccessMessage
	}
	return r
}
