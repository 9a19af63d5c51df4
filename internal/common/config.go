package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Config represents the application configuration
type Config struct {
	Environment  string             `toml:"environment"` // "development" or "production"
	Server       ServerConfig       `toml:"server"`
	Storage      StorageConfig      `toml:"storage"`
	Logging      LoggingConfig      `toml:"logging"`
	AlphaVantage AlphaVantageConfig `toml:"alphavantage"`
	Quiver       QuiverConfig       `toml:"quiver"`
	TradingView  TradingViewConfig  `toml:"tradingview"`
	Cache        CacheConfig        `toml:"cache"`
	Session      SessionConfig      `toml:"session"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`         // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`                                       // "json" or "text"
	Output     []string `toml:"output"`                                       // "stdout", "file"
	TimeFormat string   `toml:"time_format"`                                  // Time format for logs (default: "15:04:05.000")
}

// AlphaVantageConfig contains Alpha Vantage market data API configuration
type AlphaVantageConfig struct {
	APIKey         string        `toml:"api_key"`         // Alpha Vantage API key
	BaseURL        string        `toml:"base_url"`        // Override for tests/proxies
	RateLimit      int           `toml:"rate_limit"`      // Requests per second
	RequestTimeout time.Duration `toml:"request_timeout"` // HTTP request timeout
}

// QuiverConfig contains Quiver Quantitative alternative data API configuration.
// The API key is optional; without it the alternative data endpoints report
// themselves as not configured instead of failing requests.
type QuiverConfig struct {
	APIKey         string        `toml:"api_key"`
	BaseURL        string        `toml:"base_url"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

// TradingViewConfig contains TradingView chart link configuration
type TradingViewConfig struct {
	BaseURL string `toml:"base_url"` // Chart base URL (default: https://www.tradingview.com/chart)
}

// CacheConfig contains response cache configuration
type CacheConfig struct {
	TTL           time.Duration `toml:"ttl"`            // How long API responses stay fresh (default: 5m)
	SweepSchedule string        `toml:"sweep_schedule"` // Cron schedule for expired entry cleanup
}

// SessionConfig contains conversation session configuration
type SessionConfig struct {
	MaxIdle       time.Duration `toml:"max_idle"`       // Idle time before a session is pruned
	PruneSchedule string        `toml:"prune_schedule"` // Cron schedule for session pruning
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability.
// Only user-facing settings should be exposed in advisor.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05.000",
		},
		AlphaVantage: AlphaVantageConfig{
			APIKey:         "",
			BaseURL:        "https://www.alphavantage.co/query",
			RateLimit:      5, // free tier allowance
			RequestTimeout: 30 * time.Second,
		},
		Quiver: QuiverConfig{
			APIKey:         "",
			BaseURL:        "https://api.quiverquant.com/beta",
			RequestTimeout: 30 * time.Second,
		},
		TradingView: TradingViewConfig{
			BaseURL: "https://www.tradingview.com/chart",
		},
		Cache: CacheConfig{
			TTL:           5 * time.Minute,
			SweepSchedule: "*/5 * * * *",
		},
		Session: SessionConfig{
			MaxIdle:       time.Hour,
			PruneSchedule: "*/10 * * * *",
		},
	}
}

// LoadFromFile loads configuration with priority: defaults -> file -> env -> CLI
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files. Later files override
// earlier files; environment variables override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration against its struct tags and verifies
// that the background cron schedules parse.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := ValidateSchedule(c.Cache.SweepSchedule); err != nil {
		return fmt.Errorf("invalid cache sweep schedule %q: %w", c.Cache.SweepSchedule, err)
	}
	if err := ValidateSchedule(c.Session.PruneSchedule); err != nil {
		return fmt.Errorf("invalid session prune schedule %q: %w", c.Session.PruneSchedule, err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Environment configuration (highest priority: ADVISOR_ENV, fallback: GO_ENV)
	if env := os.Getenv("ADVISOR_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("ADVISOR_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("ADVISOR_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Storage configuration
	if badgerPath := os.Getenv("ADVISOR_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if reset := os.Getenv("ADVISOR_BADGER_RESET_ON_STARTUP"); reset != "" {
		if r, err := strconv.ParseBool(reset); err == nil {
			config.Storage.Badger.ResetOnStartup = r
		}
	}

	// Logging configuration
	if level := os.Getenv("ADVISOR_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("ADVISOR_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("ADVISOR_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			trimmed := strings.TrimSpace(o)
			if trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Alpha Vantage configuration
	if apiKey := os.Getenv("ADVISOR_ALPHAVANTAGE_API_KEY"); apiKey != "" {
		config.AlphaVantage.APIKey = apiKey
	} else if apiKey := os.Getenv("ALPHA_VANTAGE_API_KEY"); apiKey != "" {
		config.AlphaVantage.APIKey = apiKey
	}
	if baseURL := os.Getenv("ADVISOR_ALPHAVANTAGE_BASE_URL"); baseURL != "" {
		config.AlphaVantage.BaseURL = baseURL
	}
	if rateLimit := os.Getenv("ADVISOR_ALPHAVANTAGE_RATE_LIMIT"); rateLimit != "" {
		if rl, err := strconv.Atoi(rateLimit); err == nil {
			config.AlphaVantage.RateLimit = rl
		}
	}
	if timeout := os.Getenv("ADVISOR_ALPHAVANTAGE_REQUEST_TIMEOUT"); timeout != "" {
		if t, err := time.ParseDuration(timeout); err == nil {
			config.AlphaVantage.RequestTimeout = t
		}
	}

	// Quiver configuration
	if apiKey := os.Getenv("ADVISOR_QUIVER_API_KEY"); apiKey != "" {
		config.Quiver.APIKey = apiKey
	} else if apiKey := os.Getenv("QUIVER_API_KEY"); apiKey != "" {
		config.Quiver.APIKey = apiKey
	}
	if baseURL := os.Getenv("ADVISOR_QUIVER_BASE_URL"); baseURL != "" {
		config.Quiver.BaseURL = baseURL
	}
	if timeout := os.Getenv("ADVISOR_QUIVER_REQUEST_TIMEOUT"); timeout != "" {
		if t, err := time.ParseDuration(timeout); err == nil {
			config.Quiver.RequestTimeout = t
		}
	}

	// TradingView configuration
	if baseURL := os.Getenv("ADVISOR_TRADINGVIEW_BASE_URL"); baseURL != "" {
		config.TradingView.BaseURL = baseURL
	}

	// Cache configuration
	if ttl := os.Getenv("ADVISOR_CACHE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			config.Cache.TTL = d
		}
	}
	if schedule := os.Getenv("ADVISOR_CACHE_SWEEP_SCHEDULE"); schedule != "" {
		config.Cache.SweepSchedule = schedule
	}

	// Session configuration
	if maxIdle := os.Getenv("ADVISOR_SESSION_MAX_IDLE"); maxIdle != "" {
		if d, err := time.ParseDuration(maxIdle); err == nil {
			config.Session.MaxIdle = d
		}
	}
	if schedule := os.Getenv("ADVISOR_SESSION_PRUNE_SCHEDULE"); schedule != "" {
		config.Session.PruneSchedule = schedule
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	// Command-line flags have highest priority
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// ValidateSchedule validates a cron schedule expression
func ValidateSchedule(schedule string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	_, err := parser.Parse(schedule)
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
