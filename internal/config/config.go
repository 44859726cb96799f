package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/catalogai/internal/domain"
)

// Config holds the catalogai configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Redis   RedisConfig   `yaml:"redis"`
	Catalog CatalogConfig `yaml:"catalog"`
	AI      AIConfig      `yaml:"ai"`
	Search  SearchConfig  `yaml:"search"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// RedisConfig holds the shared Redis connection. It backs the redis catalog,
// the AI response cache and the budget counters. Empty addrs disables Redis.
type RedisConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Enabled reports whether a Redis server is configured.
func (r RedisConfig) Enabled() bool { return len(r.Addrs) > 0 }

// Catalog drivers.
const (
	CatalogMemory = "memory"
	CatalogRedis  = "redis"
	CatalogSQL    = "sql"
)

// CatalogConfig selects the product store.
type CatalogConfig struct {
	Driver   string    `yaml:"driver"`    // memory (default), redis, sql
	SeedPath string    `yaml:"seed_path"` // YAML catalog loaded into memory or by `seed`
	SQL      SQLConfig `yaml:"sql"`
}

// SQLConfig holds the SQL catalog connection.
type SQLConfig struct {
	Driver       string `yaml:"driver"` // sqlite3 (default), postgres
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// AI providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// AIConfig holds model provider settings. An empty provider or a placeholder
// key disables the model tier; every call then uses the lexicon fallback.
type AIConfig struct {
	Provider          string       `yaml:"provider"` // openai, anthropic, or empty
	APIKey            string       `yaml:"api_key"`
	BaseURL           string       `yaml:"base_url"`
	Model             string       `yaml:"model"`
	Temperature       float32      `yaml:"temperature"`
	MaxTokens         int          `yaml:"max_tokens"`
	TimeoutSec        int          `yaml:"timeout_sec"`
	ConnectTimeoutSec int          `yaml:"connect_timeout_sec"`
	JSONMode          *bool        `yaml:"json_mode"` // OpenAI response_format, default true
	RequestsPerMinute int          `yaml:"requests_per_minute"`
	CacheTTLSec       int          `yaml:"cache_ttl_sec"` // 0 disables the response cache
	Budget            BudgetConfig `yaml:"budget"`
}

// Enabled reports whether the model tier should be attempted.
func (a AIConfig) Enabled() bool {
	return a.Provider != "" && domain.IsConfiguredKey(a.APIKey)
}

// UseJSONMode reports whether to request JSON object responses.
func (a AIConfig) UseJSONMode() bool { return a.JSONMode == nil || *a.JSONMode }

// BudgetConfig holds token budget settings.
type BudgetConfig struct {
	DailyTokenLimit   int64  `yaml:"daily_token_limit"`   // 0 = unlimited
	MonthlyTokenLimit int64  `yaml:"monthly_token_limit"` // 0 = unlimited
	Action            string `yaml:"action"`              // "reject" | "warn" (default)
}

// SearchConfig holds result limits and price tier boundaries.
type SearchConfig struct {
	DefaultLimit int     `yaml:"default_limit"`
	MaxLimit     int     `yaml:"max_limit"`
	BudgetBelow  float64 `yaml:"budget_below"`
	PremiumFrom  float64 `yaml:"premium_from"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file in the working directory is loaded first; it never overrides
// variables already set in the environment.
func Load(env string) (Config, error) {
	_ = godotenv.Load() // .env is optional

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${VAR} references, then applies
// defaults and validates.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 45
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Redis.ReadinessTimeout <= 0 {
		c.Redis.ReadinessTimeout = 10
	}
	if c.Catalog.Driver == "" {
		c.Catalog.Driver = CatalogMemory
	}
	if c.Catalog.SQL.Driver == "" {
		c.Catalog.SQL.Driver = "sqlite3"
	}
	if c.AI.Model == "" {
		switch c.AI.Provider {
		case ProviderOpenAI:
			c.AI.Model = "gpt-4o-mini"
		case ProviderAnthropic:
			c.AI.Model = "claude-3-5-haiku-latest"
		}
	}
	if c.AI.TimeoutSec <= 0 {
		c.AI.TimeoutSec = 15
	}
	if c.AI.ConnectTimeoutSec <= 0 {
		c.AI.ConnectTimeoutSec = 10
	}
	if c.AI.RequestsPerMinute <= 0 {
		c.AI.RequestsPerMinute = 60
	}
	if c.Search.DefaultLimit <= 0 {
		c.Search.DefaultLimit = 20
	}
	if c.Search.MaxLimit <= 0 {
		c.Search.MaxLimit = 100
	}
	if c.Search.BudgetBelow <= 0 {
		c.Search.BudgetBelow = 100
	}
	if c.Search.PremiumFrom <= 0 {
		c.Search.PremiumFrom = 500
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Catalog.Driver {
	case CatalogMemory:
	case CatalogRedis:
		if !c.Redis.Enabled() {
			return fmt.Errorf("redis.addrs is required for the redis catalog")
		}
	case CatalogSQL:
		if c.Catalog.SQL.DSN == "" {
			return fmt.Errorf("catalog.sql.dsn is required for the sql catalog")
		}
	default:
		return fmt.Errorf("catalog.driver must be memory, redis or sql, got %q", c.Catalog.Driver)
	}
	switch c.AI.Provider {
	case "", ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("ai.provider must be \"openai\" or \"anthropic\", got %q", c.AI.Provider)
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("ai.temperature must be between 0 and 2, got %g", c.AI.Temperature)
	}
	switch c.AI.Budget.Action {
	case "", "warn", "reject":
		// ok
	default:
		return fmt.Errorf("ai.budget.action must be \"warn\" or \"reject\", got %q", c.AI.Budget.Action)
	}
	if c.AI.CacheTTLSec > 0 && !c.Redis.Enabled() {
		return fmt.Errorf("redis.addrs is required when ai.cache_ttl_sec is set")
	}
	if c.Search.DefaultLimit > c.Search.MaxLimit {
		return fmt.Errorf("search.default_limit (%d) exceeds search.max_limit (%d)",
			c.Search.DefaultLimit, c.Search.MaxLimit)
	}
	if c.Search.PremiumFrom <= c.Search.BudgetBelow {
		return fmt.Errorf("search.premium_from (%g) must be above search.budget_below (%g)",
			c.Search.PremiumFrom, c.Search.BudgetBelow)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
