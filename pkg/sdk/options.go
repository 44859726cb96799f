package catalogai

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	domcat "github.com/kailas-cloud/catalogai/internal/domain/catalog"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	// catalog: items and seedPath feed the memory catalog; redis/sql replace it
	items         []domcat.Item
	seedPath      string
	redisAddr     string
	redisPassword string
	sqlDriver     string
	sqlDSN        string

	provider  string
	apiKey    string
	baseURL   string
	model     string
	generator Generator

	defaultLimit int
	maxLimit     int
	budgetBelow  float64
	premiumFrom  float64

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithProducts loads products into the in-memory catalog.
func WithProducts(products ...Product) Option {
	return optionFunc(func(c *clientConfig) {
		for _, p := range products {
			c.items = append(c.items, productToItem(p))
		}
	})
}

// WithSeedFile loads a YAML catalog ("items: [...]") into the in-memory catalog.
func WithSeedFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.seedPath = path
	})
}

// WithRedis searches a catalog stored as Redis hashes instead of memory.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.redisAddr = addr
		c.redisPassword = password
	})
}

// WithSQL searches a SQL catalog (driver "sqlite3" or "postgres").
// The products table is created when missing.
func WithSQL(driver, dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.sqlDriver = driver
		c.sqlDSN = dsn
	})
}

// WithOpenAI enables the model tier through an OpenAI-compatible API.
func WithOpenAI(apiKey, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.provider = "openai"
		c.apiKey = apiKey
		c.model = model
	})
}

// WithAnthropic enables the model tier through the Anthropic Messages API.
func WithAnthropic(apiKey, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.provider = "anthropic"
		c.apiKey = apiKey
		c.model = model
	})
}

// WithBaseURL overrides the provider endpoint, e.g. for a local
// OpenAI-compatible server.
func WithBaseURL(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = url
	})
}

// WithGenerator plugs in a custom model. It takes precedence over
// WithOpenAI and WithAnthropic.
func WithGenerator(g Generator) Option {
	return optionFunc(func(c *clientConfig) {
		c.generator = g
	})
}

// WithLimits sets the default and maximum number of search results.
// Defaults: 20 and 100.
func WithLimits(defaultLimit, maxLimit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultLimit = defaultLimit
		c.maxLimit = maxLimit
	})
}

// WithPriceTiers sets the price boundaries: budget is below budgetBelow,
// premium starts at premiumFrom. Defaults: 100 and 500.
func WithPriceTiers(budgetBelow, premiumFrom float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.budgetBelow = budgetBelow
		c.premiumFrom = premiumFrom
	})
}

// WithLogger enables structured logging. Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
