package catalogai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/kailas-cloud/catalogai/internal/db/redis"
	"github.com/kailas-cloud/catalogai/internal/db/sqlstore"
	"github.com/kailas-cloud/catalogai/internal/domain"
	"github.com/kailas-cloud/catalogai/internal/domain/interpretation"
	"github.com/kailas-cloud/catalogai/internal/domain/search/result"
	domusage "github.com/kailas-cloud/catalogai/internal/domain/usage"
	"github.com/kailas-cloud/catalogai/internal/domain/validation"
	catalogrepo "github.com/kailas-cloud/catalogai/internal/repository/catalog"
	anthropicGen "github.com/kailas-cloud/catalogai/internal/transport/anthropic"
	openaiGen "github.com/kailas-cloud/catalogai/internal/transport/openai"
	generationuc "github.com/kailas-cloud/catalogai/internal/usecase/generation"
	healthuc "github.com/kailas-cloud/catalogai/internal/usecase/health"
	interpretuc "github.com/kailas-cloud/catalogai/internal/usecase/interpret"
	searchuc "github.com/kailas-cloud/catalogai/internal/usecase/search"
	usageuc "github.com/kailas-cloud/catalogai/internal/usecase/usage"
	validateuc "github.com/kailas-cloud/catalogai/internal/usecase/validate"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, replaced by fakes in tests.
type interpretUseCase interface {
	Interpret(ctx context.Context, query string) (interpretation.Result, error)
}

type searchUseCase interface {
	Search(ctx context.Context, query string, limit int) (interpretation.Result, result.Result, error)
	Suggest(ctx context.Context, partial string, limit int) ([]string, error)
}

type validateUseCase interface {
	ValidateField(ctx context.Context, name, content, category string) (validation.Report, error)
	AnalyzeProduct(ctx context.Context, p validation.Product) (validation.Analysis, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

type usageUseCase interface {
	GetReport(ctx context.Context, period domusage.Period) domusage.Report
}

type catalogStore interface {
	searchuc.Catalog
	healthuc.CatalogPinger
}

// Client is the catalogai SDK entry point. Safe for concurrent use.
type Client struct {
	interpretSvc interpretUseCase
	searchSvc    searchUseCase
	validateSvc  validateUseCase
	healthSvc    healthUseCase
	usageSvc     usageUseCase
	obs          *observer
	closers      []func()
}

// New creates a Client. Without catalog options the catalog is empty;
// without a model option every interpretation uses the fallback.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.redisAddr != "" && cfg.sqlDSN != "" {
		return nil, errors.New("catalogai: WithRedis and WithSQL are mutually exclusive")
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	c := &Client{obs: obs}
	cat, err := c.openCatalog(ctx, cfg, logger)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.wire(cat, cfg, logger)
	return c, nil
}

func (c *Client) openCatalog(ctx context.Context, cfg *clientConfig, logger *zap.Logger) (catalogStore, error) {
	switch {
	case cfg.redisAddr != "":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      []string{cfg.redisAddr},
			Password:   cfg.redisPassword,
			ClientName: "catalogai-sdk",
		})
		if err != nil {
			return nil, fmt.Errorf("catalogai: create redis store: %w", err)
		}
		c.closers = append(c.closers, store.Close)
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			return nil, fmt.Errorf("catalogai: redis not ready: %w", err)
		}
		return catalogrepo.NewRedis(store, logger), nil

	case cfg.sqlDSN != "":
		conn, dialect, err := sqlstore.Open(ctx, sqlstore.Config{Driver: cfg.sqlDriver, DSN: cfg.sqlDSN})
		if err != nil {
			return nil, fmt.Errorf("catalogai: %w", err)
		}
		c.closers = append(c.closers, func() { _ = conn.Close() })
		repo := catalogrepo.NewSQL(conn, dialect)
		if err := repo.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("catalogai: migrate: %w", err)
		}
		return repo, nil

	default:
		items := cfg.items
		if cfg.seedPath != "" {
			seeded, err := catalogrepo.LoadSeed(cfg.seedPath)
			if err != nil {
				return nil, fmt.Errorf("catalogai: %w", err)
			}
			items = append(items, seeded...)
		}
		return catalogrepo.NewMemory(items...), nil
	}
}

// wire builds the services. The SDK keeps no token budget: usage reports
// count calls and tokens since the client was created.
func (c *Client) wire(cat catalogStore, cfg *clientConfig, logger *zap.Logger) {
	base, model := buildGenerator(cfg, logger)
	provider := cfg.provider
	if cfg.generator != nil && provider == "" {
		provider = "custom"
	}

	var (
		interpGen   interpretuc.Generator
		validateGen validateuc.Generator
		aiChecker   healthuc.AIChecker
		budget      usageuc.BudgetReader
	)
	if base != nil {
		tracker := generationuc.NewBudgetTracker(provider, 0, 0, generationuc.BudgetActionWarn, logger)
		gen := generationuc.NewInstrumentedGenerator(base, provider, model, tracker, nil, logger)
		interpGen, validateGen, aiChecker, budget = gen, gen, gen, tracker
	}

	interp := interpretuc.New(interpGen, interpretuc.Config{Configured: base != nil, Model: model}, logger)
	c.interpretSvc = interp
	c.searchSvc = searchuc.New(cat, interp, searchuc.Config{
		DefaultLimit: defaultIfZero(cfg.defaultLimit, 20),
		MaxLimit:     defaultIfZero(cfg.maxLimit, 100),
		Tiers:        searchuc.PriceTiers{BudgetBelow: cfg.budgetBelow, PremiumFrom: cfg.premiumFrom},
	}, logger)
	c.validateSvc = validateuc.New(validateGen, validateuc.Config{Configured: base != nil}, logger)
	c.healthSvc = healthuc.New(cat, aiChecker, interp, provider)
	c.usageSvc = usageuc.New(budget, provider)
}

// buildGenerator returns nil when no model is configured.
func buildGenerator(cfg *clientConfig, logger *zap.Logger) (domain.Generator, string) {
	if cfg.generator != nil {
		return &generatorAdapter{inner: cfg.generator}, cfg.model
	}
	if !domain.IsConfiguredKey(cfg.apiKey) {
		return nil, ""
	}
	switch cfg.provider {
	case "anthropic":
		model := cfg.model
		if model == "" {
			model = "claude-3-5-haiku-latest"
		}
		return anthropicGen.NewGenerator(&anthropicGen.Config{
			APIKey: cfg.apiKey, BaseURL: cfg.baseURL, Model: model, Logger: logger,
		}), model
	case "openai":
		model := cfg.model
		if model == "" {
			model = "gpt-4o-mini"
		}
		return openaiGen.NewGenerator(&openaiGen.Config{
			APIKey: cfg.apiKey, BaseURL: cfg.baseURL, Model: model, JSONMode: true, Logger: logger,
		}), model
	default:
		return nil, ""
	}
}

func defaultIfZero(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Close releases all resources.
func (c *Client) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Interpret turns a free-text query into filters. Model failures never
// surface as errors: the result carries the fallback filters and the reason.
func (c *Client) Interpret(ctx context.Context, query string) (_ Interpretation, err error) {
	start := time.Now()
	defer func() { c.obs.observe("interpret", start, err) }()

	res, err := c.interpretSvc.Interpret(ctx, query)
	if err != nil {
		return Interpretation{}, fmt.Errorf("interpret: %w", err)
	}
	return interpretationFromDomain(res), nil
}

// Search interprets query and returns the better of the plain-text and
// filter-based result sets. limit <= 0 uses the default.
func (c *Client) Search(ctx context.Context, query string, limit int) (_ SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	interp, res, err := c.searchSvc.Search(ctx, query, limit)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}
	return searchResultFromDomain(interp, &res), nil
}

// Suggest returns product titles and brands containing partial.
func (c *Client) Suggest(ctx context.Context, partial string, limit int) (_ []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggest", start, err) }()

	out, err := c.searchSvc.Suggest(ctx, partial, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return out, nil
}

// ValidateField checks content against the rules for field ("title",
// "description", "meta", "features", "price", "brand").
func (c *Client) ValidateField(ctx context.Context, field, content, category string) (_ FieldReport, err error) {
	start := time.Now()
	defer func() { c.obs.observe("validate_field", start, err) }()

	rep, err := c.validateSvc.ValidateField(ctx, field, content, category)
	if err != nil {
		return FieldReport{}, fmt.Errorf("validate field: %w", err)
	}
	return fieldReportFromDomain(rep), nil
}

// AnalyzeProduct scores a product's completeness and market readiness.
func (c *Client) AnalyzeProduct(ctx context.Context, p ProductInput) (_ ProductAnalysis, err error) {
	start := time.Now()
	defer func() { c.obs.observe("analyze_product", start, err) }()

	a, err := c.validateSvc.AnalyzeProduct(ctx, p.toDomain())
	if err != nil {
		return ProductAnalysis{}, fmt.Errorf("analyze product: %w", err)
	}
	return analysisFromDomain(a), nil
}
