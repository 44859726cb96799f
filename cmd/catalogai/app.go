package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogai/internal/config"
	dbRedis "github.com/kailas-cloud/catalogai/internal/db/redis"
	"github.com/kailas-cloud/catalogai/internal/db/sqlstore"
	"github.com/kailas-cloud/catalogai/internal/domain"
	domcat "github.com/kailas-cloud/catalogai/internal/domain/catalog"
	logpkg "github.com/kailas-cloud/catalogai/internal/logger"
	"github.com/kailas-cloud/catalogai/internal/metrics"
	"github.com/kailas-cloud/catalogai/internal/repository/aicache"
	budgetrepo "github.com/kailas-cloud/catalogai/internal/repository/budget"
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

// catalogStore is what the composition root needs from a catalog backend.
type catalogStore interface {
	Find(ctx context.Context, q domcat.Query) ([]domcat.Item, error)
	Upsert(ctx context.Context, items []domcat.Item) error
	Ping(ctx context.Context) error
}

// app is the wired service graph.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	catalog   catalogStore
	interpret *interpretuc.Service
	search    *searchuc.Service
	validate  *validateuc.Service
	usage     *usageuc.Service
	health    *healthuc.Service
	closers   []func()
}

// Close releases connections in reverse order of creation.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// buildApp is the composition root. The generator chain is
// provider -> cache (optional) -> instrumented (budget, rate limit, metrics).
func buildApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	metrics.RegisterGenerationMetrics()
	metrics.RegisterPipelineMetrics()

	a := &app{cfg: cfg, logger: logger}

	var store *dbRedis.Store
	if cfg.Redis.Enabled() {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.Redis.Addrs,
			Username:   cfg.Redis.Username,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			ClientName: logpkg.ServiceName,
		})
		if err != nil {
			return nil, fmt.Errorf("create redis store: %w", err)
		}
		a.closers = append(a.closers, s.Close)

		if err := s.WaitForReady(ctx, time.Duration(cfg.Redis.ReadinessTimeout)*time.Second); err != nil {
			a.Close()
			return nil, fmt.Errorf("redis not ready: %w", err)
		}
		logger.Info("Connected to redis", zap.Strings("addrs", cfg.Redis.Addrs))
		store = s
	}

	cat, err := a.buildCatalog(ctx, store)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.catalog = cat

	gen, budget := buildGenerator(ctx, cfg.AI, store, logger)

	// Pass nil interfaces, not typed nil pointers.
	var (
		interpGen    interpretuc.Generator
		validateGen  validateuc.Generator
		aiChecker    healthuc.AIChecker
		budgetReader usageuc.BudgetReader
	)
	if gen != nil {
		interpGen, validateGen, aiChecker = gen, gen, gen
	}
	if budget != nil {
		budgetReader = budget
	}

	timeout := time.Duration(cfg.AI.TimeoutSec) * time.Second
	a.interpret = interpretuc.New(interpGen, interpretuc.Config{
		Configured:  cfg.AI.Enabled(),
		Model:       cfg.AI.Model,
		Timeout:     timeout,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
	}, logger)
	a.validate = validateuc.New(validateGen, validateuc.Config{
		Configured: cfg.AI.Enabled(),
		Timeout:    timeout,
	}, logger)
	a.search = searchuc.New(cat, a.interpret, searchuc.Config{
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxLimit:     cfg.Search.MaxLimit,
		Tiers: searchuc.PriceTiers{
			BudgetBelow: cfg.Search.BudgetBelow,
			PremiumFrom: cfg.Search.PremiumFrom,
		},
	}, logger)
	a.usage = usageuc.New(budgetReader, cfg.AI.Provider)
	a.health = healthuc.New(cat, aiChecker, a.interpret, cfg.AI.Provider)

	logger.Info("Pipeline ready",
		zap.String("catalog", cfg.Catalog.Driver),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("ai_model", cfg.AI.Model),
		zap.Bool("ai_enabled", cfg.AI.Enabled()),
	)
	return a, nil
}

func (a *app) buildCatalog(ctx context.Context, store *dbRedis.Store) (catalogStore, error) {
	switch a.cfg.Catalog.Driver {
	case config.CatalogRedis:
		return catalogrepo.NewRedis(store, a.logger), nil
	case config.CatalogSQL:
		conn, dialect, err := sqlstore.Open(ctx, sqlstore.Config{
			Driver:       a.cfg.Catalog.SQL.Driver,
			DSN:          a.cfg.Catalog.SQL.DSN,
			MaxOpenConns: a.cfg.Catalog.SQL.MaxOpenConns,
		})
		if err != nil {
			return nil, fmt.Errorf("open sql catalog: %w", err)
		}
		a.closers = append(a.closers, func() { _ = conn.Close() })

		repo := catalogrepo.NewSQL(conn, dialect)
		if err := repo.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate sql catalog: %w", err)
		}
		return repo, nil
	default:
		var items []domcat.Item
		if a.cfg.Catalog.SeedPath != "" {
			loaded, err := catalogrepo.LoadSeed(a.cfg.Catalog.SeedPath)
			if err != nil {
				return nil, err
			}
			items = loaded
		}
		a.logger.Info("Loaded in-memory catalog", zap.Int("items", len(items)))
		return catalogrepo.NewMemory(items...), nil
	}
}

// buildGenerator returns nil, nil when the model tier is disabled.
func buildGenerator(
	ctx context.Context, cfg config.AIConfig, store *dbRedis.Store, logger *zap.Logger,
) (*generationuc.InstrumentedGenerator, *generationuc.BudgetTracker) {
	if !cfg.Enabled() {
		logger.Info("AI not configured, using synonym fallback only")
		return nil, nil
	}

	connectTimeout := time.Duration(cfg.ConnectTimeoutSec) * time.Second
	var base domain.Generator
	switch cfg.Provider {
	case config.ProviderAnthropic:
		base = anthropicGen.NewGenerator(&anthropicGen.Config{
			APIKey:         cfg.APIKey,
			BaseURL:        cfg.BaseURL,
			Model:          cfg.Model,
			ConnectTimeout: connectTimeout,
			Logger:         logger,
		})
	default:
		base = openaiGen.NewGenerator(&openaiGen.Config{
			APIKey:         cfg.APIKey,
			BaseURL:        cfg.BaseURL,
			Model:          cfg.Model,
			ConnectTimeout: connectTimeout,
			JSONMode:       cfg.UseJSONMode(),
			Logger:         logger,
		})
	}

	var gen domain.Generator = base
	if cfg.CacheTTLSec > 0 && store != nil {
		gen = aicache.New(base, store, cfg.Model,
			time.Duration(cfg.CacheTTLSec)*time.Second, metrics.GenerationCacheTotal, logger)
	}

	action := generationuc.BudgetActionWarn
	if cfg.Budget.Action == string(generationuc.BudgetActionReject) {
		action = generationuc.BudgetActionReject
	}
	budget := generationuc.NewBudgetTracker(
		cfg.Provider, cfg.Budget.DailyTokenLimit, cfg.Budget.MonthlyTokenLimit, action, logger,
	)
	if store != nil {
		budget.WithStore(ctx, budgetrepo.New(store, 0, 0))
	}

	inst := generationuc.NewInstrumentedGenerator(
		gen, cfg.Provider, cfg.Model, budget, generationuc.NewLimiter(cfg.RequestsPerMinute), logger,
	)
	return inst, budget
}
