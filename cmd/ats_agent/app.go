package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/analysis"
	rediscache "github.com/jonathan/resume-ats/internal/cache/redis"
	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/db"
	"github.com/jonathan/resume-ats/internal/db/sqlite"
	"github.com/jonathan/resume-ats/internal/engine"
	"github.com/jonathan/resume-ats/internal/fetch"
	"github.com/jonathan/resume-ats/internal/history"
	"github.com/jonathan/resume-ats/internal/llm"
	"github.com/jonathan/resume-ats/internal/logger"
	"github.com/jonathan/resume-ats/internal/metrics"
	"github.com/jonathan/resume-ats/internal/observability"
)

// app is the wired object graph shared by the subcommands.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Metrics
	engine  *engine.Engine

	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log, err := logger.New(cfg.Logging.JSON, cfg.Logging.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{cfg: cfg, log: log, metrics: metrics.New()}
	if err := a.wire(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) wire(ctx context.Context) error {
	cfg, log := a.cfg, a.log

	shutdown, err := observability.InitTracing(ctx, log, observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Version:     version,
		Exporter:    cfg.Tracing.Exporter,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.onClose(func() error { return shutdown(context.Background()) })

	generative, err := a.generative(ctx)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	a.onClose(store.Close)

	a.engine, err = engine.New(engine.Config{
		Analyzer: analysis.NewOrchestrator(analysis.OrchestratorConfig{
			Generative: generative,
			Timeout:    cfg.LLM.Timeout,
			Logger:     log,
			Metrics:    a.metrics,
		}),
		Store:   store,
		Fetcher: a.jobFetcher(),
		Logger:  log,
		Metrics: a.metrics,
	})
	return err
}

// generative returns nil when no API key is configured, which leaves the
// orchestrator on the heuristic scorer.
func (a *app) generative(ctx context.Context) (analysis.Generative, error) {
	if !a.cfg.GenerativeEnabled() {
		a.log.Info("no LLM API key configured, using heuristic scoring only")
		return nil, nil
	}

	llmCfg, err := llm.ConfigFor(a.cfg.LLM.Provider)
	if err != nil {
		return nil, err
	}
	tier := llm.ModelTier(a.cfg.LLM.Tier)
	if a.cfg.LLM.Model != "" {
		llmCfg = llmCfg.WithModel(tier, a.cfg.LLM.Model)
	}

	client, err := llm.NewClient(ctx, llmCfg, a.cfg.LLM.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	a.onClose(client.Close)

	var cache analysis.ResultCache
	if a.cfg.Redis.Addr != "" {
		rc, err := rediscache.New(ctx, rediscache.Config{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
			TTL:      a.cfg.Redis.TTL,
		}, a.log)
		if err != nil {
			// the cache only saves tokens
			a.log.Warn("result cache disabled", zap.Error(err))
		} else {
			a.onClose(rc.Close)
			cache = rc
		}
	}

	a.log.Info("generative analysis enabled",
		zap.String("provider", a.cfg.LLM.Provider),
		zap.String("model", client.GetModel(tier)))
	gen, err := analysis.NewGenerativeAnalyzer(analysis.GenerativeConfig{
		Client:  client,
		Tier:    tier,
		Cache:   cache,
		Logger:  a.log,
		Metrics: a.metrics,
	})
	if err != nil {
		return nil, err
	}
	return gen, nil
}

func (a *app) jobFetcher() engine.JobFetcher {
	opts := &fetch.Options{Timeout: a.cfg.Fetch.Timeout}
	return engine.JobFetcherFunc(func(ctx context.Context, url string) (string, error) {
		return fetch.JobPosting(ctx, url, a.cfg.Fetch.UseBrowser, opts, a.log)
	})
}

func openStore(ctx context.Context, cfg config.StorageConfig) (history.Store, error) {
	switch cfg.Driver {
	case config.StoragePostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return database, nil
	case config.StorageSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageMemory, "":
		return history.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func (a *app) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	_ = a.log.Sync()
	return errors.Join(errs...)
}
