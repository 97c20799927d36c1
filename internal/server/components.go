package server

import (
	"context"
	"fmt"
	"log/slog"

	"jeopardy-stats-service/internal/app/analysis"
	"jeopardy-stats-service/internal/app/ingest"
	"jeopardy-stats-service/internal/config"
	"jeopardy-stats-service/internal/metrics"
	"jeopardy-stats-service/internal/normalize"
	"jeopardy-stats-service/internal/poller"
	"jeopardy-stats-service/internal/query"
	"jeopardy-stats-service/internal/questions"
	"jeopardy-stats-service/internal/sandbox"
	"jeopardy-stats-service/internal/seasons"
	"jeopardy-stats-service/internal/store"
	"jeopardy-stats-service/internal/synth"
)

// Services holds the application services shared by the HTTP server and the CLI.
// Poller is nil unless polling is enabled.
type Services struct {
	Analysis *analysis.Service
	Ingest   *ingest.Service
	Cache    *store.SeasonCache
	Poller   Poller
}

func synthConfig(cfg config.SynthConfig) synth.Config {
	return synth.Config{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Rate:     cfg.Rate,
		Burst:    cfg.Burst,
		Timeout:  cfg.Timeout,
	}
}

// BuildServices wires storage, ingest, synthesis and execution from cfg.
func BuildServices(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (Services, error) {
	synthesizer, err := synth.New(ctx, synthConfig(cfg.Synth), logger, recorder)
	if err != nil {
		return Services{}, fmt.Errorf("build synthesizer: %w", err)
	}
	qstore, err := questions.NewFileStore(cfg.Data.QuestionsFile, logger)
	if err != nil {
		return Services{}, fmt.Errorf("open question store: %w", err)
	}

	engine := query.NewEngine(sandbox.NewEvaluator(cfg.Sandbox.Timeout, logger, recorder), logger, recorder)
	fsStore := seasons.NewFSStore(cfg.Data.GameDir, logger)
	cache := store.NewSeasonCache(fsStore, cfg.Data.LoadConcurrency, logger)

	provider, err := selectProvider(cfg.Data, logger)
	if err != nil {
		return Services{}, fmt.Errorf("build raw source: %w", err)
	}
	ingestSvc := ingest.NewService(
		provider,
		normalize.NewNormalizer(logger, recorder),
		seasons.NewWriter(cfg.Data.GameDir, logger),
		cache,
		cfg.Data.StartSeason,
		logger,
	)

	svc := Services{
		Analysis: analysis.NewService(cache, fsStore, engine, synthesizer, qstore, logger),
		Ingest:   ingestSvc,
		Cache:    cache,
	}
	if cfg.PollEnabled {
		svc.Poller = poller.New(ingestSvc, logger, recorder, cfg.PollInterval)
	}
	return svc, nil
}
