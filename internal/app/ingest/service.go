// Package ingest turns a provider's raw games into season bucket files.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"jeopardy-stats-service/internal/classify"
	"jeopardy-stats-service/internal/domain/games"
	"jeopardy-stats-service/internal/logging"
	"jeopardy-stats-service/internal/normalize"
	"jeopardy-stats-service/internal/providers"
)

var ErrNoProvider = errors.New("no raw game provider configured")

// BucketWriter persists classified games per bucket.
type BucketWriter interface {
	WriteBuckets(buckets map[string][]games.Game) error
}

// Invalidator drops cached seasons once new buckets are on disk.
type Invalidator interface {
	Reset()
}

// Summary describes one ingest run.
type Summary struct {
	Provider   string         `json:"provider"`
	Games      int            `json:"games"`
	LastSeason int            `json:"lastSeason"`
	Buckets    map[string]int `json:"buckets"`
}

// Service runs fetch, normalize, classify and write in sequence.
type Service struct {
	provider    providers.RawGameProvider
	normalizer  *normalize.Normalizer
	writer      BucketWriter
	cache       Invalidator
	startSeason int
	logger      *slog.Logger
}

// NewService wires an ingest pipeline. cache may be nil.
func NewService(provider providers.RawGameProvider, normalizer *normalize.Normalizer, writer BucketWriter, cache Invalidator, startSeason int, logger *slog.Logger) *Service {
	return &Service{
		provider:    provider,
		normalizer:  normalizer,
		writer:      writer,
		cache:       cache,
		startSeason: startSeason,
		logger:      logger,
	}
}

// Run ingests every raw game the provider returns.
func (s *Service) Run(ctx context.Context) (Summary, error) {
	if s.provider == nil {
		return Summary{}, ErrNoProvider
	}
	start := time.Now()
	logger := logging.FromContext(ctx, s.logger)

	raws, err := s.provider.FetchRawGames(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("fetch raw games from %s: %w", s.provider.Name(), err)
	}

	normalized := s.normalizer.NormalizeAll(ctx, raws)
	classifier := classify.NewClassifier(s.startSeason, logger)
	buckets := classifier.Group(normalized)

	if err := s.writer.WriteBuckets(buckets); err != nil {
		return Summary{}, fmt.Errorf("write buckets: %w", err)
	}
	if s.cache != nil {
		s.cache.Reset()
	}

	summary := Summary{
		Provider:   s.provider.Name(),
		Games:      len(normalized),
		LastSeason: classifier.Season(),
		Buckets:    make(map[string]int, len(buckets)),
	}
	for name, gs := range buckets {
		summary.Buckets[name] = len(gs)
	}
	logging.Info(logger, "ingest complete",
		slog.String(logging.FieldProvider, summary.Provider),
		slog.Int(logging.FieldCount, summary.Games),
		slog.Int("buckets", len(summary.Buckets)),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	return summary, nil
}
