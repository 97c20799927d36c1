// Package store keeps loaded seasons in memory for the analysis paths.
package store

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"jeopardy-stats-service/internal/domain/games"
	"jeopardy-stats-service/internal/logging"
)

// DefaultConcurrency bounds parallel season loads in a range.
const DefaultConcurrency = 4

// ErrNoLoader is returned when the cache has no backing loader.
var ErrNoLoader = errors.New("season cache has no loader")

// SeasonLoader reads one season from backing storage.
type SeasonLoader interface {
	LoadSeason(season int) ([]games.Game, error)
}

// SeasonCache is a lazily populated, read-only cache keyed by season.
// Concurrent first loads of a season share one read. Only non-empty
// seasons are cached, so a season written later is picked up.
// Returned slices are shared and must not be modified.
type SeasonCache struct {
	loader      SeasonLoader
	logger      *slog.Logger
	concurrency int

	mu      sync.RWMutex
	seasons map[int][]games.Game
	group   singleflight.Group
}

// NewSeasonCache wraps loader. A non-positive concurrency uses DefaultConcurrency.
func NewSeasonCache(loader SeasonLoader, concurrency int, logger *slog.Logger) *SeasonCache {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &SeasonCache{
		loader:      loader,
		logger:      logger,
		concurrency: concurrency,
		seasons:     make(map[int][]games.Game),
	}
}

// Season returns one season, loading it on first use.
func (c *SeasonCache) Season(ctx context.Context, season int) ([]games.Game, error) {
	if gs, ok := c.cached(season); ok {
		return gs, nil
	}
	if c.loader == nil {
		return nil, ErrNoLoader
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, err, _ := c.group.Do(strconv.Itoa(season), func() (any, error) {
		if gs, ok := c.cached(season); ok {
			return gs, nil
		}
		start := time.Now()
		gs, err := c.loader.LoadSeason(season)
		if err != nil {
			return nil, err
		}
		if len(gs) > 0 {
			c.mu.Lock()
			c.seasons[season] = gs
			c.mu.Unlock()
			logging.Info(c.logger, "season loaded",
				slog.Int(logging.FieldSeason, season),
				slog.Int(logging.FieldCount, len(gs)),
				slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
			)
		}
		return gs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]games.Game), nil
}

// Range returns the games of seasons start..end inclusive, in season order.
func (c *SeasonCache) Range(ctx context.Context, start, end int) ([]games.Game, error) {
	if start > end {
		return []games.Game{}, nil
	}
	parts := make([][]games.Game, end-start+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i := range parts {
		g.Go(func() error {
			gs, err := c.Season(gctx, start+i)
			if err != nil {
				return err
			}
			parts[i] = gs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]games.Game, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

// Cached reports whether a season is held in memory.
func (c *SeasonCache) Cached(season int) bool {
	_, ok := c.cached(season)
	return ok
}

// Reset drops every cached season.
func (c *SeasonCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seasons = make(map[int][]games.Game)
}

func (c *SeasonCache) cached(season int) ([]games.Game, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	gs, ok := c.seasons[season]
	return gs, ok
}
