// Package query dispatches canned statistics queries and hands free-form
// analysis programs to an evaluator.
package query

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"jeopardy-stats-service/internal/domain/games"
	"jeopardy-stats-service/internal/logging"
	"jeopardy-stats-service/internal/metrics"
	"jeopardy-stats-service/internal/stats"
)

// ErrExecutionDisabled is returned by Execute when no evaluator is configured.
var ErrExecutionDisabled = errors.New("analysis program execution is disabled")

const maxSuggestions = 3

// Evaluator runs an analysis program against games.
type Evaluator interface {
	Evaluate(ctx context.Context, code string, input []games.Game) (stats.Result, error)
}

// Engine resolves query ids against a fixed registry.
type Engine struct {
	defs      []Definition
	index     map[string]int
	evaluator Evaluator
	logger    *slog.Logger
	metrics   *metrics.Recorder
}

// NewEngine builds an engine over the canned registry. evaluator may be nil.
func NewEngine(evaluator Evaluator, logger *slog.Logger, recorder *metrics.Recorder) *Engine {
	return newEngine(Registry(), evaluator, logger, recorder)
}

func newEngine(defs []Definition, evaluator Evaluator, logger *slog.Logger, recorder *metrics.Recorder) *Engine {
	index := make(map[string]int, len(defs))
	for i, d := range defs {
		index[d.ID] = i
	}
	return &Engine{
		defs:      defs,
		index:     index,
		evaluator: evaluator,
		logger:    logger,
		metrics:   recorder,
	}
}

// Queries lists the registered queries in registry order.
func (e *Engine) Queries() []Info {
	out := make([]Info, len(e.defs))
	for i, d := range e.defs {
		out[i] = Info{ID: d.ID, Name: d.Name, Description: d.Description}
	}
	return out
}

// Lookup returns the listing for id.
func (e *Engine) Lookup(id string) (Info, bool) {
	i, ok := e.index[id]
	if !ok {
		return Info{}, false
	}
	d := e.defs[i]
	return Info{ID: d.ID, Name: d.Name, Description: d.Description}, true
}

// Run executes the query with exactly this id. It reports false for
// unknown ids.
func (e *Engine) Run(id string, input []games.Game) (stats.Result, bool) {
	i, ok := e.index[id]
	if !ok {
		return stats.Result{}, false
	}

	start := time.Now()
	res := e.defs[i].Run(input)
	if res.Query == "" {
		res.Query = id
	}
	duration := time.Since(start)

	e.metrics.RecordQuery(id, len(input), duration)
	if e.logger != nil {
		e.logger.Debug("query complete",
			logging.FieldQuery, id,
			logging.FieldCount, len(input),
			logging.FieldDurationMS, duration.Milliseconds(),
		)
	}
	return res, true
}

// Suggest returns up to three registered ids close to id.
func (e *Engine) Suggest(id string) []string {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return nil
	}

	type candidate struct {
		id   string
		dist int
	}
	limit := max(3, len(id)/3)
	var found []candidate
	for _, d := range e.defs {
		dist := levenshtein.ComputeDistance(id, d.ID)
		if dist <= limit || strings.Contains(d.ID, id) {
			found = append(found, candidate{d.ID, dist})
		}
	}
	slices.SortStableFunc(found, func(a, b candidate) int { return a.dist - b.dist })

	out := make([]string, 0, maxSuggestions)
	for _, c := range found {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, c.id)
	}
	return out
}

// Execute runs an externally produced analysis program against input.
func (e *Engine) Execute(ctx context.Context, code string, input []games.Game) (stats.Result, error) {
	if e.evaluator == nil {
		return stats.Result{}, ErrExecutionDisabled
	}
	return e.evaluator.Evaluate(ctx, code, input)
}
