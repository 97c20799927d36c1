// Package sandbox runs synthesized analysis programs in a restricted Go
// interpreter over a read-only copy of the loaded games.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/traefik/yaegi/interp"

	"jeopardy-stats-service/internal/domain/games"
	"jeopardy-stats-service/internal/logging"
	"jeopardy-stats-service/internal/metrics"
	"jeopardy-stats-service/internal/stats"
)

// DefaultTimeout bounds a single analysis run.
const DefaultTimeout = 30 * time.Second

const outcomeOK = "ok"

// Evaluator executes analysis programs. Every call gets a fresh interpreter.
type Evaluator struct {
	timeout  time.Duration
	helpers  stats.Helpers
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// NewEvaluator builds an evaluator. A non-positive timeout uses DefaultTimeout.
func NewEvaluator(timeout time.Duration, logger *slog.Logger, recorder *metrics.Recorder) *Evaluator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Evaluator{
		timeout:  timeout,
		helpers:  stats.DefaultHelpers(),
		validate: validator.New(),
		logger:   logger,
		metrics:  recorder,
	}
}

// Timeout reports the per-run wall clock limit.
func (e *Evaluator) Timeout() time.Duration {
	return e.timeout
}

// Evaluate checks, interprets and runs code against input. Failures are
// *ExecError values except for parent context cancellation.
func (e *Evaluator) Evaluate(ctx context.Context, code string, input []games.Game) (result stats.Result, err error) {
	start := time.Now()
	defer func() {
		e.observe(ctx, err, time.Since(start), len(input))
	}()

	prog, err := prepare(code)
	if err != nil {
		return stats.Result{}, err
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return stats.Result{}, fmt.Errorf("analysis canceled: %w", ctxErr)
	}
	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	return e.run(ctx, runCtx, code, prog, games.CloneAll(input))
}

func (e *Evaluator) run(parent, ctx context.Context, code string, prog program, input []games.Game) (result stats.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newExecError(KindRuntime, code, fmt.Errorf("panic: %v", r))
		}
	}()

	i := interp.New(interp.Options{
		Stdin:  strings.NewReader(""),
		Stdout: io.Discard,
		Stderr: io.Discard,
	})
	if err := i.Use(stdlibSymbols()); err != nil {
		return stats.Result{}, fmt.Errorf("load stdlib symbols: %w", err)
	}
	if err := i.Use(hostSymbols(input, e.helpers)); err != nil {
		return stats.Result{}, fmt.Errorf("load host symbols: %w", err)
	}

	if _, err := i.EvalWithContext(ctx, prog.source); err != nil {
		return stats.Result{}, e.failure(parent, ctx, KindCompile, code, err)
	}
	v, err := i.EvalWithContext(ctx, prog.entry)
	if err != nil {
		return stats.Result{}, e.failure(parent, ctx, KindRuntime, code, err)
	}

	if !v.IsValid() || !v.CanInterface() {
		return stats.Result{}, newExecError(KindInvalidResult, code, errors.New("program returned no value"))
	}
	out, ok := v.Interface().(stats.Result)
	if !ok {
		return stats.Result{}, newExecError(KindInvalidResult, code, fmt.Errorf("program returned %s, want jeopardy.Result", v.Type()))
	}
	if err := e.validate.Struct(out); err != nil {
		return stats.Result{}, newExecError(KindInvalidResult, code, err)
	}
	return out, nil
}

// failure maps an interpreter error to its kind. A deadline on the run
// context is a timeout; cancellation of the caller is returned as is.
func (e *Evaluator) failure(parent, ctx context.Context, kind Kind, code string, err error) error {
	if parentErr := parent.Err(); parentErr != nil {
		return fmt.Errorf("analysis canceled: %w", parentErr)
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return newExecError(KindTimeout, code, fmt.Errorf("%w after %s", ErrTimeout, e.timeout))
	}
	return newExecError(kind, code, err)
}

func (e *Evaluator) observe(ctx context.Context, err error, elapsed time.Duration, count int) {
	outcome := outcomeOK
	if execErr, ok := AsExecError(err); ok {
		outcome = string(execErr.Kind)
	} else if err != nil {
		outcome = "error"
	}
	e.metrics.RecordSandboxRun(outcome, elapsed)

	logger := logging.FromContext(ctx, e.logger)
	if logger == nil {
		return
	}
	if err != nil {
		logger.Warn("analysis program failed",
			slog.String(logging.FieldKind, outcome),
			slog.Int(logging.FieldCount, count),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			slog.Any("error", err),
		)
		return
	}
	logger.Info("analysis program completed",
		slog.Int(logging.FieldCount, count),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
}
