package synth

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"jeopardy-stats-service/internal/metrics"
)

type rateLimitedBackend struct {
	Backend
	limiter *rate.Limiter
	metrics *metrics.Recorder
}

// RateLimit paces calls with a token bucket shared by every wrapped backend.
func RateLimit(limiter *rate.Limiter, recorder *metrics.Recorder) Middleware {
	return func(next Backend) Backend {
		return &rateLimitedBackend{Backend: next, limiter: limiter, metrics: recorder}
	}
}

func (r *rateLimitedBackend) Complete(ctx context.Context, system, user string) (Completion, error) {
	start := time.Now()
	if err := r.limiter.Wait(ctx); err != nil {
		return Completion{}, &Error{Provider: r.Name(), Err: fmt.Errorf("rate limit: %w", err)}
	}
	if wait := time.Since(start); wait > time.Millisecond {
		r.metrics.RecordRateLimitWait(r.Name(), wait)
	}
	return r.Backend.Complete(ctx, system, user)
}

type timeoutBackend struct {
	Backend
	timeout time.Duration
}

// Timeout bounds each call.
func Timeout(d time.Duration) Middleware {
	return func(next Backend) Backend {
		if d <= 0 {
			return next
		}
		return &timeoutBackend{Backend: next, timeout: d}
	}
}

func (t *timeoutBackend) Complete(ctx context.Context, system, user string) (Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Backend.Complete(ctx, system, user)
}

type tracedBackend struct {
	Backend
	tracer trace.Tracer
}

// Tracing wraps each call in a span carrying provider, model and token counts.
func Tracing(tracer trace.Tracer) Middleware {
	return func(next Backend) Backend {
		return &tracedBackend{Backend: next, tracer: tracer}
	}
}

func (t *tracedBackend) Complete(ctx context.Context, system, user string) (Completion, error) {
	ctx, span := t.tracer.Start(ctx, "synth.complete",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("synth.provider", t.Name()),
			attribute.String("synth.model", t.Model()),
			attribute.Int("synth.prompt.length", len(system)+len(user)),
		),
	)
	defer span.End()

	out, err := t.Backend.Complete(ctx, system, user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return out, err
	}
	span.SetAttributes(
		attribute.Int("synth.tokens.input", out.InputTokens),
		attribute.Int("synth.tokens.output", out.OutputTokens),
	)
	return out, nil
}
