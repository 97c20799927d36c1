package synth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"

	"jeopardy-stats-service/internal/metrics"
)

const tracerName = "jeopardy-stats-service/synth"

// Config selects and tunes the model provider.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Rate     float64
	Burst    int
	Timeout  time.Duration
}

// NewBackend builds the provider backend named by cfg.Provider.
func NewBackend(ctx context.Context, cfg Config) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderAnthropic:
		return newAnthropicBackend(cfg)
	case ProviderOpenAI:
		return newOpenAIBackend(cfg)
	case ProviderGoogle:
		return newGoogleBackend(ctx, cfg)
	case ProviderFixture, "":
		return NewFixtureBackend(""), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// New builds a traced, rate limited client for cfg.
func New(ctx context.Context, cfg Config, logger *slog.Logger, recorder *metrics.Recorder) (*Client, error) {
	backend, err := NewBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewClient(backend, logger, recorder, Middlewares(cfg, recorder)...), nil
}

// Middlewares returns the standard chain for cfg: tracing, rate limit, timeout.
func Middlewares(cfg Config, recorder *metrics.Recorder) []Middleware {
	mws := []Middleware{Tracing(otel.Tracer(tracerName))}
	if cfg.Rate > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		mws = append(mws, RateLimit(rate.NewLimiter(rate.Limit(cfg.Rate), burst), recorder))
	}
	return append(mws, Timeout(cfg.Timeout))
}
